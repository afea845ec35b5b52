package manuforder

import (
	"cmp"
	"slices"
	"time"
)

// SortedOperationOrders returns the operation orders ordered by priority ascending, then by
// identifier ascending. A missing priority and an unsaved operation (id 0) sort first.
// Ties keep their original order. The receiver's slice is left untouched.
func (o *ManufOrder) SortedOperationOrders() []*OperationOrder {
	return SortOperationOrders(o.operationOrders)
}

// SortOperationOrders is the sort used by SortedOperationOrders.
func SortOperationOrders(ops []*OperationOrder) []*OperationOrder {
	sorted := slices.Clone(ops)
	slices.SortStableFunc(sorted, compareOperationOrders)
	return sorted
}

func compareOperationOrders(a, b *OperationOrder) int {
	if c := compareNullsFirst(a.priority != nil, b.priority != nil, func() int {
		return cmp.Compare(*a.priority, *b.priority)
	}); c != 0 {
		return c
	}
	return compareNullsFirst(a.id != 0, b.id != 0, func() int {
		return cmp.Compare(a.id, b.id)
	})
}

func compareNullsFirst(aSet, bSet bool, compare func() int) int {
	switch {
	case !aSet && !bSet:
		return 0
	case !aSet:
		return -1
	case !bSet:
		return 1
	}
	return compare()
}

// ComputePlannedEndDateT returns the latest planned end among the operation orders. When no
// operation order has a planned end it falls back to the order's planned start.
func (o *ManufOrder) ComputePlannedEndDateT() *time.Time {
	var latest *time.Time
	for _, op := range o.operationOrders {
		if op.plannedEnd == nil {
			continue
		}
		if latest == nil || op.plannedEnd.After(*latest) {
			latest = op.plannedEnd
		}
	}
	if latest != nil {
		return copyTime(latest)
	}
	return copyTime(o.plannedStart)
}
