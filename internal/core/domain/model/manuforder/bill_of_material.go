package manuforder

import (
	"time"

	"production/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// BillOfMaterial is the snapshot of the bill of materials the order was created from.
// Qty is the quantity of finished product the component lines are expressed for.
type BillOfMaterial struct {
	ID        kernel.UUID
	Name      string
	Qty       decimal.Decimal
	Unit      string
	CostPrice decimal.Decimal
	Lines     []BillOfMaterialLine
}

// BillOfMaterialLine is one component of a bill of materials.
type BillOfMaterialLine struct {
	ProductID kernel.UUID
	Qty       decimal.Decimal
	Unit      string
}

// RealizeOrder tells when the consume stock moves are booked.
type RealizeOrder int

const (
	RealizeUnknown RealizeOrder = iota
	RealizeAtStart
	RealizeAtFinish
)

// ProdProcess is the snapshot of the production process the operation orders are generated from.
type ProdProcess struct {
	ID           kernel.UUID
	Name         string
	RealizeOrder RealizeOrder
	Lines        []ProdProcessLine
}

// ProdProcessLine describes one operation of the process.
type ProdProcessLine struct {
	Name     string
	Priority *int
	Duration time.Duration
}

// ProdProduct is a product quantity the order plans to consume or produce.
type ProdProduct struct {
	ProductID kernel.UUID
	Qty       decimal.Decimal
	Unit      string
}
