package manuforder

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stockmove"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrManufOrderIsNotConstructed is returned when a ManufOrder was not created through
	// NewManufOrder or RestoreManufOrder.
	ErrManufOrderIsNotConstructed = errors.New("ManufOrder must be created via NewManufOrder constructor")
)

// ManufOrder is the manufacturing order aggregate root. It owns its operation orders and
// tracks the stock moves and stock move lines booked for it.
//
// Invariants:
//   - identity, product and a positive quantity are always set
//   - status transitions follow Status
//   - planned end is maintained by the workflow through ComputePlannedEndDateT
type ManufOrder struct {
	id                   kernel.UUID
	seq                  string
	status               Status
	productID            kernel.UUID
	qty                  decimal.Decimal
	unit                 string
	costPrice            decimal.Decimal
	billOfMaterial       *BillOfMaterial
	prodProcess          *ProdProcess
	isConsProOnOperation bool

	plannedStart      *time.Time
	plannedEnd        *time.Time
	realStart         *time.Time
	realEnd           *time.Time
	endTimeDifference int64

	operationOrders []*OperationOrder
	toConsume       []ProdProduct
	toProduce       []ProdProduct
	diffConsume     []ProdProduct
	consumedLines   []*stockmove.Line
	producedLines   []*stockmove.Line
	inStockMoveIDs  []kernel.UUID
	outStockMoveIDs []kernel.UUID

	cancelReason    *CancelReason
	cancelReasonStr string

	isConstructed bool
}

// NewManufOrder creates a Draft order for qty units of productID.
func NewManufOrder(id, productID kernel.UUID, qty decimal.Decimal) (*ManufOrder, error) {
	order := &ManufOrder{
		status:        Draft,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setProduct(productID),
		order.setQty(qty),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// State is the complete persisted form of a manufacturing order.
type State struct {
	ID                   kernel.UUID
	Seq                  string
	Status               Status
	ProductID            kernel.UUID
	Qty                  decimal.Decimal
	Unit                 string
	CostPrice            decimal.Decimal
	BillOfMaterial       *BillOfMaterial
	ProdProcess          *ProdProcess
	IsConsProOnOperation bool
	PlannedStartDateT    *time.Time
	PlannedEndDateT      *time.Time
	RealStartDateT       *time.Time
	RealEndDateT         *time.Time
	EndTimeDifference    int64
	OperationOrders      []*OperationOrder
	ToConsume            []ProdProduct
	ToProduce            []ProdProduct
	DiffConsume          []ProdProduct
	ConsumedLines        []*stockmove.Line
	ProducedLines        []*stockmove.Line
	InStockMoveIDs       []kernel.UUID
	OutStockMoveIDs      []kernel.UUID
	CancelReason         *CancelReason
	CancelReasonStr      string
}

// RestoreManufOrder rebuilds an order from persistence, validating the same invariants
// as NewManufOrder plus the status.
func RestoreManufOrder(s State) (*ManufOrder, error) {
	order, err := NewManufOrder(s.ID, s.ProductID, s.Qty)
	if err != nil {
		return nil, err
	}
	if err = s.Status.Validate(); err != nil {
		return nil, err
	}

	order.seq = s.Seq
	order.status = s.Status
	order.unit = s.Unit
	order.costPrice = s.CostPrice
	order.billOfMaterial = s.BillOfMaterial
	order.prodProcess = s.ProdProcess
	order.isConsProOnOperation = s.IsConsProOnOperation
	order.plannedStart = copyTime(s.PlannedStartDateT)
	order.plannedEnd = copyTime(s.PlannedEndDateT)
	order.realStart = copyTime(s.RealStartDateT)
	order.realEnd = copyTime(s.RealEndDateT)
	order.endTimeDifference = s.EndTimeDifference
	order.operationOrders = s.OperationOrders
	order.toConsume = s.ToConsume
	order.toProduce = s.ToProduce
	order.diffConsume = s.DiffConsume
	order.consumedLines = s.ConsumedLines
	order.producedLines = s.ProducedLines
	order.inStockMoveIDs = s.InStockMoveIDs
	order.outStockMoveIDs = s.OutStockMoveIDs
	order.cancelReason = s.CancelReason
	order.cancelReasonStr = s.CancelReasonStr
	return order, nil
}

// State returns the persisted form. Slices are shared with the aggregate.
func (o *ManufOrder) State() State {
	return State{
		ID:                   o.id,
		Seq:                  o.seq,
		Status:               o.status,
		ProductID:            o.productID,
		Qty:                  o.qty,
		Unit:                 o.unit,
		CostPrice:            o.costPrice,
		BillOfMaterial:       o.billOfMaterial,
		ProdProcess:          o.prodProcess,
		IsConsProOnOperation: o.isConsProOnOperation,
		PlannedStartDateT:    copyTime(o.plannedStart),
		PlannedEndDateT:      copyTime(o.plannedEnd),
		RealStartDateT:       copyTime(o.realStart),
		RealEndDateT:         copyTime(o.realEnd),
		EndTimeDifference:    o.endTimeDifference,
		OperationOrders:      o.operationOrders,
		ToConsume:            o.toConsume,
		ToProduce:            o.toProduce,
		DiffConsume:          o.diffConsume,
		ConsumedLines:        o.consumedLines,
		ProducedLines:        o.producedLines,
		InStockMoveIDs:       o.inStockMoveIDs,
		OutStockMoveIDs:      o.outStockMoveIDs,
		CancelReason:         o.cancelReason,
		CancelReasonStr:      o.cancelReasonStr,
	}
}

// Validate ensures the order was built by a constructor.
func (o *ManufOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrManufOrderIsNotConstructed
	}
	return nil
}

// Ref is the human readable reference used in error messages: the sequence when it is
// real, the identifier otherwise.
func (o *ManufOrder) Ref() string {
	if IsEmptyOrDraftSeq(o.seq) {
		return o.id.String()
	}
	return o.seq
}

func (o *ManufOrder) ID() kernel.UUID                           { return o.id }
func (o *ManufOrder) Seq() string                               { return o.seq }
func (o *ManufOrder) Status() Status                            { return o.status }
func (o *ManufOrder) ProductID() kernel.UUID                    { return o.productID }
func (o *ManufOrder) Qty() decimal.Decimal                      { return o.qty }
func (o *ManufOrder) Unit() string                              { return o.unit }
func (o *ManufOrder) CostPrice() decimal.Decimal                { return o.costPrice }
func (o *ManufOrder) BillOfMaterial() *BillOfMaterial           { return o.billOfMaterial }
func (o *ManufOrder) ProdProcess() *ProdProcess                 { return o.prodProcess }
func (o *ManufOrder) IsConsProOnOperation() bool                { return o.isConsProOnOperation }
func (o *ManufOrder) PlannedStartDateT() *time.Time             { return copyTime(o.plannedStart) }
func (o *ManufOrder) PlannedEndDateT() *time.Time               { return copyTime(o.plannedEnd) }
func (o *ManufOrder) RealStartDateT() *time.Time                { return copyTime(o.realStart) }
func (o *ManufOrder) RealEndDateT() *time.Time                  { return copyTime(o.realEnd) }
func (o *ManufOrder) EndTimeDifference() int64                  { return o.endTimeDifference }
func (o *ManufOrder) OperationOrders() []*OperationOrder        { return o.operationOrders }
func (o *ManufOrder) ToConsumeProdProducts() []ProdProduct      { return o.toConsume }
func (o *ManufOrder) ToProduceProdProducts() []ProdProduct      { return o.toProduce }
func (o *ManufOrder) DiffConsumeProdProducts() []ProdProduct    { return o.diffConsume }
func (o *ManufOrder) ConsumedStockMoveLines() []*stockmove.Line { return o.consumedLines }
func (o *ManufOrder) ProducedStockMoveLines() []*stockmove.Line { return o.producedLines }
func (o *ManufOrder) InStockMoveIDs() []kernel.UUID             { return o.inStockMoveIDs }
func (o *ManufOrder) OutStockMoveIDs() []kernel.UUID            { return o.outStockMoveIDs }
func (o *ManufOrder) CancelReason() *CancelReason               { return o.cancelReason }
func (o *ManufOrder) CancelReasonStr() string                   { return o.cancelReasonStr }

// SetBillOfMaterial attaches the bill of materials snapshot.
func (o *ManufOrder) SetBillOfMaterial(bom *BillOfMaterial) {
	o.billOfMaterial = bom
}

// SetProdProcess attaches the production process snapshot.
func (o *ManufOrder) SetProdProcess(process *ProdProcess) {
	o.prodProcess = process
}

// SetConsProOnOperation switches consumption tracking between order level (false) and
// operation level (true).
func (o *ManufOrder) SetConsProOnOperation(onOperation bool) {
	o.isConsProOnOperation = onOperation
}

// AssignSeq replaces the sequence code.
func (o *ManufOrder) AssignSeq(seq string) error {
	if IsEmptyOrDraftSeq(seq) {
		return errs.NewValueIsInvalidErrorWithCause("manufOrderSeq", fmt.Errorf("%q is not a final sequence", seq))
	}
	o.seq = seq
	return nil
}

// AddOperationOrder appends an operation order.
func (o *ManufOrder) AddOperationOrder(op *OperationOrder) {
	o.operationOrders = append(o.operationOrders, op)
}

func (o *ManufOrder) SetToConsumeProdProducts(products []ProdProduct) {
	o.toConsume = products
}

func (o *ManufOrder) SetToProduceProdProducts(products []ProdProduct) {
	o.toProduce = products
}

// SetDiffConsumeProdProducts records what is left to consume after a partial finish.
func (o *ManufOrder) SetDiffConsumeProdProducts(products []ProdProduct) {
	o.diffConsume = products
}

// SetPlannedStartDateT sets the planned start.
func (o *ManufOrder) SetPlannedStartDateT(t time.Time) {
	o.plannedStart = &t
}

// SetPlannedEndDateT sets or clears the planned end.
func (o *ManufOrder) SetPlannedEndDateT(t *time.Time) {
	o.plannedEnd = copyTime(t)
}

// InheritUnitFromBillOfMaterial copies the bill of materials unit, when there is one.
func (o *ManufOrder) InheritUnitFromBillOfMaterial() {
	if o.billOfMaterial != nil {
		o.unit = o.billOfMaterial.Unit
	}
}

// SetCostPrice records the cost computed by the last cost sheet.
func (o *ManufOrder) SetCostPrice(price decimal.Decimal) {
	o.costPrice = price
}

func (o *ManufOrder) AddInStockMove(id kernel.UUID) {
	o.inStockMoveIDs = append(o.inStockMoveIDs, id)
}

func (o *ManufOrder) AddOutStockMove(id kernel.UUID) {
	o.outStockMoveIDs = append(o.outStockMoveIDs, id)
}

// AttachConsumedLine records a realized consume line.
func (o *ManufOrder) AttachConsumedLine(line *stockmove.Line) {
	o.consumedLines = append(o.consumedLines, line)
}

// AttachProducedLine records a realized produce line.
func (o *ManufOrder) AttachProducedLine(line *stockmove.Line) {
	o.producedLines = append(o.producedLines, line)
}

// Plan moves the order to Planned and clears any previous cancellation.
func (o *ManufOrder) Plan() error {
	newStatus, err := o.status.Plan()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.cancelReason = nil
	o.cancelReasonStr = ""
	return nil
}

// Start moves the order to InProgress and records the real start.
func (o *ManufOrder) Start(now time.Time) error {
	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.realStart = &now
	return nil
}

// Pause moves the order to StandBy.
func (o *ManufOrder) Pause() error {
	newStatus, err := o.status.Pause()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Resume moves the order back to InProgress.
func (o *ManufOrder) Resume() error {
	newStatus, err := o.status.Resume()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Finish moves the order to Finished, records the real end and the signed number of
// whole minutes between planned end and real end (positive when late).
func (o *ManufOrder) Finish(now time.Time) error {
	newStatus, err := o.status.Finish()
	if err != nil {
		return err
	}
	o.status = newStatus
	o.realEnd = &now
	o.endTimeDifference = 0
	if o.plannedEnd != nil {
		o.endTimeDifference = int64(now.Sub(*o.plannedEnd) / time.Minute)
	}
	return nil
}

// Cancel moves the order to Canceled, detaches it from the stock move lines it consumed
// or produced and forgets pending quantity differences. reasonStr overrides the reason
// display name when not empty.
func (o *ManufOrder) Cancel(reason CancelReason, reasonStr string) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	for _, line := range o.consumedLines {
		line.DetachConsumedManufOrder()
	}
	for _, line := range o.producedLines {
		line.DetachProducedManufOrder()
	}
	o.diffConsume = nil

	o.status = newStatus
	o.cancelReason = &reason
	if reasonStr == "" {
		o.cancelReasonStr = reason.Name()
	} else {
		o.cancelReasonStr = reasonStr
	}
	return nil
}

// AllOperationsFinished reports whether every operation order is Finished.
// An order without operation orders is considered finished.
func (o *ManufOrder) AllOperationsFinished() bool {
	for _, op := range o.operationOrders {
		if op.Status() != OperationFinished {
			return false
		}
	}
	return true
}

func (o *ManufOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *ManufOrder) setProduct(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product", err)
	}
	o.productID = productID
	return nil
}

func (o *ManufOrder) setQty(qty decimal.Decimal) error {
	if qty.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("qty is invalid", fmt.Errorf("%s is negative", qty))
	}
	o.qty = qty
	return nil
}
