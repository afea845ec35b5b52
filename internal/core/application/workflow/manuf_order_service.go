package workflow

import (
	"context"

	"production/internal/core/domain/model/manuforder"
	"production/internal/core/ports"
	"production/internal/pkg/rounding"

	"github.com/shopspring/decimal"
)

// ManufOrderSequence is the name of the sequence manufacturing order codes are drawn from.
const ManufOrderSequence = "manufOrder"

var _ ports.ManufOrderService = (*ManufOrderService)(nil)

// ManufOrderService fills in what an order needs before it can be planned.
type ManufOrderService struct {
	sequences ports.SequenceService
	settings  ports.AppSettings
}

func NewManufOrderService(sequences ports.SequenceService, settings ports.AppSettings) *ManufOrderService {
	return &ManufOrderService{sequences: sequences, settings: settings}
}

func (s *ManufOrderService) NextManufOrderSeq(ctx context.Context, _ *manuforder.ManufOrder) (string, error) {
	return s.sequences.Next(ctx, ManufOrderSequence)
}

// PreFillOperations adds one operation order per production process line. Orders without a
// process are left untouched.
func (s *ManufOrderService) PreFillOperations(_ context.Context, order *manuforder.ManufOrder) error {
	process := order.ProdProcess()
	if process == nil {
		return nil
	}
	for _, line := range process.Lines {
		op, err := manuforder.NewOperationOrder(line.Name, line.Priority, line.Duration)
		if err != nil {
			return err
		}
		order.AddOperationOrder(op)
	}
	return nil
}

// CreateToConsumeProdProducts scales every bill of materials line to the order quantity:
// line qty * order qty / bill of materials qty.
func (s *ManufOrderService) CreateToConsumeProdProducts(ctx context.Context, order *manuforder.ManufOrder) error {
	bom := order.BillOfMaterial()
	if bom == nil {
		return nil
	}

	bomQty := bom.Qty
	if bomQty.IsZero() {
		bomQty = decimal.NewFromInt(1)
	}
	scale := s.settings.NbDecimalDigitForBomQty(ctx)

	products := make([]manuforder.ProdProduct, 0, len(bom.Lines))
	for _, line := range bom.Lines {
		products = append(products, manuforder.ProdProduct{
			ProductID: line.ProductID,
			Qty:       rounding.DivHalfEven(line.Qty.Mul(order.Qty()), bomQty, scale),
			Unit:      line.Unit,
		})
	}
	order.SetToConsumeProdProducts(products)
	return nil
}

// CreateToProduceProdProducts plans the ordered quantity of the ordered product.
func (s *ManufOrderService) CreateToProduceProdProducts(_ context.Context, order *manuforder.ManufOrder) error {
	unit := order.Unit()
	if unit == "" && order.BillOfMaterial() != nil {
		unit = order.BillOfMaterial().Unit
	}
	order.SetToProduceProdProducts([]manuforder.ProdProduct{{
		ProductID: order.ProductID(),
		Qty:       order.Qty(),
		Unit:      unit,
	}})
	return nil
}
