package ports

import (
	"context"
	"time"

	"production/internal/core/domain/model/costsheet"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/manuforder"
	"production/internal/core/domain/model/message"
)

// ManufOrderService prepares an order before it is planned.
type ManufOrderService interface {
	// NextManufOrderSeq returns a new final sequence code for order.
	NextManufOrderSeq(ctx context.Context, order *manuforder.ManufOrder) (string, error)

	// PreFillOperations creates one operation order per line of the production process.
	PreFillOperations(ctx context.Context, order *manuforder.ManufOrder) error

	// CreateToConsumeProdProducts fills the to-consume list from the bill of materials.
	CreateToConsumeProdProducts(ctx context.Context, order *manuforder.ManufOrder) error

	// CreateToProduceProdProducts fills the to-produce list with the ordered product.
	CreateToProduceProdProducts(ctx context.Context, order *manuforder.ManufOrder) error
}

// StockMoveService books the stock moves of a manufacturing order.
type StockMoveService interface {
	CreateToConsumeStockMove(ctx context.Context, order *manuforder.ManufOrder) error
	CreateToProduceStockMove(ctx context.Context, order *manuforder.ManufOrder) error

	// RealizeStockMovesAndCreateOneEmpty realizes the open moves among moveIDs and returns
	// the identifier of a new empty planned consume move.
	RealizeStockMovesAndCreateOneEmpty(
		ctx context.Context,
		order *manuforder.ManufOrder,
		moveIDs []kernel.UUID,
	) (kernel.UUID, error)

	Finish(ctx context.Context, order *manuforder.ManufOrder) error
	PartialFinish(ctx context.Context, order *manuforder.ManufOrder) error
	Cancel(ctx context.Context, order *manuforder.ManufOrder) error
}

// CostSheetService computes and stores the cost of an order.
type CostSheetService interface {
	ComputeCostPrice(
		ctx context.Context,
		order *manuforder.ManufOrder,
		mode costsheet.CalculationMode,
		asOf time.Time,
	) (*costsheet.CostSheet, error)
}

// MessageService renders a template for an order and sends it.
type MessageService interface {
	GenerateAndSendMessage(ctx context.Context, order *manuforder.ManufOrder, tpl message.Template) error
}

// SequenceService hands out sequence numbers.
type SequenceService interface {
	// Next increments the named counter and returns the formatted code.
	Next(ctx context.Context, name string) (string, error)
}

// SupplychainSettings are the notification settings of the supply chain application.
// A nil template means none is configured.
type SupplychainSettings struct {
	FinishMoAutomaticEmail      bool
	FinishMoMessageTemplate     *message.Template
	PartFinishMoAutomaticEmail  bool
	PartFinishMoMessageTemplate *message.Template
}

// AppSettings exposes the application configuration the workflow reads.
type AppSettings interface {
	// NbDecimalDigitForUnitPrice is the scale of unit prices.
	NbDecimalDigitForUnitPrice(ctx context.Context) int32

	// NbDecimalDigitForBomQty is the scale of component quantities.
	NbDecimalDigitForBomQty(ctx context.Context) int32

	// Supplychain returns nil when the supply chain application is disabled.
	Supplychain(ctx context.Context) (*SupplychainSettings, error)
}
