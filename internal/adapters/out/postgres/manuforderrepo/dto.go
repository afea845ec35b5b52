// Package manuforderrepo persists manufacturing orders with their operation orders.
//
// Bill of materials and production process are stored as JSON snapshots on the order row.
// Consumed and produced stock move lines are not copied: they are found through their
// consumed-by / produced-by references in stock_move_lines.
package manuforderrepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/manuforder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ManufOrderDTO struct {
	ID                   uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Seq                  string              `gorm:"type:varchar(64);not null"`
	Status               int                 `gorm:"type:smallint;not null;index"`
	ProductID            uuid.UUID           `gorm:"type:uuid;not null"`
	Qty                  decimal.Decimal     `gorm:"type:numeric;not null"`
	Unit                 string              `gorm:"type:varchar(64);not null"`
	CostPrice            decimal.Decimal     `gorm:"type:numeric;not null"`
	BillOfMaterial       *BillOfMaterialDTO  `gorm:"type:jsonb;serializer:json"`
	ProdProcess          *ProdProcessDTO     `gorm:"type:jsonb;serializer:json"`
	IsConsProOnOperation bool                `gorm:"not null"`
	PlannedStartDateT    *time.Time          `gorm:"type:timestamptz"`
	PlannedEndDateT      *time.Time          `gorm:"type:timestamptz"`
	RealStartDateT       *time.Time          `gorm:"type:timestamptz"`
	RealEndDateT         *time.Time          `gorm:"type:timestamptz"`
	EndTimeDifference    int64               `gorm:"not null"`
	ToConsume            []ProdProductDTO    `gorm:"type:jsonb;serializer:json"`
	ToProduce            []ProdProductDTO    `gorm:"type:jsonb;serializer:json"`
	DiffConsume          []ProdProductDTO    `gorm:"type:jsonb;serializer:json"`
	InStockMoveIDs       []uuid.UUID         `gorm:"type:jsonb;serializer:json"`
	OutStockMoveIDs      []uuid.UUID         `gorm:"type:jsonb;serializer:json"`
	CancelReasonCode     *string             `gorm:"type:varchar(64)"`
	CancelReasonStr      string              `gorm:"type:varchar(255);not null"`
	CancelReason         *CancelReasonDTO    `gorm:"foreignKey:CancelReasonCode;references:Code"`
	OperationOrders      []OperationOrderDTO `gorm:"foreignKey:ManufOrderID;constraint:OnDelete:CASCADE"`
}

func (ManufOrderDTO) TableName() string {
	return "manuf_orders"
}

type OperationOrderDTO struct {
	ID                     int64      `gorm:"primaryKey;autoIncrement"`
	ManufOrderID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name                   string     `gorm:"type:varchar(255);not null"`
	Priority               *int       `gorm:"type:integer"`
	Status                 int        `gorm:"type:smallint;not null"`
	PlannedDurationSeconds int64      `gorm:"not null"`
	PlannedStartDateT      *time.Time `gorm:"type:timestamptz"`
	PlannedEndDateT        *time.Time `gorm:"type:timestamptz"`
	RealStartDateT         *time.Time `gorm:"type:timestamptz"`
	RealEndDateT           *time.Time `gorm:"type:timestamptz"`
}

func (OperationOrderDTO) TableName() string {
	return "operation_orders"
}

type CancelReasonDTO struct {
	Code string `gorm:"type:varchar(64);primaryKey"`
	Name string `gorm:"type:varchar(255);not null"`
}

func (CancelReasonDTO) TableName() string {
	return "cancel_reasons"
}

type BillOfMaterialDTO struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Qty       decimal.Decimal  `json:"qty"`
	Unit      string           `json:"unit"`
	CostPrice decimal.Decimal  `json:"costPrice"`
	Lines     []ProdProductDTO `json:"lines"`
}

type ProdProcessDTO struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	RealizeOrder int                  `json:"realizeOrder"`
	Lines        []ProdProcessLineDTO `json:"lines"`
}

type ProdProcessLineDTO struct {
	Name            string `json:"name"`
	Priority        *int   `json:"priority,omitempty"`
	DurationSeconds int64  `json:"durationSeconds"`
}

type ProdProductDTO struct {
	ProductID uuid.UUID       `json:"productId"`
	Qty       decimal.Decimal `json:"qty"`
	Unit      string          `json:"unit"`
}

func fromDomain(o *manuforder.ManufOrder) ManufOrderDTO {
	s := o.State()
	orderID := s.ID.Bytes()

	ops := make([]OperationOrderDTO, 0, len(s.OperationOrders))
	for _, op := range s.OperationOrders {
		ops = append(ops, operationFromDomain(orderID, op))
	}

	var cancelCode *string
	if s.CancelReason != nil {
		code := s.CancelReason.Code()
		cancelCode = &code
	}

	return ManufOrderDTO{
		ID:                   orderID,
		Seq:                  s.Seq,
		Status:               int(s.Status),
		ProductID:            s.ProductID.Bytes(),
		Qty:                  s.Qty,
		Unit:                 s.Unit,
		CostPrice:            s.CostPrice,
		BillOfMaterial:       bomFromDomain(s.BillOfMaterial),
		ProdProcess:          processFromDomain(s.ProdProcess),
		IsConsProOnOperation: s.IsConsProOnOperation,
		PlannedStartDateT:    s.PlannedStartDateT,
		PlannedEndDateT:      s.PlannedEndDateT,
		RealStartDateT:       s.RealStartDateT,
		RealEndDateT:         s.RealEndDateT,
		EndTimeDifference:    s.EndTimeDifference,
		ToConsume:            prodProductsFromDomain(s.ToConsume),
		ToProduce:            prodProductsFromDomain(s.ToProduce),
		DiffConsume:          prodProductsFromDomain(s.DiffConsume),
		InStockMoveIDs:       idsFromDomain(s.InStockMoveIDs),
		OutStockMoveIDs:      idsFromDomain(s.OutStockMoveIDs),
		CancelReasonCode:     cancelCode,
		CancelReasonStr:      s.CancelReasonStr,
		OperationOrders:      ops,
	}
}

func operationFromDomain(orderID uuid.UUID, op *manuforder.OperationOrder) OperationOrderDTO {
	s := op.State()
	return OperationOrderDTO{
		ID:                     s.ID,
		ManufOrderID:           orderID,
		Name:                   s.Name,
		Priority:               s.Priority,
		Status:                 int(s.Status),
		PlannedDurationSeconds: int64(s.PlannedDuration / time.Second),
		PlannedStartDateT:      s.PlannedStart,
		PlannedEndDateT:        s.PlannedEnd,
		RealStartDateT:         s.RealStart,
		RealEndDateT:           s.RealEnd,
	}
}

// toDomain rebuilds the order. state carries the stock move lines loaded separately.
func toDomain(dto ManufOrderDTO, state manuforder.State) (*manuforder.ManufOrder, error) {
	var err error
	if state.ID, err = kernel.UUIDFromBytes(dto.ID[:]); err != nil {
		return nil, err
	}
	if state.ProductID, err = kernel.UUIDFromBytes(dto.ProductID[:]); err != nil {
		return nil, err
	}
	if state.BillOfMaterial, err = bomToDomain(dto.BillOfMaterial); err != nil {
		return nil, err
	}
	if state.ProdProcess, err = processToDomain(dto.ProdProcess); err != nil {
		return nil, err
	}
	if state.ToConsume, err = prodProductsToDomain(dto.ToConsume); err != nil {
		return nil, err
	}
	if state.ToProduce, err = prodProductsToDomain(dto.ToProduce); err != nil {
		return nil, err
	}
	if state.DiffConsume, err = prodProductsToDomain(dto.DiffConsume); err != nil {
		return nil, err
	}
	if state.InStockMoveIDs, err = idsToDomain(dto.InStockMoveIDs); err != nil {
		return nil, err
	}
	if state.OutStockMoveIDs, err = idsToDomain(dto.OutStockMoveIDs); err != nil {
		return nil, err
	}

	state.OperationOrders = make([]*manuforder.OperationOrder, 0, len(dto.OperationOrders))
	for _, opDTO := range dto.OperationOrders {
		op, opErr := manuforder.RestoreOperationOrder(manuforder.OperationOrderState{
			ID:              opDTO.ID,
			Name:            opDTO.Name,
			Priority:        opDTO.Priority,
			Status:          manuforder.OperationStatus(opDTO.Status),
			PlannedDuration: time.Duration(opDTO.PlannedDurationSeconds) * time.Second,
			PlannedStart:    opDTO.PlannedStartDateT,
			PlannedEnd:      opDTO.PlannedEndDateT,
			RealStart:       opDTO.RealStartDateT,
			RealEnd:         opDTO.RealEndDateT,
		})
		if opErr != nil {
			return nil, opErr
		}
		state.OperationOrders = append(state.OperationOrders, op)
	}

	if dto.CancelReason != nil {
		reason, reasonErr := manuforder.NewCancelReason(dto.CancelReason.Code, dto.CancelReason.Name)
		if reasonErr != nil {
			return nil, reasonErr
		}
		state.CancelReason = &reason
	}

	state.Seq = dto.Seq
	state.Status = manuforder.Status(dto.Status)
	state.Qty = dto.Qty
	state.Unit = dto.Unit
	state.CostPrice = dto.CostPrice
	state.IsConsProOnOperation = dto.IsConsProOnOperation
	state.PlannedStartDateT = dto.PlannedStartDateT
	state.PlannedEndDateT = dto.PlannedEndDateT
	state.RealStartDateT = dto.RealStartDateT
	state.RealEndDateT = dto.RealEndDateT
	state.EndTimeDifference = dto.EndTimeDifference
	state.CancelReasonStr = dto.CancelReasonStr

	return manuforder.RestoreManufOrder(state)
}

func bomFromDomain(bom *manuforder.BillOfMaterial) *BillOfMaterialDTO {
	if bom == nil {
		return nil
	}
	lines := make([]ProdProductDTO, 0, len(bom.Lines))
	for _, l := range bom.Lines {
		lines = append(lines, ProdProductDTO{ProductID: l.ProductID.Bytes(), Qty: l.Qty, Unit: l.Unit})
	}
	return &BillOfMaterialDTO{
		ID:        bom.ID.Bytes(),
		Name:      bom.Name,
		Qty:       bom.Qty,
		Unit:      bom.Unit,
		CostPrice: bom.CostPrice,
		Lines:     lines,
	}
}

func bomToDomain(dto *BillOfMaterialDTO) (*manuforder.BillOfMaterial, error) {
	if dto == nil {
		return nil, nil
	}
	id, err := optionalID(dto.ID)
	if err != nil {
		return nil, err
	}
	lines := make([]manuforder.BillOfMaterialLine, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		productID, lineErr := kernel.UUIDFromBytes(l.ProductID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, manuforder.BillOfMaterialLine{ProductID: productID, Qty: l.Qty, Unit: l.Unit})
	}
	return &manuforder.BillOfMaterial{
		ID:        id,
		Name:      dto.Name,
		Qty:       dto.Qty,
		Unit:      dto.Unit,
		CostPrice: dto.CostPrice,
		Lines:     lines,
	}, nil
}

func processFromDomain(process *manuforder.ProdProcess) *ProdProcessDTO {
	if process == nil {
		return nil
	}
	lines := make([]ProdProcessLineDTO, 0, len(process.Lines))
	for _, l := range process.Lines {
		lines = append(lines, ProdProcessLineDTO{
			Name:            l.Name,
			Priority:        l.Priority,
			DurationSeconds: int64(l.Duration / time.Second),
		})
	}
	return &ProdProcessDTO{
		ID:           process.ID.Bytes(),
		Name:         process.Name,
		RealizeOrder: int(process.RealizeOrder),
		Lines:        lines,
	}
}

func processToDomain(dto *ProdProcessDTO) (*manuforder.ProdProcess, error) {
	if dto == nil {
		return nil, nil
	}
	id, err := optionalID(dto.ID)
	if err != nil {
		return nil, err
	}
	lines := make([]manuforder.ProdProcessLine, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		lines = append(lines, manuforder.ProdProcessLine{
			Name:     l.Name,
			Priority: l.Priority,
			Duration: time.Duration(l.DurationSeconds) * time.Second,
		})
	}
	return &manuforder.ProdProcess{
		ID:           id,
		Name:         dto.Name,
		RealizeOrder: manuforder.RealizeOrder(dto.RealizeOrder),
		Lines:        lines,
	}, nil
}

func prodProductsFromDomain(products []manuforder.ProdProduct) []ProdProductDTO {
	if products == nil {
		return nil
	}
	dtos := make([]ProdProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, ProdProductDTO{ProductID: p.ProductID.Bytes(), Qty: p.Qty, Unit: p.Unit})
	}
	return dtos
}

func prodProductsToDomain(dtos []ProdProductDTO) ([]manuforder.ProdProduct, error) {
	if dtos == nil {
		return nil, nil
	}
	products := make([]manuforder.ProdProduct, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}
		products = append(products, manuforder.ProdProduct{ProductID: productID, Qty: dto.Qty, Unit: dto.Unit})
	}
	return products, nil
}

func idsFromDomain(ids []kernel.UUID) []uuid.UUID {
	if ids == nil {
		return nil
	}
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return raw
}

func idsToDomain(raw []uuid.UUID) ([]kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// optionalID maps the nil UUID of snapshots that were never saved to the zero kernel.UUID.
func optionalID(raw uuid.UUID) (kernel.UUID, error) {
	if raw == uuid.Nil {
		return kernel.UUID{}, nil
	}
	return kernel.UUIDFromBytes(raw[:])
}
