// Package stockmoverepo persists stock moves and their lines.
package stockmoverepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stockmove"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StockMoveDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ManufOrderID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Direction    int        `gorm:"type:smallint;not null"`
	Status       int        `gorm:"type:smallint;not null"`
	RealizedAt   *time.Time `gorm:"type:timestamptz"`
	CreatedAt    time.Time  `gorm:"type:timestamptz;not null"`
	Lines        []LineDTO  `gorm:"foreignKey:StockMoveID;constraint:OnDelete:CASCADE"`
}

func (StockMoveDTO) TableName() string {
	return "stock_moves"
}

type LineDTO struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StockMoveID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position             int             `gorm:"not null"`
	ProductID            uuid.UUID       `gorm:"type:uuid;not null"`
	Qty                  decimal.Decimal `gorm:"type:numeric;not null"`
	Unit                 string          `gorm:"type:varchar(64);not null"`
	ConsumedManufOrderID *uuid.UUID      `gorm:"type:uuid;index"`
	ProducedManufOrderID *uuid.UUID      `gorm:"type:uuid;index"`
}

func (LineDTO) TableName() string {
	return "stock_move_lines"
}

func fromDomain(m *stockmove.StockMove) StockMoveDTO {
	moveID := m.ID().Bytes()
	lines := make([]LineDTO, 0, len(m.Lines()))
	for i, l := range m.Lines() {
		dto := LineFromDomain(l)
		dto.StockMoveID = moveID
		dto.Position = i
		lines = append(lines, dto)
	}

	return StockMoveDTO{
		ID:           moveID,
		ManufOrderID: m.ManufOrderID().Bytes(),
		Direction:    int(m.Direction()),
		Status:       int(m.Status()),
		RealizedAt:   m.RealizedAt(),
		Lines:        lines,
	}
}

// LineFromDomain maps a line without its stock move reference.
func LineFromDomain(l *stockmove.Line) LineDTO {
	return LineDTO{
		ID:                   l.ID().Bytes(),
		ProductID:            l.ProductID().Bytes(),
		Qty:                  l.Qty(),
		Unit:                 l.Unit(),
		ConsumedManufOrderID: optionalRaw(l.ConsumedManufOrderID()),
		ProducedManufOrderID: optionalRaw(l.ProducedManufOrderID()),
	}
}

func toDomain(dto StockMoveDTO) (*stockmove.StockMove, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	manufOrderID, err := kernel.UUIDFromBytes(dto.ManufOrderID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*stockmove.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := LineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return stockmove.RestoreStockMove(
		id,
		manufOrderID,
		stockmove.Direction(dto.Direction),
		stockmove.Status(dto.Status),
		lines,
		dto.RealizedAt,
	)
}

// LineToDomain rebuilds a line with its back references.
func LineToDomain(dto LineDTO) (*stockmove.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	consumedBy, err := optionalUUID(dto.ConsumedManufOrderID)
	if err != nil {
		return nil, err
	}
	producedBy, err := optionalUUID(dto.ProducedManufOrderID)
	if err != nil {
		return nil, err
	}
	return stockmove.RestoreLine(id, productID, dto.Qty, dto.Unit, consumedBy, producedBy)
}

func optionalRaw(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
