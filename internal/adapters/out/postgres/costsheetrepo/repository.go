// Package costsheetrepo persists cost sheets.
package costsheetrepo

import (
	"context"
	"time"

	"production/internal/adapters/out/postgres"
	"production/internal/core/domain/model/costsheet"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var _ ports.CostSheetRepository = (*GormCostSheetRepository)(nil)

type CostSheetDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ManufOrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CalculationMode int             `gorm:"type:smallint;not null"`
	AsOf            time.Time       `gorm:"type:date;not null"`
	CostPrice       decimal.Decimal `gorm:"type:numeric;not null"`
	CreatedAt       time.Time
}

func (CostSheetDTO) TableName() string {
	return "cost_sheets"
}

type GormCostSheetRepository struct {
	db *gorm.DB
}

func NewGormCostSheetRepository(db *gorm.DB) *GormCostSheetRepository {
	return &GormCostSheetRepository{db: db}
}

func (r *GormCostSheetRepository) Add(ctx context.Context, sheet *costsheet.CostSheet) error {
	dto := CostSheetDTO{
		ID:              sheet.ID().Bytes(),
		ManufOrderID:    sheet.ManufOrderID().Bytes(),
		CalculationMode: int(sheet.Mode()),
		AsOf:            sheet.AsOf(),
		CostPrice:       sheet.CostPrice(),
	}
	if err := postgres.Conn(ctx, r.db).Create(&dto).Error; err != nil {
		return err
	}

	postgres.TrackAggregate(ctx, sheet.ID(), sheet)
	return nil
}

// GetByManufOrder returns the sheets of an order, oldest first.
func (r *GormCostSheetRepository) GetByManufOrder(
	ctx context.Context,
	manufOrderID kernel.UUID,
) ([]*costsheet.CostSheet, error) {
	var dtos []CostSheetDTO
	err := postgres.Conn(ctx, r.db).
		Where("manuf_order_id = ?", manufOrderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	sheets := make([]*costsheet.CostSheet, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		sheet, err := costsheet.NewCostSheet(id, manufOrderID, costsheet.CalculationMode(dto.CalculationMode),
			dto.AsOf, dto.CostPrice)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}
