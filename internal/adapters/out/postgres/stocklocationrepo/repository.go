// Package stocklocationrepo persists the stock location tree.
package stocklocationrepo

import (
	"context"
	"errors"

	"production/internal/adapters/out/postgres"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stocklocation"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ ports.StockLocationRepository = (*GormStockLocationRepository)(nil)

type StockLocationDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name     string     `gorm:"type:varchar(255);not null"`
	ParentID *uuid.UUID `gorm:"type:uuid;index"`
}

func (StockLocationDTO) TableName() string {
	return "stock_locations"
}

type GormStockLocationRepository struct {
	db *gorm.DB
}

func NewGormStockLocationRepository(db *gorm.DB) *GormStockLocationRepository {
	return &GormStockLocationRepository{db: db}
}

func (r *GormStockLocationRepository) Add(ctx context.Context, location *stocklocation.StockLocation) error {
	dto := StockLocationDTO{ID: location.ID().Bytes(), Name: location.Name()}
	if parent := location.ParentID(); parent != nil {
		raw := parent.Bytes()
		dto.ParentID = &raw
	}
	if err := postgres.Conn(ctx, r.db).Create(&dto).Error; err != nil {
		return err
	}

	postgres.TrackAggregate(ctx, location.ID(), location)
	return nil
}

func (r *GormStockLocationRepository) Get(ctx context.Context, id kernel.UUID) (*stocklocation.StockLocation, error) {
	var dto StockLocationDTO
	if err := postgres.Conn(ctx, r.db).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stock location", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormStockLocationRepository) GetChildren(
	ctx context.Context,
	parentIDs []kernel.UUID,
) ([]*stocklocation.StockLocation, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	raw := make([]uuid.UUID, 0, len(parentIDs))
	for _, id := range parentIDs {
		raw = append(raw, id.Bytes())
	}

	var dtos []StockLocationDTO
	if err := postgres.Conn(ctx, r.db).Where("parent_id IN ?", raw).Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	locations := make([]*stocklocation.StockLocation, 0, len(dtos))
	for _, dto := range dtos {
		location, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	return locations, nil
}

func toDomain(dto StockLocationDTO) (*stocklocation.StockLocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	var parentID *kernel.UUID
	if dto.ParentID != nil {
		parent, err := kernel.UUIDFromBytes(dto.ParentID[:])
		if err != nil {
			return nil, err
		}
		parentID = &parent
	}
	return stocklocation.NewStockLocation(id, dto.Name, parentID)
}
