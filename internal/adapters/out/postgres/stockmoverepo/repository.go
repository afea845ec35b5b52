package stockmoverepo

import (
	"context"
	"errors"

	"production/internal/adapters/out/postgres"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stockmove"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.StockMoveRepository = (*GormStockMoveRepository)(nil)

// GormStockMoveRepository implements ports.StockMoveRepository using GORM.
type GormStockMoveRepository struct {
	db *gorm.DB
}

func NewGormStockMoveRepository(db *gorm.DB) *GormStockMoveRepository {
	return &GormStockMoveRepository{db: db}
}

// Add saves a new move together with its lines.
func (r *GormStockMoveRepository) Add(ctx context.Context, move *stockmove.StockMove) error {
	if err := move.Validate(); err != nil {
		return err
	}

	dto := fromDomain(move)
	if err := postgres.Conn(ctx, r.db).Create(&dto).Error; err != nil {
		return err
	}

	postgres.TrackAggregate(ctx, move.ID(), move)
	return nil
}

// Update saves the move status and the back references of its lines. Lines themselves are
// immutable once the move exists.
func (r *GormStockMoveRepository) Update(ctx context.Context, move *stockmove.StockMove) error {
	if err := move.Validate(); err != nil {
		return err
	}

	db := postgres.Conn(ctx, r.db)
	dto := fromDomain(move)

	result := db.Model(&StockMoveDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":      dto.Status,
		"realized_at": dto.RealizedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("stockMove", move.ID().String())
	}

	for _, line := range dto.Lines {
		if err := UpdateLineReferences(db, line); err != nil {
			return err
		}
	}

	postgres.TrackAggregate(ctx, move.ID(), move)
	return nil
}

func (r *GormStockMoveRepository) Get(ctx context.Context, id kernel.UUID) (*stockmove.StockMove, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StockMoveDTO
	err := postgres.Conn(ctx, r.db).
		Preload("Lines", orderedLines).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stockMove", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormStockMoveRepository) GetByManufOrder(
	ctx context.Context,
	manufOrderID kernel.UUID,
	direction stockmove.Direction,
) ([]*stockmove.StockMove, error) {
	var dtos []StockMoveDTO
	err := postgres.Conn(ctx, r.db).
		Preload("Lines", orderedLines).
		Where("manuf_order_id = ? AND direction = ?", manufOrderID.Bytes(), int(direction)).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	moves := make([]*stockmove.StockMove, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// UpdateLineReferences saves the consumed-by and produced-by references of one line.
func UpdateLineReferences(db *gorm.DB, line LineDTO) error {
	return db.Model(&LineDTO{}).Where("id = ?", line.ID).Updates(map[string]any{
		"consumed_manuf_order_id": line.ConsumedManufOrderID,
		"produced_manuf_order_id": line.ProducedManufOrderID,
	}).Error
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
