package manuforderrepo

import (
	"context"
	"errors"

	"production/internal/adapters/out/postgres"
	"production/internal/adapters/out/postgres/stockmoverepo"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/manuforder"
	"production/internal/core/domain/model/stockmove"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.ManufOrderRepository = (*GormManufOrderRepository)(nil)

// GormManufOrderRepository implements ports.ManufOrderRepository using GORM.
type GormManufOrderRepository struct {
	db *gorm.DB
}

func NewGormManufOrderRepository(db *gorm.DB) *GormManufOrderRepository {
	return &GormManufOrderRepository{db: db}
}

// Add saves a new order with its operation orders and assigns the operation identifiers.
func (r *GormManufOrderRepository) Add(ctx context.Context, aggregate *manuforder.ManufOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := postgres.Conn(ctx, r.db).Omit("CancelReason").Create(&dto).Error; err != nil {
		return err
	}
	for i, op := range aggregate.OperationOrders() {
		op.AssignID(dto.OperationOrders[i].ID)
	}

	postgres.TrackAggregate(ctx, aggregate.ID(), aggregate)
	return nil
}

// Update saves the order row, inserts new operation orders, updates the existing ones and
// writes back the references of the consumed and produced stock move lines.
func (r *GormManufOrderRepository) Update(ctx context.Context, aggregate *manuforder.ManufOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := postgres.Conn(ctx, r.db)
	dto := fromDomain(aggregate)

	result := db.Model(&ManufOrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("OperationOrders", "CancelReason").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("manufOrder", aggregate.ID().String())
	}

	for i, op := range aggregate.OperationOrders() {
		opDTO := dto.OperationOrders[i]
		if opDTO.ID == 0 {
			if err := db.Create(&opDTO).Error; err != nil {
				return err
			}
			op.AssignID(opDTO.ID)
			continue
		}
		if err := db.Model(&OperationOrderDTO{}).Where("id = ?", opDTO.ID).Select("*").Updates(&opDTO).Error; err != nil {
			return err
		}
	}

	for _, line := range aggregate.ConsumedStockMoveLines() {
		if err := stockmoverepo.UpdateLineReferences(db, stockmoverepo.LineFromDomain(line)); err != nil {
			return err
		}
	}
	for _, line := range aggregate.ProducedStockMoveLines() {
		if err := stockmoverepo.UpdateLineReferences(db, stockmoverepo.LineFromDomain(line)); err != nil {
			return err
		}
	}

	postgres.TrackAggregate(ctx, aggregate.ID(), aggregate)
	return nil
}

func (r *GormManufOrderRepository) Get(ctx context.Context, id kernel.UUID) (*manuforder.ManufOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := postgres.Conn(ctx, r.db)
	var dto ManufOrderDTO
	if err := preloaded(db).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("manufOrder", id.String())
		}
		return nil, err
	}

	return r.restore(db, dto)
}

func (r *GormManufOrderRepository) GetAllInStatus(
	ctx context.Context,
	status manuforder.Status,
) ([]*manuforder.ManufOrder, error) {
	db := postgres.Conn(ctx, r.db)
	var dtos []ManufOrderDTO
	if err := preloaded(db).Where("status = ?", int(status)).Order("seq, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*manuforder.ManufOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := r.restore(db, dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormManufOrderRepository) restore(db *gorm.DB, dto ManufOrderDTO) (*manuforder.ManufOrder, error) {
	consumed, err := r.lines(db, "consumed_manuf_order_id = ?", dto)
	if err != nil {
		return nil, err
	}
	produced, err := r.lines(db, "produced_manuf_order_id = ?", dto)
	if err != nil {
		return nil, err
	}
	return toDomain(dto, manuforder.State{ConsumedLines: consumed, ProducedLines: produced})
}

func (r *GormManufOrderRepository) lines(db *gorm.DB, where string, dto ManufOrderDTO) ([]*stockmove.Line, error) {
	var dtos []stockmoverepo.LineDTO
	if err := db.Where(where, dto.ID).Order("stock_move_id, position").Find(&dtos).Error; err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}
	lines := make([]*stockmove.Line, 0, len(dtos))
	for _, lineDTO := range dtos {
		line, err := stockmoverepo.LineToDomain(lineDTO)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func preloaded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("OperationOrders", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("CancelReason")
}

var _ ports.CancelReasonRepository = (*GormCancelReasonRepository)(nil)

// GormCancelReasonRepository reads and seeds cancel reasons.
type GormCancelReasonRepository struct {
	db *gorm.DB
}

func NewGormCancelReasonRepository(db *gorm.DB) *GormCancelReasonRepository {
	return &GormCancelReasonRepository{db: db}
}

func (r *GormCancelReasonRepository) Add(ctx context.Context, reason manuforder.CancelReason) error {
	dto := CancelReasonDTO{Code: reason.Code(), Name: reason.Name()}
	return postgres.Conn(ctx, r.db).Create(&dto).Error
}

func (r *GormCancelReasonRepository) GetByCode(ctx context.Context, code string) (manuforder.CancelReason, error) {
	var dto CancelReasonDTO
	if err := postgres.Conn(ctx, r.db).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return manuforder.CancelReason{}, errs.NewObjectNotFoundError("cancelReason", code)
		}
		return manuforder.CancelReason{}, err
	}
	return manuforder.NewCancelReason(dto.Code, dto.Name)
}
