package productrepo

import (
	"context"
	"errors"

	"production/internal/adapters/out/postgres"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/product"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.ProductRepository = (*GormProductRepository)(nil)

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	if err := postgres.Conn(ctx, r.db).Create(&dto).Error; err != nil {
		return err
	}

	postgres.TrackAggregate(ctx, p.ID(), p)
	return nil
}

func (r *GormProductRepository) Update(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	result := postgres.Conn(ctx, r.db).Model(&ProductDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", p.ID().String())
	}

	postgres.TrackAggregate(ctx, p.ID(), p)
	return nil
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := postgres.Conn(ctx, r.db).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
