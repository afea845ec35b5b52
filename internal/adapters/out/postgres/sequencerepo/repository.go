// Package sequencerepo hands out numbered codes from counters stored in the sequences table.
package sequencerepo

import (
	"context"
	"errors"
	"fmt"

	"production/internal/adapters/out/postgres"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.SequenceService = (*GormSequenceRepository)(nil)

type SequenceDTO struct {
	Name      string `gorm:"type:varchar(64);primaryKey"`
	Prefix    string `gorm:"type:varchar(16);not null"`
	Padding   int    `gorm:"not null"`
	NextValue int64  `gorm:"not null"`
}

func (SequenceDTO) TableName() string {
	return "sequences"
}

type GormSequenceRepository struct {
	db *gorm.DB
}

func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next locks the counter row, increments it and returns the formatted previous value.
// Inside a unit of work the lock is held until commit, so two orders never share a code.
func (r *GormSequenceRepository) Next(ctx context.Context, name string) (string, error) {
	var code string
	err := postgres.Conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var dto SequenceDTO
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&dto, "name = ?", name).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewObjectNotFoundError("sequence", name)
			}
			return err
		}

		if err = tx.Model(&SequenceDTO{}).
			Where("name = ?", name).
			Update("next_value", dto.NextValue+1).Error; err != nil {
			return err
		}
		code = fmt.Sprintf("%s%0*d", dto.Prefix, dto.Padding, dto.NextValue)
		return nil
	})
	if err != nil {
		return "", err
	}
	return code, nil
}
