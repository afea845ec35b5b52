// Package postgres holds the GORM transaction plumbing shared by the repositories and the
// embedded schema migrations.
//
// A business transaction is opened with GormUnitOfWork.Do. The transaction travels in the
// context; repositories obtain their connection with Conn and register the aggregates they
// write with TrackAggregate:
//
//	err := uow.Do(ctx, func(ctx context.Context) error {
//	    if err := orders.Update(ctx, order); err != nil {
//	        return err
//	    }
//	    return products.Update(ctx, product)
//	})
//
// Outside Do, Conn falls back to the plain connection and every statement commits on its own.
package postgres

import (
	"context"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ ports.UnitOfWork = (*GormUnitOfWork)(nil)

type txKey struct{}

// unit is the state of one running transaction.
type unit struct {
	tx      *gorm.DB
	tracked []trackedAggregate
}

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID   kernel.UUID
	Kind string
}

func (t trackedAggregate) String() string {
	return t.Kind + ":" + t.ID.String()
}

// GormUnitOfWork opens one database transaction per call to Do.
type GormUnitOfWork struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewGormUnitOfWork(db *gorm.DB, logger *zap.Logger) *GormUnitOfWork {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormUnitOfWork{db: db, logger: logger.Named("unit-of-work")}
}

// Do runs fn in a transaction. A context that already carries a transaction is reused, so
// nested calls join the outer unit and only the outermost call commits.
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if unitFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	current := &unit{tx: tx}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, current)); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			u.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}
	if err = tx.Commit().Error; err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if ce := u.logger.Check(zap.DebugLevel, "unit of work committed"); ce != nil {
		ce.Write(zap.Strings("aggregates", current.describe()))
	}
	return nil
}

// Conn returns the transaction carried by ctx, or db bound to ctx when there is none.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if current := unitFromContext(ctx); current != nil {
		return current.tx
	}
	return db.WithContext(ctx)
}

// TrackAggregate records an aggregate written in the unit carried by ctx. It does nothing
// outside a unit of work.
func TrackAggregate(ctx context.Context, id kernel.UUID, aggregate any) {
	if current := unitFromContext(ctx); current != nil {
		current.tracked = append(current.tracked, trackedAggregate{ID: id, Kind: fmt.Sprintf("%T", aggregate)})
	}
}

// TrackedAggregates describes the aggregates written so far in the unit carried by ctx as
// "type:id" strings, the form logged on commit.
func TrackedAggregates(ctx context.Context) []string {
	current := unitFromContext(ctx)
	if current == nil {
		return nil
	}
	return current.describe()
}

func (u *unit) describe() []string {
	described := make([]string, 0, len(u.tracked))
	for _, t := range u.tracked {
		described = append(described, t.String())
	}
	return described
}

func unitFromContext(ctx context.Context) *unit {
	current, _ := ctx.Value(txKey{}).(*unit)
	return current
}
