package postgres_test

import (
	"context"
	"errors"
	"testing"

	"production/internal/adapters/out/postgres"
	"production/internal/adapters/out/postgres/pgtest"
	"production/internal/adapters/out/postgres/productrepo"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/product"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	products *productrepo.GormProductRepository
	logs     *observer.ObservedLogs
	uow      *postgres.GormUnitOfWork
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.products = productrepo.NewGormProductRepository(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("products"))
	core, logs := observer.New(zapcore.DebugLevel)
	suite.logs = logs
	suite.uow = postgres.NewGormUnitOfWork(suite.database.DB, zap.New(core))
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) newProduct(code string) *product.Product {
	p, err := product.NewProduct(kernel.NewUUID(), code, "Product "+code, "pcs")
	suite.Require().NoError(err)
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDo_Commits() {
	ctx := suite.T().Context()
	first := suite.newProduct("P-1")
	second := suite.newProduct("P-2")

	err := suite.uow.Do(ctx, func(ctx context.Context) error {
		if err := suite.products.Add(ctx, first); err != nil {
			return err
		}
		return suite.products.Add(ctx, second)
	})

	suite.Require().NoError(err)
	_, err = suite.products.Get(ctx, first.ID())
	suite.NoError(err)
	_, err = suite.products.Get(ctx, second.ID())
	suite.NoError(err)

	entries := suite.logs.FilterMessage("unit of work committed").All()
	suite.Require().Len(entries, 1)
	suite.ElementsMatch(
		[]any{"*product.Product:" + first.ID().String(), "*product.Product:" + second.ID().String()},
		entries[0].ContextMap()["aggregates"],
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDo_RollsBackOnError() {
	ctx := suite.T().Context()
	p := suite.newProduct("P-1")
	boom := errors.New("boom")

	err := suite.uow.Do(ctx, func(ctx context.Context) error {
		if err := suite.products.Add(ctx, p); err != nil {
			return err
		}
		return boom
	})

	suite.ErrorIs(err, boom)
	_, err = suite.products.Get(ctx, p.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.Zero(suite.logs.FilterMessage("unit of work committed").Len())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDo_RollsBackOnPanic() {
	ctx := suite.T().Context()
	p := suite.newProduct("P-1")

	suite.Panics(func() {
		_ = suite.uow.Do(ctx, func(ctx context.Context) error {
			suite.Require().NoError(suite.products.Add(ctx, p))
			panic("unexpected")
		})
	})

	_, err := suite.products.Get(ctx, p.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDo_NestedCallJoinsOuterUnit() {
	ctx := suite.T().Context()
	outer := suite.newProduct("P-1")
	inner := suite.newProduct("P-2")
	boom := errors.New("boom")

	err := suite.uow.Do(ctx, func(ctx context.Context) error {
		suite.Require().NoError(suite.products.Add(ctx, outer))
		suite.Require().NoError(suite.uow.Do(ctx, func(ctx context.Context) error {
			return suite.products.Add(ctx, inner)
		}))
		suite.Equal([]string{
			"*product.Product:" + outer.ID().String(),
			"*product.Product:" + inner.ID().String(),
		}, postgres.TrackedAggregates(ctx))
		return boom
	})

	suite.ErrorIs(err, boom)
	_, err = suite.products.Get(ctx, inner.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConn_OutsideUnitAutoCommits() {
	ctx := suite.T().Context()
	p := suite.newProduct("P-1")

	suite.Require().NoError(suite.products.Add(ctx, p))

	suite.Nil(postgres.TrackedAggregates(ctx))
	_, err := suite.products.Get(ctx, p.ID())
	suite.NoError(err)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
