package stockmoverepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"production/internal/adapters/out/postgres"
	"production/internal/adapters/out/postgres/pgtest"
	"production/internal/adapters/out/postgres/stockmoverepo"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stockmove"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StockMoveRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *stockmoverepo.GormStockMoveRepository
}

func (suite *StockMoveRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repository = stockmoverepo.NewGormStockMoveRepository(database.DB)
}

func (suite *StockMoveRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("stock_move_lines", "stock_moves"))
}

func (suite *StockMoveRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *StockMoveRepositoryIntegrationTestSuite) newMove(
	manufOrderID kernel.UUID,
	direction stockmove.Direction,
	qtys ...string,
) *stockmove.StockMove {
	lines := make([]*stockmove.Line, 0, len(qtys))
	for _, q := range qtys {
		l, err := stockmove.NewLine(kernel.NewUUID(), kernel.NewUUID(), decimal.RequireFromString(q), "kg")
		suite.Require().NoError(err)
		lines = append(lines, l)
	}
	m, err := stockmove.NewStockMove(kernel.NewUUID(), manufOrderID, direction, lines)
	suite.Require().NoError(err)
	return m
}

func (suite *StockMoveRepositoryIntegrationTestSuite) TestAddAndGet_KeepsLineOrder() {
	ctx := suite.T().Context()
	move := suite.newMove(kernel.NewUUID(), stockmove.Consume, "1.5", "2", "0.125")

	suite.Require().NoError(suite.repository.Add(ctx, move))
	got, err := suite.repository.Get(ctx, move.ID())

	suite.Require().NoError(err)
	suite.Equal(stockmove.Planned, got.Status())
	suite.Equal(stockmove.Consume, got.Direction())
	suite.Require().Len(got.Lines(), 3)
	for i, l := range move.Lines() {
		suite.True(l.ID().IsEqual(got.Lines()[i].ID()))
		suite.True(l.Qty().Equal(got.Lines()[i].Qty()))
	}
}

func (suite *StockMoveRepositoryIntegrationTestSuite) TestUpdate_RealizeStoresBackReferences() {
	ctx := suite.T().Context()
	orderID := kernel.NewUUID()
	move := suite.newMove(orderID, stockmove.Produce, "4")
	suite.Require().NoError(suite.repository.Add(ctx, move))

	realizedAt := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	suite.Require().NoError(move.Realize(realizedAt))
	suite.Require().NoError(suite.repository.Update(ctx, move))

	got, err := suite.repository.Get(ctx, move.ID())
	suite.Require().NoError(err)
	suite.Equal(stockmove.Realized, got.Status())
	suite.True(realizedAt.Equal(*got.RealizedAt()))
	suite.Require().NotNil(got.Lines()[0].ProducedManufOrderID())
	suite.True(got.Lines()[0].ProducedManufOrderID().IsEqual(orderID))
	suite.Nil(got.Lines()[0].ConsumedManufOrderID())
}

func (suite *StockMoveRepositoryIntegrationTestSuite) TestUpdate_Unknown() {
	move := suite.newMove(kernel.NewUUID(), stockmove.Consume)

	err := suite.repository.Update(suite.T().Context(), move)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StockMoveRepositoryIntegrationTestSuite) TestGetByManufOrder() {
	ctx := suite.T().Context()
	orderID := kernel.NewUUID()
	first := suite.newMove(orderID, stockmove.Consume, "1")
	second := suite.newMove(orderID, stockmove.Consume, "2")
	produce := suite.newMove(orderID, stockmove.Produce, "3")
	other := suite.newMove(kernel.NewUUID(), stockmove.Consume, "4")
	for _, m := range []*stockmove.StockMove{first, second, produce, other} {
		suite.Require().NoError(suite.repository.Add(ctx, m))
	}

	consume, err := suite.repository.GetByManufOrder(ctx, orderID, stockmove.Consume)

	suite.Require().NoError(err)
	suite.Require().Len(consume, 2)
	suite.True(consume[0].ID().IsEqual(first.ID()))
	suite.True(consume[1].ID().IsEqual(second.ID()))
}

func (suite *StockMoveRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StockMoveRepositoryIntegrationTestSuite) TestUnitOfWork_RollsBackMoves() {
	ctx := suite.T().Context()
	uow := postgres.NewGormUnitOfWork(suite.database.DB, nil)
	move := suite.newMove(kernel.NewUUID(), stockmove.Consume, "1")
	boom := errors.New("boom")

	err := uow.Do(ctx, func(ctx context.Context) error {
		if err := suite.repository.Add(ctx, move); err != nil {
			return err
		}
		return boom
	})

	suite.ErrorIs(err, boom)
	_, err = suite.repository.Get(ctx, move.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestStockMoveRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StockMoveRepositoryIntegrationTestSuite))
}
