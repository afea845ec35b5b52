package stocklocationrepo_test

import (
	"context"
	"testing"

	"production/internal/adapters/out/postgres/pgtest"
	"production/internal/adapters/out/postgres/stocklocationrepo"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stocklocation"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type StockLocationRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *stocklocationrepo.GormStockLocationRepository
}

func (suite *StockLocationRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repository = stocklocationrepo.NewGormStockLocationRepository(database.DB)
}

func (suite *StockLocationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("stock_locations"))
}

func (suite *StockLocationRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *StockLocationRepositoryIntegrationTestSuite) add(name string, parent *stocklocation.StockLocation) *stocklocation.StockLocation {
	var parentID *kernel.UUID
	if parent != nil {
		id := parent.ID()
		parentID = &id
	}
	location, err := stocklocation.NewStockLocation(kernel.NewUUID(), name, parentID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(suite.T().Context(), location))
	return location
}

func (suite *StockLocationRepositoryIntegrationTestSuite) TestGet() {
	warehouse := suite.add("Warehouse", nil)
	shelf := suite.add("Shelf A", warehouse)

	got, err := suite.repository.Get(suite.T().Context(), shelf.ID())

	suite.Require().NoError(err)
	suite.Equal("Shelf A", got.Name())
	suite.Require().NotNil(got.ParentID())
	suite.True(got.ParentID().IsEqual(warehouse.ID()))
}

func (suite *StockLocationRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StockLocationRepositoryIntegrationTestSuite) TestGetChildren() {
	north := suite.add("North", nil)
	south := suite.add("South", nil)
	shelfB := suite.add("Shelf B", north)
	shelfA := suite.add("Shelf A", south)
	suite.add("Bin 1", shelfA)

	got, err := suite.repository.GetChildren(suite.T().Context(), []kernel.UUID{north.ID(), south.ID()})

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(shelfA.ID(), got[0].ID())
	suite.Equal(shelfB.ID(), got[1].ID())
}

func (suite *StockLocationRepositoryIntegrationTestSuite) TestGetChildren_NoParents() {
	got, err := suite.repository.GetChildren(suite.T().Context(), nil)

	suite.Require().NoError(err)
	suite.Empty(got)
}

func TestStockLocationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StockLocationRepositoryIntegrationTestSuite))
}
