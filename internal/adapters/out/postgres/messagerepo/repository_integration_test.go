package messagerepo_test

import (
	"context"
	"testing"
	"time"

	"production/internal/adapters/out/postgres/messagerepo"
	"production/internal/adapters/out/postgres/pgtest"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/message"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type MessageRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *messagerepo.GormMessageRepository
}

func (suite *MessageRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repository = messagerepo.NewGormMessageRepository(database.DB)
}

func (suite *MessageRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate("messages", "message_templates"))
}

func (suite *MessageRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *MessageRepositoryIntegrationTestSuite) TestTemplate_AddAndGet() {
	ctx := suite.T().Context()
	tpl, err := message.NewTemplate("mo-finished", "{{.Ref}} finished", "Order {{.Ref}} is done.")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.AddTemplate(ctx, tpl))
	got, err := suite.repository.GetTemplate(ctx, "mo-finished")

	suite.Require().NoError(err)
	suite.Equal(tpl, got)
}

func (suite *MessageRepositoryIntegrationTestSuite) TestTemplate_NotFound() {
	_, err := suite.repository.GetTemplate(suite.T().Context(), "unknown")

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *MessageRepositoryIntegrationTestSuite) TestMessages_AddAndGetFor() {
	ctx := suite.T().Context()
	tpl, err := message.NewTemplate("mo-finished", "{{.Ref}} finished", "Order {{.Ref}} is done.")
	suite.Require().NoError(err)
	relatedID := kernel.NewUUID()
	now := time.Date(2024, 6, 3, 17, 0, 0, 0, time.UTC)

	first, err := message.NewMessage(kernel.NewUUID(), tpl, relatedID, map[string]string{"Ref": "MO00001"}, now)
	suite.Require().NoError(err)
	second, err := message.NewMessage(kernel.NewUUID(), tpl, relatedID, map[string]string{"Ref": "MO00001"},
		now.Add(time.Hour))
	suite.Require().NoError(err)
	other, err := message.NewMessage(kernel.NewUUID(), tpl, kernel.NewUUID(), map[string]string{"Ref": "MO00002"}, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AddMessage(ctx, second))
	suite.Require().NoError(suite.repository.AddMessage(ctx, first))
	suite.Require().NoError(suite.repository.AddMessage(ctx, other))

	got, err := suite.repository.GetMessagesFor(ctx, relatedID)

	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal(first.ID(), got[0].ID())
	suite.Equal("MO00001 finished", got[0].Subject())
	suite.Equal("Order MO00001 is done.", got[0].Body())
	suite.Equal("mo-finished", got[0].TemplateName())
	suite.True(now.Equal(got[0].CreatedAt()))
	suite.Equal(second.ID(), got[1].ID())
}

func TestMessageRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MessageRepositoryIntegrationTestSuite))
}
