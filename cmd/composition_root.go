package cmd

import (
	"production/internal/adapters/in/http"
	"production/internal/adapters/out/postgres"
	"production/internal/adapters/out/postgres/costsheetrepo"
	"production/internal/adapters/out/postgres/manuforderrepo"
	"production/internal/adapters/out/postgres/messagerepo"
	"production/internal/adapters/out/postgres/productrepo"
	"production/internal/adapters/out/postgres/sequencerepo"
	"production/internal/adapters/out/postgres/stocklocationrepo"
	"production/internal/adapters/out/postgres/stockmoverepo"
	"production/internal/adapters/out/settings"
	"production/internal/core/application/costing"
	"production/internal/core/application/stockmoves"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/application/workflow"
	"production/internal/core/domain/services"
	"production/internal/jobs"
	"production/internal/pkg/clock"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg      Config
	gormDB   *gorm.DB
	logger   *zap.Logger
	uow      *postgres.GormUnitOfWork
	orders   *manuforderrepo.GormManufOrderRepository
	reasons  *manuforderrepo.GormCancelReasonRepository
	workflow *workflow.ManufOrderWorkflow
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) (CompositionRoot, error) {
	loc, err := loadLocation(cfg.TimeZone)
	if err != nil {
		return CompositionRoot{}, err
	}
	clk := clock.NewSystem(loc)

	uow := postgres.NewGormUnitOfWork(gormDB, logger)
	orders := manuforderrepo.NewGormManufOrderRepository(gormDB)
	products := productrepo.NewGormProductRepository(gormDB)
	messages := messagerepo.NewGormMessageRepository(gormDB)

	appSettings, err := settings.NewAppSettings(settings.Config{
		NbDecimalDigitForUnitPrice:      cfg.NbDecimalDigitForUnitPrice,
		NbDecimalDigitForBomQty:         cfg.NbDecimalDigitForBomQty,
		SupplychainEnabled:              cfg.SupplychainEnabled,
		FinishMoAutomaticEmail:          cfg.FinishMoAutomaticEmail,
		FinishMoMessageTemplateName:     cfg.FinishMoMessageTemplateName,
		PartFinishMoAutomaticEmail:      cfg.PartFinishMoAutomaticEmail,
		PartFinishMoMessageTemplateName: cfg.PartFinishMoMessageTemplateName,
		TemplateCacheTTL:                cfg.TemplateCacheTTL,
	}, messages)
	if err != nil {
		return CompositionRoot{}, err
	}

	stockMoveService, err := stockmoves.NewStockMoveService(stockmoverepo.NewGormStockMoveRepository(gormDB), clk)
	if err != nil {
		return CompositionRoot{}, err
	}
	costSheetService, err := costing.NewCostSheetService(products, costsheetrepo.NewGormCostSheetRepository(gormDB), appSettings)
	if err != nil {
		return CompositionRoot{}, err
	}
	messageService, err := messagerepo.NewOutboxMessageService(messages, clk)
	if err != nil {
		return CompositionRoot{}, err
	}

	wf, err := workflow.NewManufOrderWorkflow(workflow.Deps{
		UnitOfWork:  uow,
		Orders:      orders,
		Products:    products,
		Operations:  services.NewOperationOrderWorkflowService(clk),
		ManufOrders: workflow.NewManufOrderService(sequencerepo.NewGormSequenceRepository(gormDB), appSettings),
		StockMoves:  stockMoveService,
		CostSheets:  costSheetService,
		Messages:    messageService,
		Settings:    appSettings,
		Prices:      services.NewProductPriceService(),
		Clock:       clk,
		Logger:      logger,
	})
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		cfg:      cfg,
		gormDB:   gormDB,
		logger:   logger,
		uow:      uow,
		orders:   orders,
		reasons:  manuforderrepo.NewGormCancelReasonRepository(gormDB),
		workflow: wf,
	}, nil
}

func (c *CompositionRoot) CreateChangeManufOrderStatusCommandHandler() commands.ChangeManufOrderStatusCommandHandler {
	return commands.NewChangeManufOrderStatusCommandHandler(c.uow, c.orders, c.workflow)
}

func (c *CompositionRoot) CreateCancelManufOrderCommandHandler() commands.CancelManufOrderCommandHandler {
	return commands.NewCancelManufOrderCommandHandler(c.uow, c.orders, c.reasons, c.workflow)
}

func (c *CompositionRoot) CreateUpdatePlannedDatesCommandHandler() commands.UpdatePlannedDatesCommandHandler {
	return commands.NewUpdatePlannedDatesCommandHandler(c.uow, c.orders, c.workflow)
}

func (c *CompositionRoot) CreateFinishCompletedOrdersCommandHandler() commands.FinishCompletedOrdersCommandHandler {
	return commands.NewFinishCompletedOrdersCommandHandler(c.orders, c.workflow)
}

func (c *CompositionRoot) CreateGetManufOrderQueryHandler() queries.GetManufOrderQueryHandler {
	return queries.NewGetManufOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStockLocationContentQueryHandler() queries.GetStockLocationContentQueryHandler {
	return queries.NewGetStockLocationContentQueryHandler(stocklocationrepo.NewGormStockLocationRepository(c.gormDB))
}

func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(http.Handlers{
		ChangeStatus:            c.CreateChangeManufOrderStatusCommandHandler(),
		Cancel:                  c.CreateCancelManufOrderCommandHandler(),
		UpdatePlannedDates:      c.CreateUpdatePlannedDatesCommandHandler(),
		GetManufOrder:           c.CreateGetManufOrderQueryHandler(),
		GetStockLocationContent: c.CreateGetStockLocationContentQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := c.CreateFinishCompletedOrdersCommandHandler()
	return jobs.NewJobManager(jobs.NewOperationsFinishedJob(
		&handler,
		c.cfg.OperationsFinishedSchedule,
		c.cfg.OperationsFinishedTimeout,
		c.logger,
	))
}
