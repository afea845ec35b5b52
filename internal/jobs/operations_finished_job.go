package jobs

import (
	"context"
	"time"

	"production/internal/core/application/usecases/commands"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultOperationsFinishedSchedule checks in-progress orders once a minute.
const DefaultOperationsFinishedSchedule = "@every 1m"

var operationsFinishedRuns = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "production_operations_finished_job_runs_total",
		Help: "Runs of the operations finished job, by result",
	},
	[]string{"result"},
)

type finishCompletedOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.FinishCompletedOrdersCommand) error
}

// OperationsFinishedJob finishes the in-progress manufacturing orders whose operation
// orders are all finished. A run that is still going when the next one is due is skipped.
type OperationsFinishedJob struct {
	handler  finishCompletedOrdersHandler
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewOperationsFinishedJob(
	handler finishCompletedOrdersHandler,
	schedule string,
	timeout time.Duration,
	logger *zap.Logger,
) *OperationsFinishedJob {
	if schedule == "" {
		schedule = DefaultOperationsFinishedSchedule
	}
	logger = logger.Named("operations-finished-job")
	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger))

	return &OperationsFinishedJob{
		handler:  handler,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger))),
		logger:   logger,
	}
}

func (j *OperationsFinishedJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running check to complete.
func (j *OperationsFinishedJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("job stopped")
}

func (j *OperationsFinishedJob) run(ctx context.Context) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	started := time.Now()
	if err := j.handler.Handle(ctx, commands.NewFinishCompletedOrdersCommand()); err != nil {
		operationsFinishedRuns.WithLabelValues("failure").Inc()
		j.logger.Error("finishing completed orders failed", zap.Error(err))
		return
	}
	operationsFinishedRuns.WithLabelValues("success").Inc()
	j.logger.Debug("completed orders checked", zap.Duration("elapsed", time.Since(started)))
}

