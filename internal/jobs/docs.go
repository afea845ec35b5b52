// Package jobs provides scheduled background tasks for the production service.
//
// Jobs are built on github.com/robfig/cron/v3. OperationsFinishedJob runs
// FinishCompletedOrdersCommand on a schedule (DefaultOperationsFinishedSchedule unless
// configured) so that orders whose operation orders are all done get finished even when
// nobody calls the finish endpoint.
//
//	job := jobs.NewOperationsFinishedJob(handler, cfg.OperationsFinishedSchedule, 30*time.Second, logger)
//	jobManager := jobs.NewJobManager(job)
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// Failed runs are logged and retried on the next tick.
package jobs
