// Package jobs provides scheduled background tasks built on github.com/robfig/cron/v3.
//
// ReadyForFinalizationJob sweeps open classifications on a cron schedule with a
// seconds field (default "0 * * * * *"), logs each one that already passes the
// finalization gate and publishes the count as a gauge. It never finalizes on
// its own; finalization stays an explicit operator command.
//
//	job := jobs.NewReadyForFinalizationJob(openHandler, summaryHandler, ledgerMetrics, "", logger)
//	manager := jobs.NewJobManager(job)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
package jobs
