// Package jobs provides scheduled background tasks for the lot registry.
//
// Jobs are cron-based (github.com/robfig/cron/v3 with a seconds field).
//
// # Available Jobs
//
// ChronographJob sweeps lots whose rectification period has ended and lets
// the chronograph switch them from "pending" to "active.salable". The
// schedule comes from CHRONOGRAPH_SCHEDULE, "*/30 * * * * *" by default.
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(checkLotStatusesHandler, cfg.ChronographSchedule, cfg.ChronographBatchSize, logger)
//	if err != nil {
//		return err
//	}
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A sweep that fails for some lots is logged and retried on the next tick.
// Overlapping ticks are skipped while a sweep is still running.
package jobs
