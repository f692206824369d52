package jobs

import (
	"context"
	"errors"
	"time"

	"lots/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultChronographSchedule runs the sweep every 30 seconds.
const DefaultChronographSchedule = "*/30 * * * * *"

// CheckLotStatusesHandler is the use case the chronograph drives.
type CheckLotStatusesHandler interface {
	Handle(ctx context.Context, cmd commands.CheckLotStatusesCommand) (commands.CheckLotStatusesResult, error)
}

// ChronographJob periodically switches lots whose rectification period
// has ended.
type ChronographJob struct {
	handler  CheckLotStatusesHandler
	schedule string
	command  commands.CheckLotStatusesCommand
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewChronographJob(
	handler CheckLotStatusesHandler,
	schedule string,
	batchSize int,
	logger *zap.Logger,
) (*ChronographJob, error) {
	cmd, err := commands.NewCheckLotStatusesCommand(batchSize)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultChronographSchedule
	}

	logger = logger.With(zap.String("component", "chronograph_job"))
	cl := newCronLogger(logger)
	return &ChronographJob{
		handler:  handler,
		schedule: schedule,
		command:  cmd,
		timeout:  time.Minute,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
	}, nil
}

// Start registers the sweep on the schedule and starts the scheduler.
func (j *ChronographJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		j.RunOnce(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Chronograph job started", zap.String("schedule", j.schedule))
	return nil
}

// RunOnce performs a single sweep and logs its outcome.
func (j *ChronographJob) RunOnce(ctx context.Context) {
	result, err := j.handler.Handle(ctx, j.command)

	fields := []zap.Field{
		zap.Int("checked", result.Checked),
		zap.Int("switched", result.Switched),
	}
	switch {
	case err == nil:
		if result.Checked > 0 {
			j.logger.Info("Chronograph sweep finished", fields...)
		}
	case errors.Is(err, commands.ErrEventsNotPublished):
		j.logger.Warn("Chronograph sweep finished with unpublished events", append(fields, zap.Error(err))...)
	default:
		j.logger.Error("Chronograph sweep failed", append(fields, zap.Error(err))...)
	}
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *ChronographJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Chronograph job stopped")
}
