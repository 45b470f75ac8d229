package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultCounterRepairSchedule runs the repair nightly at 03:00.
const DefaultCounterRepairSchedule = "0 0 3 * * *"

type counterRepairer interface {
	Handle(ctx context.Context, cmd commands.RepairCountersCommand) (commands.RepairReport, error)
}

// CounterRepairJob recomputes cart and box order counters from membership.
// Drift is logged as a warning since it means a write path missed an update.
type CounterRepairJob struct {
	handler  counterRepairer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewCounterRepairJob(handler counterRepairer, schedule string, logger *slog.Logger) *CounterRepairJob {
	if schedule == "" {
		schedule = DefaultCounterRepairSchedule
	}
	return &CounterRepairJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "counter_repair_job"),
	}
}

func (j *CounterRepairJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Counter repair job started", "schedule", j.schedule)
	return nil
}

func (j *CounterRepairJob) run(ctx context.Context) {
	report, err := j.handler.Handle(ctx, commands.NewRepairCountersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Counter repair job failed", "error", err)
		return
	}
	if report.CartsRepaired > 0 || report.BoxesRepaired > 0 {
		j.logger.WarnContext(ctx, "Container counters drifted and were repaired",
			"carts", report.CartsRepaired, "boxes", report.BoxesRepaired)
	}
}

func (j *CounterRepairJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Counter repair job stopped")
}
