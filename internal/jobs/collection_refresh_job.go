package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultCollectionRefreshSchedule runs the sweep every five minutes.
const DefaultCollectionRefreshSchedule = "0 */5 * * * *"

type collectionRefresher interface {
	Handle(ctx context.Context, cmd commands.RefreshCollectionStatusesCommand) (int, error)
}

// CollectionRefreshJob rewrites stale cached collection statuses on a schedule.
type CollectionRefreshJob struct {
	handler  collectionRefresher
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewCollectionRefreshJob(handler collectionRefresher, schedule string, logger *slog.Logger) *CollectionRefreshJob {
	if schedule == "" {
		schedule = DefaultCollectionRefreshSchedule
	}
	return &CollectionRefreshJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "collection_refresh_job"),
	}
}

func (j *CollectionRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Collection refresh job started", "schedule", j.schedule)
	return nil
}

func (j *CollectionRefreshJob) run(ctx context.Context) {
	// A sweep can refresh some collections and fail on others.
	changed, err := j.handler.Handle(ctx, commands.NewRefreshCollectionStatusesCommand())
	if changed > 0 {
		j.logger.InfoContext(ctx, "Collection statuses refreshed", "changed", changed)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Collection refresh job failed", "error", err)
	}
}

func (j *CollectionRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Collection refresh job stopped")
}
