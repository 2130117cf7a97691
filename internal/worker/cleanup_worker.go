package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trackerhq/project-tracker/internal/events"
	"github.com/trackerhq/project-tracker/internal/repository"
)

// CleanupWorker is the scheduled maintenance job: it periodically archives
// completed tasks older than the retention window.
type CleanupWorker struct {
	tasks      repository.TaskRepository
	dispatcher events.Dispatcher
	interval   time.Duration
	retention  time.Duration
	logger     *zap.Logger
}

// NewCleanupWorker builds the worker.
func NewCleanupWorker(tasks repository.TaskRepository, dispatcher events.Dispatcher, interval, retention time.Duration, logger *zap.Logger) *CleanupWorker {
	return &CleanupWorker{
		tasks:      tasks,
		dispatcher: dispatcher,
		interval:   interval,
		retention:  retention,
		logger:     logger,
	}
}

// Run sweeps on the configured cadence until ctx is canceled. A missed run is
// not recovered; the next tick covers the same backlog anyway.
func (w *CleanupWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep archives one batch of stale completed tasks.
func (w *CleanupWorker) Sweep(ctx context.Context) {
	cutoff := time.Now().Add(-w.retention)

	archived, err := w.tasks.ArchiveCompletedBefore(ctx, cutoff)
	if err != nil {
		w.logger.Error("task cleanup failed", zap.Error(err))
		return
	}
	if archived == 0 {
		w.logger.Debug("task cleanup found nothing to archive")
		return
	}

	w.logger.Info("archived old tasks", zap.Int64("count", archived), zap.Time("cutoff", cutoff))
	_ = w.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTasksArchived,
		Timestamp: time.Now(),
		Payload: events.TasksArchivedPayload{
			Archived: archived,
			Cutoff:   cutoff,
		},
	})
}
