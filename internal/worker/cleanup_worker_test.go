package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trackerhq/project-tracker/internal/domain"
	"github.com/trackerhq/project-tracker/internal/events"
)

// archiveStub fakes the task repository's archival operation.
type archiveStub struct {
	archived int64
	err      error
	cutoffs  []time.Time
}

func (s *archiveStub) Create(context.Context, *domain.Task) error        { return nil }
func (s *archiveStub) CreateBatch(context.Context, []*domain.Task) error { return nil }
func (s *archiveStub) ListByProject(context.Context, string) ([]*domain.Task, error) {
	return nil, nil
}
func (s *archiveStub) CountByStatus(context.Context, string) (map[domain.TaskStatus]int64, error) {
	return nil, nil
}

func (s *archiveStub) ArchiveCompletedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.cutoffs = append(s.cutoffs, cutoff)
	return s.archived, s.err
}

func TestCleanupWorker_SweepArchivesAndPublishes(t *testing.T) {
	stub := &archiveStub{archived: 3}
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())

	var got []events.Event
	dispatcher.Subscribe(events.EventTasksArchived, func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})

	worker := NewCleanupWorker(stub, dispatcher, time.Hour, 90*24*time.Hour, zap.NewNop())
	worker.Sweep(context.Background())

	require.Len(t, stub.cutoffs, 1)
	// The cutoff must sit a full retention window in the past.
	assert.WithinDuration(t, time.Now().Add(-90*24*time.Hour), stub.cutoffs[0], time.Minute)

	require.Len(t, got, 1)
	payload, ok := got[0].Payload.(events.TasksArchivedPayload)
	require.True(t, ok)
	assert.Equal(t, int64(3), payload.Archived)
}

func TestCleanupWorker_NothingToArchive(t *testing.T) {
	stub := &archiveStub{archived: 0}
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())

	published := 0
	dispatcher.Subscribe(events.EventTasksArchived, func(context.Context, events.Event) error {
		published++
		return nil
	})

	worker := NewCleanupWorker(stub, dispatcher, time.Hour, time.Hour, zap.NewNop())
	worker.Sweep(context.Background())

	assert.Zero(t, published, "empty sweep must not publish")
}

func TestCleanupWorker_RepositoryErrorSwallowed(t *testing.T) {
	stub := &archiveStub{err: errors.New("db down")}
	worker := NewCleanupWorker(stub, events.NewInMemoryDispatcher(zap.NewNop()), time.Hour, time.Hour, zap.NewNop())

	// Must not panic or publish; the next tick retries.
	worker.Sweep(context.Background())
	assert.Len(t, stub.cutoffs, 1)
}
