package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/trackerhq/project-tracker/internal/domain"
	"github.com/trackerhq/project-tracker/internal/events"
	"github.com/trackerhq/project-tracker/internal/repository"
	"github.com/trackerhq/project-tracker/pkg/util"
)

// RowFailure records why one CSV line was skipped.
type RowFailure struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportSummary is the result of one import run.
type ImportSummary struct {
	Imported int          `json:"imported"`
	Skipped  int          `json:"skipped"`
	Failures []RowFailure `json:"failures,omitempty"`
}

// TaskImporter runs the read / process / write pipeline: CSV rows in, tasks
// persisted in fixed-size chunks. Bad rows are skipped with a reason; only
// storage failures abort the run.
type TaskImporter struct {
	projects   repository.ProjectRepository
	tasks      repository.TaskRepository
	dispatcher events.Dispatcher
	chunkSize  int
	logger     *zap.Logger
}

// NewTaskImporter builds the pipeline.
func NewTaskImporter(projects repository.ProjectRepository, tasks repository.TaskRepository, dispatcher events.Dispatcher, chunkSize int, logger *zap.Logger) *TaskImporter {
	if chunkSize <= 0 {
		chunkSize = 50
	}
	return &TaskImporter{
		projects:   projects,
		tasks:      tasks,
		dispatcher: dispatcher,
		chunkSize:  chunkSize,
		logger:     logger,
	}
}

// Run imports "title,status" CSV rows into the given project on behalf of
// actor.
func (i *TaskImporter) Run(ctx context.Context, projectID string, input io.Reader, actor string) (*ImportSummary, error) {
	if _, err := i.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("project", map[string]any{"project_id": projectID})
		}
		return nil, err
	}

	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	summary := &ImportSummary{}
	chunk := make([]*domain.Task, 0, i.chunkSize)
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			summary.Skipped++
			summary.Failures = append(summary.Failures, RowFailure{Line: line, Reason: "unparseable row"})
			continue
		}

		task, reason := i.processRow(projectID, record, actor)
		if task == nil {
			summary.Skipped++
			summary.Failures = append(summary.Failures, RowFailure{Line: line, Reason: reason})
			continue
		}

		chunk = append(chunk, task)
		if len(chunk) >= i.chunkSize {
			if err := i.writeChunk(ctx, chunk, summary); err != nil {
				return nil, err
			}
			chunk = chunk[:0]
		}
	}

	if err := i.writeChunk(ctx, chunk, summary); err != nil {
		return nil, err
	}

	i.logger.Info("task import finished",
		zap.String("project_id", projectID),
		zap.Int("imported", summary.Imported),
		zap.Int("skipped", summary.Skipped),
	)

	_ = i.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTasksImported,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload: events.TasksImportedPayload{
			ProjectID: projectID,
			Imported:  summary.Imported,
			Skipped:   summary.Skipped,
		},
	})
	return summary, nil
}

// processRow validates and transforms one CSV record. A nil task means the
// row is discarded with the returned reason.
func (i *TaskImporter) processRow(projectID string, record []string, actor string) (*domain.Task, string) {
	if len(record) < 2 {
		return nil, "expected title,status"
	}

	title := strings.TrimSpace(record[0])
	if title == "" {
		return nil, "empty title"
	}

	status := domain.TaskStatus(strings.TrimSpace(record[1]))
	if !domain.ValidTaskStatus(status) {
		return nil, fmt.Sprintf("unknown status %q", record[1])
	}

	return &domain.Task{
		ProjectID: projectID,
		Title:     title,
		Status:    status,
		CreatedBy: actor,
	}, ""
}

func (i *TaskImporter) writeChunk(ctx context.Context, chunk []*domain.Task, summary *ImportSummary) error {
	if len(chunk) == 0 {
		return nil
	}
	if err := i.tasks.CreateBatch(ctx, chunk); err != nil {
		return err
	}
	summary.Imported += len(chunk)
	i.logger.Debug("import chunk written", zap.Int("size", len(chunk)))
	return nil
}
