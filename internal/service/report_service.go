package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/trackerhq/project-tracker/internal/events"
	"github.com/trackerhq/project-tracker/internal/repository"
	"github.com/trackerhq/project-tracker/pkg/util"
)

const reportTimeout = 30 * time.Second

// ReportService generates per-project task reports in the background. The
// request path only verifies the project and hands off; completion is
// announced through the dispatcher.
type ReportService struct {
	projects repository.ProjectRepository
	tasks    repository.TaskRepository

	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewReportService builds the service.
func NewReportService(projects repository.ProjectRepository, tasks repository.TaskRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ReportService {
	return &ReportService{projects: projects, tasks: tasks, dispatcher: dispatcher, logger: logger}
}

// Request verifies the project exists and schedules report generation. It
// returns before the report is computed.
func (s *ReportService) Request(ctx context.Context, projectID, requestedBy string) error {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("project", map[string]any{"project_id": projectID})
		}
		return err
	}

	go s.generate(projectID, requestedBy)
	return nil
}

func (s *ReportService) generate(projectID, requestedBy string) {
	// Detached from the request context: the caller already got its 202.
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	counts, err := s.tasks.CountByStatus(ctx, projectID)
	if err != nil {
		s.logger.Error("report generation failed",
			zap.String("project_id", projectID),
			zap.Error(err),
		)
		return
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventReportCompleted,
		Actor:     requestedBy,
		Timestamp: time.Now(),
		Payload: events.ReportCompletedPayload{
			ProjectID:   projectID,
			RequestedBy: requestedBy,
			TaskCounts:  counts,
		},
	})
	s.logger.Info("report generated", zap.String("project_id", projectID), zap.String("requested_by", requestedBy))
}
