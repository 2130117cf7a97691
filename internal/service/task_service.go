package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/trackerhq/project-tracker/internal/domain"
	"github.com/trackerhq/project-tracker/internal/events"
	"github.com/trackerhq/project-tracker/internal/repository"
	"github.com/trackerhq/project-tracker/pkg/util"
)

// TaskService coordinates task creation and listing within a project.
type TaskService struct {
	projects   repository.ProjectRepository
	tasks      repository.TaskRepository
	dispatcher events.Dispatcher
}

// NewTaskService builds the service.
func NewTaskService(projects repository.ProjectRepository, tasks repository.TaskRepository, dispatcher events.Dispatcher) *TaskService {
	return &TaskService{projects: projects, tasks: tasks, dispatcher: dispatcher}
}

// Create validates and persists a task under an existing project.
func (s *TaskService) Create(ctx context.Context, task *domain.Task, actor string) (*domain.Task, error) {
	if task.Title == "" {
		return nil, util.NewValidationError("task title required", nil)
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}
	if !domain.ValidTaskStatus(task.Status) {
		return nil, util.NewValidationError("unknown task status", map[string]any{"status": task.Status})
	}

	if _, err := s.projects.GetByID(ctx, task.ProjectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("project", map[string]any{"project_id": task.ProjectID})
		}
		return nil, err
	}

	task.CreatedBy = actor
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTaskCreated,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload: events.TaskCreatedPayload{
			TaskID:    task.ID,
			ProjectID: task.ProjectID,
			Title:     task.Title,
			Status:    task.Status,
		},
	})
	return task, nil
}

// ListByProject returns the tasks for one project.
func (s *TaskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("project", map[string]any{"project_id": projectID})
		}
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID)
}
