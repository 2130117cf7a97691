package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trackerhq/project-tracker/internal/domain"
	"github.com/trackerhq/project-tracker/internal/events"
	"github.com/trackerhq/project-tracker/internal/repository"
	"github.com/trackerhq/project-tracker/pkg/util"
)

// ProjectService coordinates project CRUD and emits lifecycle events.
type ProjectService struct {
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
}

// NewProjectService builds the service.
func NewProjectService(projects repository.ProjectRepository, dispatcher events.Dispatcher) *ProjectService {
	return &ProjectService{projects: projects, dispatcher: dispatcher}
}

// Create validates and persists a new project.
func (s *ProjectService) Create(ctx context.Context, project *domain.Project, actor string) (*domain.Project, error) {
	if project.Name == "" {
		return nil, util.NewValidationError("project name required", nil)
	}
	if project.Status == "" {
		project.Status = domain.ProjectStatusActive
	}
	if !domain.ValidProjectStatus(project.Status) {
		return nil, util.NewValidationError("unknown project status", map[string]any{"status": project.Status})
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventProjectCreated,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload: events.ProjectPayload{
			ProjectID: project.ID,
			Name:      project.Name,
			Status:    project.Status,
		},
	})
	return project, nil
}

// Update replaces a project's mutable fields.
func (s *ProjectService) Update(ctx context.Context, project *domain.Project, actor string) (*domain.Project, error) {
	if project.Name == "" {
		return nil, util.NewValidationError("project name required", nil)
	}
	if !domain.ValidProjectStatus(project.Status) {
		return nil, util.NewValidationError("unknown project status", map[string]any{"status": project.Status})
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventProjectUpdated,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload: events.ProjectPayload{
			ProjectID: project.ID,
			Name:      project.Name,
			Status:    project.Status,
		},
	})
	return project, nil
}

// GetByID loads one project.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// List returns projects, optionally filtered by status.
func (s *ProjectService) List(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error) {
	if status != "" && !domain.ValidProjectStatus(status) {
		return nil, util.NewValidationError("unknown project status", map[string]any{"status": status})
	}
	return s.projects.List(ctx, status)
}

// Delete removes a project and its tasks.
func (s *ProjectService) Delete(ctx context.Context, id string, actor string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventProjectDeleted,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   events.ProjectPayload{ProjectID: id},
	})
	return nil
}
