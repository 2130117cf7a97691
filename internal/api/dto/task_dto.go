package dto

import (
	"time"

	"github.com/trackerhq/project-tracker/internal/domain"
)

// TaskRequest payload for creating a task.
type TaskRequest struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromTask maps a domain task to its wire form.
func FromTask(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		ProjectID: t.ProjectID,
		Title:     t.Title,
		Status:    string(t.Status),
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// FromTasks maps a task slice to wire form.
func FromTasks(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, FromTask(t))
	}
	return out
}
