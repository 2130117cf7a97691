package events

import (
	"time"

	"github.com/trackerhq/project-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProjectCreated  EventType = "project_created"
	EventProjectUpdated  EventType = "project_updated"
	EventProjectDeleted  EventType = "project_deleted"
	EventTaskCreated     EventType = "task_created"
	EventTasksImported   EventType = "tasks_imported"
	EventTasksArchived   EventType = "tasks_archived"
	EventReportCompleted EventType = "report_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ProjectPayload payload for project lifecycle events.
type ProjectPayload struct {
	ProjectID string               `json:"project_id"`
	Name      string               `json:"name"`
	Status    domain.ProjectStatus `json:"status"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	TaskID    string            `json:"task_id"`
	ProjectID string            `json:"project_id"`
	Title     string            `json:"title"`
	Status    domain.TaskStatus `json:"status"`
}

// TasksImportedPayload payload.
type TasksImportedPayload struct {
	ProjectID string `json:"project_id"`
	Imported  int    `json:"imported"`
	Skipped   int    `json:"skipped"`
}

// TasksArchivedPayload payload.
type TasksArchivedPayload struct {
	Archived int64     `json:"archived"`
	Cutoff   time.Time `json:"cutoff"`
}

// ReportCompletedPayload payload.
type ReportCompletedPayload struct {
	ProjectID   string                      `json:"project_id"`
	RequestedBy string                      `json:"requested_by"`
	TaskCounts  map[domain.TaskStatus]int64 `json:"task_counts"`
}
