package domain

import "time"

// ProjectStatus enumerates project lifecycle states.
type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "ACTIVE"
	ProjectStatusOnHold   ProjectStatus = "ON_HOLD"
	ProjectStatusFinished ProjectStatus = "FINISHED"
)

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectStatusActive, ProjectStatusOnHold, ProjectStatusFinished:
		return true
	}
	return false
}

// Project groups tasks under a deadline.
type Project struct {
	ID          string
	Name        string
	Description string
	Status      ProjectStatus
	Deadline    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
