package domain

import "time"

// UserAccount is the permanent identity record held by the identity store.
type UserAccount struct {
	ID           string
	Username     string
	PasswordHash string
	Roles        []string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
