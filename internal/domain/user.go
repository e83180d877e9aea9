package domain

import "time"

// User is the domain model for an account holder. Email is unique across all
// accounts; PasswordHash is never exposed through the API layer.
type User struct {
	ID           int64
	Email        string
	Username     string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
