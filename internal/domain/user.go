package domain

import "time"

// User is the domain model for registered account holders.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Memo         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
