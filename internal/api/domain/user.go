package domain

import "time"

type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string // argon2 encoded
	Active       bool
	Superuser    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
