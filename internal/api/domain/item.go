package domain

import "time"

type Item struct {
	ID          string
	Title       string
	Description string
	OwnerID     string // Foreign key to users table
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
