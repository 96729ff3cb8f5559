package domain

import "time"

// Task is the domain entity for an administrative task.
type Task struct {
	ID          int64
	Title       string
	Description string
	Completed   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
