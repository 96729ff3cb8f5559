package dto

import "time"

// TaskRequest is the JSON body for creating or replacing a task.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TaskResponse mirrors the persisted fields; created_at and updated_at
// are read-only, server-set.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListTasksResponse struct {
	Items []TaskResponse `json:"items"`
}
