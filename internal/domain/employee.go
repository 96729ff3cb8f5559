package domain

import "time"

// Employee is the domain entity for a staff record.
// It does not depend on gin, Postgres or Redis.
type Employee struct {
	ID            int64
	FullName      string
	DateOfBirth   time.Time // date only
	Gender        string    // "M", "F" or "O"
	PhoneNumber   string
	Email         string
	Address       string
	JobTitle      string
	Department    string
	EmployeeID    string    // badge number; optional, unique when set
	DateOfJoining time.Time // date only
	WorkLocation  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
