package dto

import "time"

// EmployeeRequest is the JSON body for creating or replacing an employee.
// Dates travel as YYYY-MM-DD strings so that the shared validation rules
// see exactly what the client submitted.
type EmployeeRequest struct {
	FullName      string `json:"full_name"`
	DateOfBirth   string `json:"date_of_birth"`
	Gender        string `json:"gender"`
	PhoneNumber   string `json:"phone_number"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	JobTitle      string `json:"job_title"`
	Department    string `json:"department"`
	EmployeeID    string `json:"employee_id"`
	DateOfJoining string `json:"date_of_joining"`
	WorkLocation  string `json:"work_location"`
}

type EmployeeResponse struct {
	ID            int64     `json:"id"`
	FullName      string    `json:"full_name"`
	DateOfBirth   string    `json:"date_of_birth"`
	Gender        string    `json:"gender"`
	PhoneNumber   string    `json:"phone_number"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	JobTitle      string    `json:"job_title"`
	Department    string    `json:"department"`
	EmployeeID    string    `json:"employee_id"`
	DateOfJoining string    `json:"date_of_joining"`
	WorkLocation  string    `json:"work_location"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListEmployeesResponse struct {
	Items []EmployeeResponse `json:"items"`
}
