// Package validation holds the business-rule checks shared by the HTML
// form handlers and the REST handlers. Storage-level constraints
// (unique indexes) are checked separately and remain authoritative.
package validation

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the wire format for date-only fields.
const DateLayout = "2006-01-02"

const (
	MsgRequired      = "This field is required."
	MsgInvalidEmail  = "Enter a valid email address."
	MsgInvalidPhone  = "Enter a valid phone number starting with + and at least 10 digits."
	MsgInvalidGender = "Select a valid gender."
	MsgInvalidDate   = "Enter a valid date in YYYY-MM-DD format."
	MsgTitleRequired = "Title is required"
)

// phoneRe is the single phone rule on both surfaces: a leading + followed
// by 9 to 15 digits.
var phoneRe = regexp.MustCompile(`^\+[0-9]{9,15}$`)

// Errors maps an invalid field name to a human-readable message.
// An empty map means the input passed all business rules.
type Errors map[string]string

// EmployeeInput carries the raw submitted field values for an employee,
// before any parsing.
type EmployeeInput struct {
	FullName      string
	DateOfBirth   string
	Gender        string
	PhoneNumber   string
	Email         string
	Address       string
	JobTitle      string
	Department    string
	EmployeeID    string
	DateOfJoining string
	WorkLocation  string
}

// Employee checks the business rules for an employee payload.
func Employee(in EmployeeInput) Errors {
	errs := Errors{}

	required := []struct {
		name  string
		value string
	}{
		{"full_name", in.FullName},
		{"date_of_birth", in.DateOfBirth},
		{"gender", in.Gender},
		{"phone_number", in.PhoneNumber},
		{"email", in.Email},
		{"address", in.Address},
		{"job_title", in.JobTitle},
		{"department", in.Department},
		{"date_of_joining", in.DateOfJoining},
		{"work_location", in.WorkLocation},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs[f.name] = MsgRequired
		}
	}

	if _, ok := errs["email"]; !ok {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			errs["email"] = MsgInvalidEmail
		}
	}
	if _, ok := errs["phone_number"]; !ok {
		if !phoneRe.MatchString(in.PhoneNumber) {
			errs["phone_number"] = MsgInvalidPhone
		}
	}
	if _, ok := errs["gender"]; !ok {
		switch in.Gender {
		case "M", "F", "O":
		default:
			errs["gender"] = MsgInvalidGender
		}
	}
	if _, ok := errs["date_of_birth"]; !ok {
		if _, err := ParseDate(in.DateOfBirth); err != nil {
			errs["date_of_birth"] = MsgInvalidDate
		}
	}
	if _, ok := errs["date_of_joining"]; !ok {
		if _, err := ParseDate(in.DateOfJoining); err != nil {
			errs["date_of_joining"] = MsgInvalidDate
		}
	}

	return errs
}

// Task checks the business rules for a task payload.
func Task(title string) Errors {
	errs := Errors{}
	if strings.TrimSpace(title) == "" {
		errs["title"] = MsgTitleRequired
	}
	return errs
}

// ParseDate parses a date-only value in DateLayout, in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}
