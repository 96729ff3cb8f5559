package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"Backoffice/internal/validation"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrDuplicateEmployeeID = errors.New("employee ID already exists")
)

// ValidationError carries the per-field messages produced by the shared
// validation rules. Both surfaces unwrap it: the REST handlers render the
// field map as JSON, the form handlers re-render the form with it.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}
