package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"Backoffice/internal/repo"
	"Backoffice/internal/validation"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEmployeeService() (*EmployeeService, *repo.MemEmployeeRepo) {
	r := repo.NewMemEmployeeRepo()
	return NewEmployeeService(r, nil, nil, discardLogger()), r
}

func sampleEmployeeInput() validation.EmployeeInput {
	return validation.EmployeeInput{
		FullName:      "John Doe",
		DateOfBirth:   "1990-01-01",
		Gender:        "M",
		PhoneNumber:   "+1234567890",
		Email:         "john.doe@example.com",
		Address:       "123 Main St, City",
		JobTitle:      "Software Engineer",
		Department:    "Engineering",
		EmployeeID:    "EMP001",
		DateOfJoining: "2023-01-01",
		WorkLocation:  "New York",
	}
}

func TestEmployeeCreateRoundTrip(t *testing.T) {
	svc, _ := newEmployeeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleEmployeeInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected ID to be set")
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FullName != "John Doe" || got.Email != "john.doe@example.com" || got.EmployeeID != "EMP001" {
		t.Fatalf("unexpected fields: %+v", got)
	}
	if got.DateOfBirth.Format(validation.DateLayout) != "1990-01-01" {
		t.Fatalf("date_of_birth did not round trip: %v", got.DateOfBirth)
	}
	if got.DateOfJoining.Format(validation.DateLayout) != "2023-01-01" {
		t.Fatalf("date_of_joining did not round trip: %v", got.DateOfJoining)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("expected server-set timestamps")
	}
}

func TestEmployeeCreateValidation(t *testing.T) {
	svc, _ := newEmployeeService()
	in := sampleEmployeeInput()
	in.FullName = ""
	in.Email = "invalid-email"

	_, err := svc.Create(context.Background(), in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Fields["full_name"] != validation.MsgRequired {
		t.Fatalf("expected full_name required, got %v", verr.Fields)
	}
	if verr.Fields["email"] != validation.MsgInvalidEmail {
		t.Fatalf("expected email format error, got %v", verr.Fields)
	}
}

func TestEmployeeDuplicateEmail(t *testing.T) {
	svc, _ := newEmployeeService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, sampleEmployeeInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}

	second := sampleEmployeeInput()
	second.EmployeeID = "EMP002"
	_, err := svc.Create(ctx, second)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestEmployeeDuplicateEmployeeID(t *testing.T) {
	svc, _ := newEmployeeService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, sampleEmployeeInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}

	second := sampleEmployeeInput()
	second.Email = "different.email@example.com"
	_, err := svc.Create(ctx, second)
	if !errors.Is(err, ErrDuplicateEmployeeID) {
		t.Fatalf("expected ErrDuplicateEmployeeID, got %v", err)
	}
}

// The advisory pre-check can lose a race; the storage unique index must
// still surface as the duplicate sentinel.
func TestEmployeeDuplicateBackstop(t *testing.T) {
	mem := repo.NewMemEmployeeRepo()
	svc := NewEmployeeService(&blindExistsRepo{mem}, nil, nil, discardLogger())
	ctx := context.Background()

	if _, err := svc.Create(ctx, sampleEmployeeInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	second := sampleEmployeeInput()
	second.EmployeeID = "EMP002"
	_, err := svc.Create(ctx, second)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected storage backstop to map to ErrDuplicateEmail, got %v", err)
	}
}

// blindExistsRepo simulates the window where a concurrent writer has
// already inserted but the advisory existence checks do not see it yet.
type blindExistsRepo struct {
	*repo.MemEmployeeRepo
}

func (r *blindExistsRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	return false, nil
}

func (r *blindExistsRepo) EmployeeIDExists(ctx context.Context, employeeID string, excludeID int64) (bool, error) {
	return false, nil
}

func TestEmployeeUpdateSelfExclusion(t *testing.T) {
	svc, _ := newEmployeeService()
	ctx := context.Background()

	a, err := svc.Create(ctx, sampleEmployeeInput())
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	bIn := sampleEmployeeInput()
	bIn.Email = "jane.doe@example.com"
	bIn.EmployeeID = "EMP002"
	bIn.FullName = "Jane Doe"
	if _, err := svc.Create(ctx, bIn); err != nil {
		t.Fatalf("create b: %v", err)
	}

	// Taking B's email must fail.
	stolen := sampleEmployeeInput()
	stolen.Email = "jane.doe@example.com"
	if _, err := svc.Update(ctx, a.ID, stolen); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// Keeping your own email is not a duplicate.
	promoted := sampleEmployeeInput()
	promoted.JobTitle = "Senior Engineer"
	updated, err := svc.Update(ctx, a.ID, promoted)
	if err != nil {
		t.Fatalf("update with own email: %v", err)
	}
	if updated.JobTitle != "Senior Engineer" {
		t.Fatalf("expected new job title, got %q", updated.JobTitle)
	}
	if updated.Email != "john.doe@example.com" {
		t.Fatalf("email must be unchanged, got %q", updated.Email)
	}
}

func TestEmployeeUpdateNotFound(t *testing.T) {
	svc, _ := newEmployeeService()
	_, err := svc.Update(context.Background(), 999, sampleEmployeeInput())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEmployeeListOrdering(t *testing.T) {
	svc, _ := newEmployeeService()
	ctx := context.Background()

	// Created out of joining order on purpose.
	joinings := []struct {
		email string
		date  string
	}{
		{"b@example.com", "2022-06-01"},
		{"c@example.com", "2024-03-15"},
		{"a@example.com", "2021-01-01"},
	}
	for _, j := range joinings {
		in := sampleEmployeeInput()
		in.Email = j.email
		in.EmployeeID = ""
		in.DateOfJoining = j.date
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("create %s: %v", j.email, err)
		}
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 employees, got %d", len(list))
	}
	want := []string{"c@example.com", "b@example.com", "a@example.com"}
	for i, email := range want {
		if list[i].Email != email {
			t.Fatalf("position %d: expected %s, got %s", i, email, list[i].Email)
		}
	}
}

func TestEmployeeDelete(t *testing.T) {
	svc, _ := newEmployeeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleEmployeeInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty listing after delete, got %d", len(list))
	}

	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second delete, got %v", err)
	}
}

func TestEmployeeScenario(t *testing.T) {
	svc, _ := newEmployeeService()
	ctx := context.Background()

	first, err := svc.Create(ctx, sampleEmployeeInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := sampleEmployeeInput()
	dup.EmployeeID = "EMP099"
	if _, err := svc.Create(ctx, dup); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected duplicate email rejection, got %v", err)
	}

	promoted := sampleEmployeeInput()
	promoted.JobTitle = "Senior Engineer"
	if _, err := svc.Update(ctx, first.ID, promoted); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.JobTitle != "Senior Engineer" {
		t.Fatalf("expected promoted title, got %q", got.JobTitle)
	}
	if got.Email != "john.doe@example.com" {
		t.Fatalf("email must be unchanged, got %q", got.Email)
	}
}
