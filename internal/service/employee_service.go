package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"Backoffice/internal/audit"
	"Backoffice/internal/cache"
	dom "Backoffice/internal/domain"
	"Backoffice/internal/repo"
	"Backoffice/internal/utils"
	"Backoffice/internal/validation"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

type EmployeeService struct {
	repo  repo.EmployeeRepo
	cache *cache.EmployeeCache
	audit *audit.Producer
	log   *slog.Logger
	sf    singleflight.Group
}

// NewEmployeeService creates an EmployeeService. If c is nil, caching is
// disabled; if p is nil, no audit events are emitted.
func NewEmployeeService(r repo.EmployeeRepo, c *cache.EmployeeCache, p *audit.Producer, log *slog.Logger) *EmployeeService {
	return &EmployeeService{repo: r, cache: c, audit: p, log: log}
}

func (s *EmployeeService) Create(ctx context.Context, in validation.EmployeeInput) (dom.Employee, error) {
	if errs := validation.Employee(in); len(errs) > 0 {
		s.log.Warn("employee create rejected", "fields", fieldNames(errs))
		return dom.Employee{}, &ValidationError{Fields: errs}
	}
	e, err := employeeFromInput(in)
	if err != nil {
		return dom.Employee{}, err
	}

	// Advisory pre-checks; the unique indexes are the real backstop.
	if taken, err := s.repo.EmailExists(ctx, e.Email, 0); err != nil {
		return dom.Employee{}, err
	} else if taken {
		return dom.Employee{}, ErrDuplicateEmail
	}
	if e.EmployeeID != "" {
		if taken, err := s.repo.EmployeeIDExists(ctx, e.EmployeeID, 0); err != nil {
			return dom.Employee{}, err
		} else if taken {
			return dom.Employee{}, ErrDuplicateEmployeeID
		}
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return dom.Employee{}, mapEmployeeRepoError(err)
	}
	s.invalidateCache(ctx)
	s.emitAudit(ctx, "created", created.ID)
	s.log.Info("employee created", "id", created.ID, "employee_id", created.EmployeeID)
	return created, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id int64) (dom.Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Employee{}, ErrNotFound
		}
		return dom.Employee{}, err
	}
	return e, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]dom.Employee, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("employee:list", func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Employee), nil
	}
	return s.repo.List(ctx)
}

// Update replaces every field of the employee with the submitted values.
func (s *EmployeeService) Update(ctx context.Context, id int64, in validation.EmployeeInput) (dom.Employee, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Employee{}, ErrNotFound
		}
		return dom.Employee{}, err
	}
	if errs := validation.Employee(in); len(errs) > 0 {
		s.log.Warn("employee update rejected", "id", id, "fields", fieldNames(errs))
		return dom.Employee{}, &ValidationError{Fields: errs}
	}
	e, err := employeeFromInput(in)
	if err != nil {
		return dom.Employee{}, err
	}

	// Self-exclusion: keeping your own email or badge number is not a duplicate.
	if taken, err := s.repo.EmailExists(ctx, e.Email, id); err != nil {
		return dom.Employee{}, err
	} else if taken {
		return dom.Employee{}, ErrDuplicateEmail
	}
	if e.EmployeeID != "" {
		if taken, err := s.repo.EmployeeIDExists(ctx, e.EmployeeID, id); err != nil {
			return dom.Employee{}, err
		} else if taken {
			return dom.Employee{}, ErrDuplicateEmployeeID
		}
	}

	updated, err := s.repo.Update(ctx, id, e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Employee{}, ErrNotFound
		}
		return dom.Employee{}, mapEmployeeRepoError(err)
	}
	s.invalidateCache(ctx)
	s.emitAudit(ctx, "updated", updated.ID)
	s.log.Info("employee updated", "id", updated.ID, "employee_id", updated.EmployeeID)
	return updated, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateCache(ctx)
	s.emitAudit(ctx, "deleted", id)
	s.log.Info("employee deleted", "id", id)
	return nil
}

func (s *EmployeeService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}

func (s *EmployeeService) emitAudit(ctx context.Context, action string, id int64) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Emit(ctx, "employee", action, id); err != nil {
		s.log.Warn("audit emit failed", "action", action, "id", id, "err", err)
	}
}

// employeeFromInput builds the entity from already-validated raw input.
func employeeFromInput(in validation.EmployeeInput) (dom.Employee, error) {
	dob, err := validation.ParseDate(in.DateOfBirth)
	if err != nil {
		return dom.Employee{}, err
	}
	doj, err := validation.ParseDate(in.DateOfJoining)
	if err != nil {
		return dom.Employee{}, err
	}
	return dom.Employee{
		FullName:      strings.TrimSpace(in.FullName),
		DateOfBirth:   dob,
		Gender:        in.Gender,
		PhoneNumber:   strings.TrimSpace(in.PhoneNumber),
		Email:         strings.TrimSpace(in.Email),
		Address:       strings.TrimSpace(in.Address),
		JobTitle:      strings.TrimSpace(in.JobTitle),
		Department:    strings.TrimSpace(in.Department),
		EmployeeID:    strings.TrimSpace(in.EmployeeID),
		DateOfJoining: doj,
		WorkLocation:  strings.TrimSpace(in.WorkLocation),
	}, nil
}

// mapEmployeeRepoError turns a unique-index violation from the storage
// layer into the matching duplicate sentinel. This is what catches the
// race two concurrent creates can win past the advisory checks.
func mapEmployeeRepoError(err error) error {
	if constraint, ok := utils.UniqueConstraint(err); ok {
		if strings.Contains(constraint, "employee_id") {
			return ErrDuplicateEmployeeID
		}
		return ErrDuplicateEmail
	}
	return err
}

func fieldNames(errs validation.Errors) []string {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	return names
}
