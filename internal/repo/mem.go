package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	dom "Backoffice/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// In-memory implementations of EmployeeRepo and TaskRepo, used by tests and
// cache-less local runs. They mimic Postgres behavior where it matters:
// missing rows surface as pgx.ErrNoRows and duplicate email/employee_id
// writes fail with a unique-violation PgError, same as the real indexes.

type MemEmployeeRepo struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]dom.Employee
}

func NewMemEmployeeRepo() *MemEmployeeRepo {
	return &MemEmployeeRepo{items: make(map[int64]dom.Employee)}
}

func (r *MemEmployeeRepo) Create(ctx context.Context, e dom.Employee) (dom.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnique(e, 0); err != nil {
		return dom.Employee{}, err
	}
	r.seq++
	now := time.Now().UTC()
	e.ID = r.seq
	e.CreatedAt = now
	e.UpdatedAt = now
	r.items[e.ID] = e
	return e, nil
}

func (r *MemEmployeeRepo) GetByID(ctx context.Context, id int64) (dom.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return dom.Employee{}, pgx.ErrNoRows
	}
	return e, nil
}

func (r *MemEmployeeRepo) List(ctx context.Context) ([]dom.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]dom.Employee, 0, len(r.items))
	for _, e := range r.items {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].DateOfJoining.Equal(list[j].DateOfJoining) {
			return list[i].DateOfJoining.After(list[j].DateOfJoining)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *MemEmployeeRepo) Update(ctx context.Context, id int64, e dom.Employee) (dom.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok {
		return dom.Employee{}, pgx.ErrNoRows
	}
	if err := r.checkUnique(e, id); err != nil {
		return dom.Employee{}, err
	}
	e.ID = id
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = time.Now().UTC()
	r.items[id] = e
	return e, nil
}

func (r *MemEmployeeRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *MemEmployeeRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.items {
		if e.ID != excludeID && e.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemEmployeeRepo) EmployeeIDExists(ctx context.Context, employeeID string, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.items {
		if e.ID != excludeID && e.EmployeeID != "" && e.EmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

// checkUnique is the in-memory stand-in for the unique indexes. Caller holds the lock.
func (r *MemEmployeeRepo) checkUnique(e dom.Employee, excludeID int64) error {
	for _, other := range r.items {
		if other.ID == excludeID {
			continue
		}
		if other.Email == e.Email {
			return uniqueViolation("employees_email_key")
		}
		if e.EmployeeID != "" && other.EmployeeID == e.EmployeeID {
			return uniqueViolation("employees_employee_id_key")
		}
	}
	return nil
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint \"" + constraint + "\"",
		ConstraintName: constraint,
	}
}

type MemTaskRepo struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]dom.Task
}

func NewMemTaskRepo() *MemTaskRepo {
	return &MemTaskRepo{items: make(map[int64]dom.Task)}
}

func (r *MemTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	now := time.Now().UTC()
	t.ID = r.seq
	t.CreatedAt = now
	t.UpdatedAt = now
	r.items[t.ID] = t
	return t, nil
}

func (r *MemTaskRepo) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	return t, nil
}

func (r *MemTaskRepo) List(ctx context.Context) ([]dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]dom.Task, 0, len(r.items))
	for _, t := range r.items {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *MemTaskRepo) Update(ctx context.Context, id int64, t dom.Task) (dom.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[id]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	t.ID = id
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	r.items[id] = t
	return t, nil
}

func (r *MemTaskRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}
