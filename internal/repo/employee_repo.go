package repo

import (
	"context"

	dom "Backoffice/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EmployeeRepo provides employee persistence. The unique indexes on email
// and employee_id live in the storage layer and remain the authoritative
// duplicate check; EmailExists/EmployeeIDExists exist to reject duplicates
// with a friendly error before the index would.
type EmployeeRepo interface {
	Create(ctx context.Context, e dom.Employee) (dom.Employee, error)
	GetByID(ctx context.Context, id int64) (dom.Employee, error)
	List(ctx context.Context) ([]dom.Employee, error)
	Update(ctx context.Context, id int64, e dom.Employee) (dom.Employee, error)
	Delete(ctx context.Context, id int64) error
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	EmployeeIDExists(ctx context.Context, employeeID string, excludeID int64) (bool, error)
}

type PGEmployeeRepo struct {
	db *pgxpool.Pool
}

func NewPGEmployeeRepo(db *pgxpool.Pool) *PGEmployeeRepo {
	return &PGEmployeeRepo{db: db}
}

const employeeColumns = `id, full_name, date_of_birth, gender, phone_number, email, address,
		job_title, department, employee_id, date_of_joining, work_location, created_at, updated_at`

func (r *PGEmployeeRepo) Create(ctx context.Context, e dom.Employee) (dom.Employee, error) {
	query := `
		INSERT INTO employees (full_name, date_of_birth, gender, phone_number, email, address,
			job_title, department, employee_id, date_of_joining, work_location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + employeeColumns
	row := r.db.QueryRow(ctx, query,
		e.FullName, e.DateOfBirth, e.Gender, e.PhoneNumber, e.Email, e.Address,
		e.JobTitle, e.Department, nullableString(e.EmployeeID), e.DateOfJoining, e.WorkLocation,
	)
	return scanEmployee(row)
}

func (r *PGEmployeeRepo) GetByID(ctx context.Context, id int64) (dom.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	return scanEmployee(r.db.QueryRow(ctx, query, id))
}

func (r *PGEmployeeRepo) List(ctx context.Context) ([]dom.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY date_of_joining DESC, id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *PGEmployeeRepo) Update(ctx context.Context, id int64, e dom.Employee) (dom.Employee, error) {
	query := `
		UPDATE employees
		SET full_name = $2, date_of_birth = $3, gender = $4, phone_number = $5, email = $6,
			address = $7, job_title = $8, department = $9, employee_id = $10,
			date_of_joining = $11, work_location = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns
	row := r.db.QueryRow(ctx, query, id,
		e.FullName, e.DateOfBirth, e.Gender, e.PhoneNumber, e.Email, e.Address,
		e.JobTitle, e.Department, nullableString(e.EmployeeID), e.DateOfJoining, e.WorkLocation,
	)
	return scanEmployee(row)
}

func (r *PGEmployeeRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PGEmployeeRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1 AND id <> $2)`,
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *PGEmployeeRepo) EmployeeIDExists(ctx context.Context, employeeID string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE employee_id = $1 AND id <> $2)`,
		employeeID, excludeID,
	).Scan(&exists)
	return exists, err
}

func scanEmployee(row pgx.Row) (dom.Employee, error) {
	var e dom.Employee
	var employeeID *string
	err := row.Scan(
		&e.ID, &e.FullName, &e.DateOfBirth, &e.Gender, &e.PhoneNumber, &e.Email, &e.Address,
		&e.JobTitle, &e.Department, &employeeID, &e.DateOfJoining, &e.WorkLocation,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return dom.Employee{}, err
	}
	if employeeID != nil {
		e.EmployeeID = *employeeID
	}
	return e, nil
}

// nullableString maps "" to NULL so the partial unique index on
// employee_id ignores employees without a badge number.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
