package repo

import (
	"context"

	dom "Backoffice/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, id int64) (dom.Task, error)
	List(ctx context.Context) ([]dom.Task, error)
	Update(ctx context.Context, id int64, t dom.Task) (dom.Task, error)
	Delete(ctx context.Context, id int64) error
}

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (title, description, completed)
		VALUES ($1, $2, $3)
		RETURNING id, title, description, completed, created_at, updated_at`
	var out dom.Task
	err := r.db.QueryRow(ctx, query, t.Title, t.Description, t.Completed).Scan(
		&out.ID, &out.Title, &out.Description, &out.Completed, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	query := `
		SELECT id, title, description, completed, created_at, updated_at
		FROM tasks WHERE id = $1`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTaskRepo) List(ctx context.Context) ([]dom.Task, error) {
	query := `
		SELECT id, title, description, completed, created_at, updated_at
		FROM tasks ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) Update(ctx context.Context, id int64, t dom.Task) (dom.Task, error) {
	query := `
		UPDATE tasks SET title = $2, description = $3, completed = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, description, completed, created_at, updated_at`
	var out dom.Task
	err := r.db.QueryRow(ctx, query, id, t.Title, t.Description, t.Completed).Scan(
		&out.ID, &out.Title, &out.Description, &out.Completed, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTaskRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
