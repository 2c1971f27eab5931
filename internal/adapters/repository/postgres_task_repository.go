package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/feelalive/aura-engine/internal/core/domain"
)

type PostgresTaskRepository struct {
	db *sqlx.DB
}

func NewPostgresTaskRepository(db *sqlx.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresTaskRepository) scanRow(row scannable) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.UserID, &t.Name, &t.Intensity, &t.Type, &t.Category,
		&t.DurationMinutes, &t.ImageVerifiable, &t.Status,
		&t.CreatedAt, &t.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresTaskRepository) Create(ctx context.Context, t *domain.Task) error {
	query := `
        INSERT INTO tasks (
            id, user_id, name, intensity, type, category,
            duration_minutes, image_verifiable, status, created_at, completed_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULL)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Name, t.Intensity, t.Type, t.Category,
		t.DurationMinutes, t.ImageVerifiable, t.Status, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `
        SELECT id, user_id, name, intensity, type, category,
               duration_minutes, image_verifiable, status, created_at, completed_at
        FROM tasks WHERE id = $1`

	t, err := r.scanRow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return t, nil
}

func (r *PostgresTaskRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Task, error) {
	query := `
        SELECT id, user_id, name, intensity, type, category,
               duration_minutes, image_verifiable, status, created_at, completed_at
        FROM tasks WHERE user_id = $1
        ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func (r *PostgresTaskRepository) Update(ctx context.Context, t *domain.Task) error {
	query := `
        UPDATE tasks SET type = $1, status = $2, completed_at = $3
        WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query, t.Type, t.Status, t.CompletedAt, t.ID)
	if err != nil {
		return fmt.Errorf("task update failed: %w", err)
	}
	return checkAffected(res, domain.ErrTaskNotFound)
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("task delete failed: %w", err)
	}
	return checkAffected(res, domain.ErrTaskNotFound)
}
