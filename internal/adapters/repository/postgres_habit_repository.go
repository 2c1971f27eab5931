package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/feelalive/aura-engine/internal/core/domain"
)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

func (r *PostgresHabitRepository) scanRow(row scannable) (*domain.Habit, error) {
	var h domain.Habit
	err := row.Scan(
		&h.ID, &h.UserID, &h.Name, &h.Goal, &h.Location,
		&h.CompletedTimes, &h.CompletedDays, &h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
        INSERT INTO habits (id, user_id, name, goal, location, completed_times, completed_days, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		h.ID, h.UserID, h.Name, h.Goal, h.Location, h.CompletedTimes, h.CompletedDays, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}
	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	query := `
        SELECT id, user_id, name, goal, location, completed_times, completed_days, created_at
        FROM habits WHERE id = $1`

	h, err := r.scanRow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return h, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	query := `
        SELECT id, user_id, name, goal, location, completed_times, completed_days, created_at
        FROM habits WHERE user_id = $1
        ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var habits []*domain.Habit
	for rows.Next() {
		h, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	query := `
        UPDATE habits SET name = $1, goal = $2, location = $3, completed_days = $4
        WHERE id = $5`

	res, err := r.db.ExecContext(ctx, query, h.Name, h.Goal, h.Location, h.CompletedDays, h.ID)
	if err != nil {
		return fmt.Errorf("habit update failed: %w", err)
	}
	return checkAffected(res, domain.ErrHabitNotFound)
}

// IncrementCompleted bumps the counter in a single statement so overlapping
// completions never lose a count.
func (r *PostgresHabitRepository) IncrementCompleted(ctx context.Context, id string, by int, completedDays string) error {
	query := `
        UPDATE habits SET completed_times = completed_times + $1, completed_days = $2
        WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, by, completedDays, id)
	if err != nil {
		return fmt.Errorf("habit completion failed: %w", err)
	}
	return checkAffected(res, domain.ErrHabitNotFound)
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("habit delete failed: %w", err)
	}
	return checkAffected(res, domain.ErrHabitNotFound)
}
