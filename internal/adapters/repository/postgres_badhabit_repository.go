package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/feelalive/aura-engine/internal/core/domain"
)

type PostgresBadHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresBadHabitRepository(db *sqlx.DB) *PostgresBadHabitRepository {
	return &PostgresBadHabitRepository{db: db}
}

func (r *PostgresBadHabitRepository) scanRow(row scannable) (*domain.BadHabit, error) {
	var b domain.BadHabit
	err := row.Scan(
		&b.ID, &b.UserID, &b.Name, &b.Goal, &b.Severity, &b.AuraLoss,
		&b.CompletedTimes, &b.CompletedDays, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PostgresBadHabitRepository) Create(ctx context.Context, b *domain.BadHabit) error {
	query := `
        INSERT INTO bad_habits (id, user_id, name, goal, severity, aura_loss, completed_times, completed_days, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.UserID, b.Name, b.Goal, b.Severity, b.AuraLoss,
		b.CompletedTimes, b.CompletedDays, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bad habit: %w", err)
	}
	return nil
}

func (r *PostgresBadHabitRepository) GetByID(ctx context.Context, id string) (*domain.BadHabit, error) {
	query := `
        SELECT id, user_id, name, goal, severity, aura_loss, completed_times, completed_days, created_at
        FROM bad_habits WHERE id = $1`

	b, err := r.scanRow(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBadHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return b, nil
}

func (r *PostgresBadHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.BadHabit, error) {
	query := `
        SELECT id, user_id, name, goal, severity, aura_loss, completed_times, completed_days, created_at
        FROM bad_habits WHERE user_id = $1
        ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var habits []*domain.BadHabit
	for rows.Next() {
		b, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		habits = append(habits, b)
	}

	return habits, rows.Err()
}

func (r *PostgresBadHabitRepository) Update(ctx context.Context, b *domain.BadHabit) error {
	query := `
        UPDATE bad_habits SET name = $1, goal = $2, severity = $3, aura_loss = $4, completed_days = $5
        WHERE id = $6`

	res, err := r.db.ExecContext(ctx, query, b.Name, b.Goal, b.Severity, b.AuraLoss, b.CompletedDays, b.ID)
	if err != nil {
		return fmt.Errorf("bad habit update failed: %w", err)
	}
	return checkAffected(res, domain.ErrBadHabitNotFound)
}

func (r *PostgresBadHabitRepository) IncrementCompleted(ctx context.Context, id string, by int, completedDays string) error {
	query := `
        UPDATE bad_habits SET completed_times = completed_times + $1, completed_days = $2
        WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, by, completedDays, id)
	if err != nil {
		return fmt.Errorf("bad habit completion failed: %w", err)
	}
	return checkAffected(res, domain.ErrBadHabitNotFound)
}

func (r *PostgresBadHabitRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bad_habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("bad habit delete failed: %w", err)
	}
	return checkAffected(res, domain.ErrBadHabitNotFound)
}
