package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/feelalive/aura-engine/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresProfileRepository struct {
	db *sqlx.DB
}

func NewPostgresProfileRepository(db *sqlx.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := `
        SELECT user_id, aura, validation_count, last_validation_reset_date,
               social_password, social_days, social_start, social_end
        FROM profiles WHERE user_id = $1`

	var p domain.UserProfile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.Aura, &p.ValidationCount, &p.LastValidationResetDate,
		&p.SocialPassword, &p.SocialDays, &p.SocialStart, &p.SocialEnd,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return &p, nil
}

func (r *PostgresProfileRepository) Create(ctx context.Context, p *domain.UserProfile) error {
	// ON CONFLICT keeps concurrent lazy creations from racing each other.
	query := `
        INSERT INTO profiles (user_id, aura, validation_count, last_validation_reset_date)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, p.UserID, p.Aura, p.ValidationCount, p.LastValidationResetDate)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// AdjustAura applies the delta and the zero floor in a single statement, so
// concurrent adjustments never lose updates.
func (r *PostgresProfileRepository) AdjustAura(ctx context.Context, userID string, delta int) (int, error) {
	query := `
        UPDATE profiles SET aura = GREATEST(0, aura + $1)
        WHERE user_id = $2
        RETURNING aura`

	var newAura int
	err := r.db.QueryRowContext(ctx, query, delta, userID).Scan(&newAura)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrProfileNotFound
		}
		return 0, fmt.Errorf("aura update failed: %w", err)
	}

	return newAura, nil
}

func (r *PostgresProfileRepository) IncrementValidation(ctx context.Context, userID string) error {
	query := `UPDATE profiles SET validation_count = validation_count + 1 WHERE user_id = $1`

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("validation count update failed: %w", err)
	}
	return checkAffected(res, domain.ErrProfileNotFound)
}

func (r *PostgresProfileRepository) ResetValidation(ctx context.Context, userID string, date string) error {
	query := `
        UPDATE profiles SET validation_count = 0, last_validation_reset_date = $1
        WHERE user_id = $2`

	res, err := r.db.ExecContext(ctx, query, date, userID)
	if err != nil {
		return fmt.Errorf("validation reset failed: %w", err)
	}
	return checkAffected(res, domain.ErrProfileNotFound)
}

func (r *PostgresProfileRepository) SetSocialBlocker(ctx context.Context, userID, password string, days int, start, end string) error {
	query := `
        UPDATE profiles SET social_password = $1, social_days = $2, social_start = $3, social_end = $4
        WHERE user_id = $5`

	res, err := r.db.ExecContext(ctx, query, password, days, start, end, userID)
	if err != nil {
		return fmt.Errorf("social blocker setup failed: %w", err)
	}
	return checkAffected(res, domain.ErrProfileNotFound)
}

func (r *PostgresProfileRepository) ClearSocialBlocker(ctx context.Context, userID string) error {
	query := `
        UPDATE profiles SET social_password = NULL, social_days = NULL, social_start = NULL, social_end = NULL
        WHERE user_id = $1`

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("social blocker reset failed: %w", err)
	}
	return checkAffected(res, domain.ErrProfileNotFound)
}

func checkAffected(res sql.Result, notFound error) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
