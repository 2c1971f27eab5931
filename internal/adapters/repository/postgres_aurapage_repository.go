package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/feelalive/aura-engine/internal/core/domain"
)

type PostgresAuraPageRepository struct {
	db *sqlx.DB
}

func NewPostgresAuraPageRepository(db *sqlx.DB) *PostgresAuraPageRepository {
	return &PostgresAuraPageRepository{db: db}
}

func (r *PostgresAuraPageRepository) Upsert(ctx context.Context, p *domain.AuraPage) error {
	query := `
        INSERT INTO aura_pages (user_id, username, enabled, theme)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id) DO UPDATE SET
            username = EXCLUDED.username,
            enabled = EXCLUDED.enabled,
            theme = EXCLUDED.theme`

	_, err := r.db.ExecContext(ctx, query, p.UserID, p.Username, p.Enabled, p.Theme)
	if err != nil {
		return fmt.Errorf("failed to save aura page: %w", err)
	}
	return nil
}

func (r *PostgresAuraPageRepository) get(ctx context.Context, query, arg string) (*domain.AuraPage, error) {
	var p domain.AuraPage
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&p.UserID, &p.Username, &p.Enabled, &p.Theme)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAuraPageNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &p, nil
}

func (r *PostgresAuraPageRepository) GetByUserID(ctx context.Context, userID string) (*domain.AuraPage, error) {
	return r.get(ctx, `SELECT user_id, username, enabled, theme FROM aura_pages WHERE user_id = $1`, userID)
}

func (r *PostgresAuraPageRepository) GetByUsername(ctx context.Context, username string) (*domain.AuraPage, error) {
	return r.get(ctx, `SELECT user_id, username, enabled, theme FROM aura_pages WHERE username = $1`, username)
}

func (r *PostgresAuraPageRepository) SetEnabled(ctx context.Context, userID string, enabled bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE aura_pages SET enabled = $1 WHERE user_id = $2`, enabled, userID)
	if err != nil {
		return fmt.Errorf("aura page update failed: %w", err)
	}
	return checkAffected(res, domain.ErrAuraPageNotFound)
}
