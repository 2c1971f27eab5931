package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/feelalive/aura-engine/internal/core/domain"
)

// PostgresStudyPlanRepository stores subjects, chapters, and the timetable as
// serialized JSON text. Serialization happens only here; the domain always
// sees native structures.
type PostgresStudyPlanRepository struct {
	db *sqlx.DB
}

func NewPostgresStudyPlanRepository(db *sqlx.DB) *PostgresStudyPlanRepository {
	return &PostgresStudyPlanRepository{db: db}
}

func (r *PostgresStudyPlanRepository) Create(ctx context.Context, p *domain.StudyPlan) error {
	subjects, err := json.Marshal(p.Subjects)
	if err != nil {
		return fmt.Errorf("failed to marshal subjects: %w", err)
	}
	chapters, err := json.Marshal(p.Chapters)
	if err != nil {
		return fmt.Errorf("failed to marshal chapters: %w", err)
	}
	timetable, err := json.Marshal(p.Timetable)
	if err != nil {
		return fmt.Errorf("failed to marshal timetable: %w", err)
	}

	query := `
        INSERT INTO study_plans (user_id, subjects, chapters, deadline, timetable, last_checked_date)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (user_id) DO UPDATE SET
            subjects = EXCLUDED.subjects,
            chapters = EXCLUDED.chapters,
            deadline = EXCLUDED.deadline,
            timetable = EXCLUDED.timetable,
            last_checked_date = EXCLUDED.last_checked_date`

	_, err = r.db.ExecContext(ctx, query,
		p.UserID, subjects, chapters, p.Deadline, timetable, p.LastCheckedDate,
	)
	if err != nil {
		return fmt.Errorf("failed to save study plan: %w", err)
	}
	return nil
}

func (r *PostgresStudyPlanRepository) GetByUserID(ctx context.Context, userID string) (*domain.StudyPlan, error) {
	query := `
        SELECT user_id, subjects, chapters, deadline, timetable, last_checked_date
        FROM study_plans WHERE user_id = $1`

	var p domain.StudyPlan
	var subjects, chapters, timetable []byte

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &subjects, &chapters, &p.Deadline, &timetable, &p.LastCheckedDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	if err := json.Unmarshal(subjects, &p.Subjects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subjects: %w", err)
	}
	if err := json.Unmarshal(chapters, &p.Chapters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chapters: %w", err)
	}
	if err := json.Unmarshal(timetable, &p.Timetable); err != nil {
		return nil, fmt.Errorf("failed to unmarshal timetable: %w", err)
	}

	return &p, nil
}

func (r *PostgresStudyPlanRepository) UpdateTimetable(ctx context.Context, userID string, timetable []domain.TimetableDay) error {
	data, err := json.Marshal(timetable)
	if err != nil {
		return fmt.Errorf("failed to marshal timetable: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE study_plans SET timetable = $1 WHERE user_id = $2`, data, userID)
	if err != nil {
		return fmt.Errorf("timetable update failed: %w", err)
	}
	return checkAffected(res, domain.ErrPlanNotFound)
}

func (r *PostgresStudyPlanRepository) UpdateLastChecked(ctx context.Context, userID, date string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE study_plans SET last_checked_date = $1 WHERE user_id = $2`, date, userID)
	if err != nil {
		return fmt.Errorf("last checked update failed: %w", err)
	}
	return checkAffected(res, domain.ErrPlanNotFound)
}

func (r *PostgresStudyPlanRepository) Delete(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM study_plans WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("study plan delete failed: %w", err)
	}
	return checkAffected(res, domain.ErrPlanNotFound)
}
