package domain

import (
	"context"
	"errors"
)

// Not-found covers both absent records and records owned by another user, so
// callers cannot probe for the existence of someone else's data.
var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrHabitNotFound    = errors.New("habit not found")
	ErrBadHabitNotFound = errors.New("bad habit not found")
	ErrPlanNotFound     = errors.New("study plan not found")
	ErrPlanTaskNotFound = errors.New("study plan task not found or already completed")
	ErrAuraPageNotFound = errors.New("aura page not found")
)

type ProfileRepository interface {
	// GetByID retrieves a profile by user id.
	GetByID(ctx context.Context, userID string) (*UserProfile, error)

	// Create persists a freshly initialized profile.
	Create(ctx context.Context, profile *UserProfile) error

	// AdjustAura applies a signed delta atomically, clamped at zero, and
	// returns the new balance.
	AdjustAura(ctx context.Context, userID string, delta int) (int, error)

	// IncrementValidation bumps the daily verification counter atomically.
	IncrementValidation(ctx context.Context, userID string) error

	// ResetValidation zeroes the counter and stamps the reset date.
	ResetValidation(ctx context.Context, userID string, date string) error

	// SetSocialBlocker stores the all-or-nothing challenge field group.
	SetSocialBlocker(ctx context.Context, userID, password string, days int, start, end string) error

	// ClearSocialBlocker nulls the challenge field group.
	ClearSocialBlocker(ctx context.Context, userID string) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error

	GetByID(ctx context.Context, id string) (*Task, error)

	// ListByUserID returns the user's tasks, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*Task, error)

	// Update writes the full task row (status, type, completion timestamp).
	Update(ctx context.Context, task *Task) error

	Delete(ctx context.Context, id string) error
}

type HabitRepository interface {
	Create(ctx context.Context, habit *Habit) error

	GetByID(ctx context.Context, id string) (*Habit, error)

	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	Update(ctx context.Context, habit *Habit) error

	// IncrementCompleted bumps the completion counter atomically and
	// overwrites the completed-days record.
	IncrementCompleted(ctx context.Context, id string, by int, completedDays string) error

	Delete(ctx context.Context, id string) error
}

type BadHabitRepository interface {
	Create(ctx context.Context, habit *BadHabit) error

	GetByID(ctx context.Context, id string) (*BadHabit, error)

	ListByUserID(ctx context.Context, userID string) ([]*BadHabit, error)

	Update(ctx context.Context, habit *BadHabit) error

	IncrementCompleted(ctx context.Context, id string, by int, completedDays string) error

	Delete(ctx context.Context, id string) error
}

type StudyPlanRepository interface {
	// Create persists the plan keyed by user id, replacing any previous one.
	Create(ctx context.Context, plan *StudyPlan) error

	GetByUserID(ctx context.Context, userID string) (*StudyPlan, error)

	UpdateTimetable(ctx context.Context, userID string, timetable []TimetableDay) error

	UpdateLastChecked(ctx context.Context, userID, date string) error

	Delete(ctx context.Context, userID string) error
}

type AuraPageRepository interface {
	// Upsert creates or replaces the page keyed by user id.
	Upsert(ctx context.Context, page *AuraPage) error

	GetByUserID(ctx context.Context, userID string) (*AuraPage, error)

	// GetByUsername is used for the global uniqueness check.
	GetByUsername(ctx context.Context, username string) (*AuraPage, error)

	SetEnabled(ctx context.Context, userID string, enabled bool) error
}
