package services

import (
	"context"
	"fmt"

	"github.com/feelalive/aura-engine/internal/core/domain"
)

type BadHabitService struct {
	repo     domain.BadHabitRepository
	profiles *ProfileService
}

func NewBadHabitService(repo domain.BadHabitRepository, profiles *ProfileService) *BadHabitService {
	return &BadHabitService{
		repo:     repo,
		profiles: profiles,
	}
}

type CreateBadHabitInput struct {
	UserID        string
	Name          string
	Goal          string
	Severity      string
	CompletedDays string
}

type BadHabitResult struct {
	Habit   *domain.BadHabit `json:"habit"`
	NewAura int              `json:"newAura"`
}

func (s *BadHabitService) Create(ctx context.Context, input CreateBadHabitInput) (*domain.BadHabit, error) {
	habit, err := domain.NewBadHabit(input.UserID, input.Name, input.Goal, input.Severity, input.CompletedDays)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("bad habit service: failed to create: %w", err)
	}

	return habit, nil
}

func (s *BadHabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.BadHabit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *BadHabitService) owned(ctx context.Context, userID, habitID string) (*domain.BadHabit, error) {
	habit, err := s.repo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrBadHabitNotFound
	}
	return habit, nil
}

// Complete records incrementBy slips and deducts the frozen per-slip aura
// loss for each one.
func (s *BadHabitService) Complete(ctx context.Context, userID, habitID, completedDays string, incrementBy int) (*BadHabitResult, error) {
	if completedDays == "" {
		return nil, domain.ErrCompletedDaysRequired
	}
	if incrementBy <= 0 {
		incrementBy = 1
	}

	habit, err := s.owned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementCompleted(ctx, habitID, incrementBy, completedDays); err != nil {
		return nil, fmt.Errorf("bad habit service: failed to record completion: %w", err)
	}
	habit.CompletedTimes += incrementBy
	habit.CompletedDays = completedDays

	newAura, err := s.profiles.AdjustAura(ctx, userID, -habit.EffectiveAuraLoss()*incrementBy)
	if err != nil {
		return nil, err
	}

	return &BadHabitResult{Habit: habit, NewAura: newAura}, nil
}

func (s *BadHabitService) Update(ctx context.Context, userID, habitID string, patch domain.BadHabitPatch) (*domain.BadHabit, error) {
	habit, err := s.owned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	if err := habit.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *BadHabitService) Delete(ctx context.Context, userID, habitID string) error {
	if _, err := s.owned(ctx, userID, habitID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, habitID)
}
