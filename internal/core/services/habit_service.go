package services

import (
	"context"
	"fmt"

	"github.com/feelalive/aura-engine/internal/core/domain"
)

type HabitService struct {
	repo     domain.HabitRepository
	profiles *ProfileService
}

func NewHabitService(repo domain.HabitRepository, profiles *ProfileService) *HabitService {
	return &HabitService{
		repo:     repo,
		profiles: profiles,
	}
}

type CreateHabitInput struct {
	UserID        string
	Name          string
	Goal          string
	Location      string
	CompletedDays string
}

// HabitResult pairs an updated habit with the new ledger balance.
type HabitResult struct {
	Habit   *domain.Habit `json:"habit"`
	NewAura int           `json:"newAura"`
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.Name, input.Goal, input.Location, input.CompletedDays)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("habit service: failed to create habit: %w", err)
	}

	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *HabitService) owned(ctx context.Context, userID, habitID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

// Complete counts one more completion, awards the flat reward, and overwrites
// the completed-days record with the caller's value.
func (s *HabitService) Complete(ctx context.Context, userID, habitID, completedDays string) (*HabitResult, error) {
	if completedDays == "" {
		return nil, domain.ErrCompletedDaysRequired
	}

	habit, err := s.owned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementCompleted(ctx, habitID, 1, completedDays); err != nil {
		return nil, fmt.Errorf("habit service: failed to record completion: %w", err)
	}
	habit.CompletedTimes++
	habit.CompletedDays = completedDays

	newAura, err := s.profiles.AdjustAura(ctx, userID, domain.HabitCompletionAura)
	if err != nil {
		return nil, err
	}

	return &HabitResult{Habit: habit, NewAura: newAura}, nil
}

func (s *HabitService) Update(ctx context.Context, userID, habitID string, patch domain.HabitPatch) (*domain.Habit, error) {
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

func (s *HabitService) Delete(ctx context.Context, userID, habitID string) error {
	if _, err := s.owned(ctx, userID, habitID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, habitID)
}
