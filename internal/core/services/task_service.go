package services

import (
	"context"
	"fmt"
	"log"

	"github.com/feelalive/aura-engine/internal/core/domain"
)

type TaskService struct {
	repo     domain.TaskRepository
	profiles *ProfileService
	oracle   Oracle
}

func NewTaskService(repo domain.TaskRepository, profiles *ProfileService, oracle Oracle) *TaskService {
	return &TaskService{
		repo:     repo,
		profiles: profiles,
		oracle:   oracle,
	}
}

type CreateTaskInput struct {
	UserID          string
	Name            string
	Category        string
	DurationMinutes *int
}

// CompletionResult reports a task completion together with its ledger effect.
type CompletionResult struct {
	Task       *domain.Task `json:"task"`
	AuraChange int          `json:"auraChange"`
	NewAura    int          `json:"newAura"`
}

// Create classifies the task through the oracle and stores it pending.
// Classification failure is surfaced, never silently defaulted: a guessed
// type or intensity would miscredit aura on completion.
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if err := domain.ValidateTaskInput(input.Name, input.Category, input.DurationMinutes); err != nil {
		return nil, err
	}

	cls, err := s.oracle.Classify(ctx, input.Name, input.Category)
	if err != nil {
		log.Printf("Task classification failed for %q: %v", input.Name, err)
		return nil, err
	}

	task, err := domain.NewTask(input.UserID, input.Name, input.Category, input.DurationMinutes, cls)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("task service: failed to create task: %w", err)
	}

	return task, nil
}

func (s *TaskService) ListByUserID(ctx context.Context, userID string) ([]*domain.Task, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// ownedPending loads a task the caller owns. A foreign or absent task yields
// the same not-found signal.
func (s *TaskService) ownedPending(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	if task.IsCompleted() {
		return nil, domain.ErrTaskCompleted
	}
	return task, nil
}

// CompleteVerifiable completes an image-verifiable normal good task. The
// daily validation counter is charged for the oracle call whatever the
// verdict turns out to be.
func (s *TaskService) CompleteVerifiable(ctx context.Context, userID, taskID, imageBase64 string) (*CompletionResult, error) {
	if imageBase64 == "" {
		return nil, domain.ErrImageRequired
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.ConsumeValidation(ctx, profile, domain.Today()); err != nil {
		return nil, err
	}

	task, err := s.ownedPending(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Category != domain.TaskCategoryNormal {
		return nil, domain.ErrTaskIsTimed
	}
	if !task.ImageVerifiable {
		return nil, domain.ErrTaskNotVerifiable
	}
	if task.Type == domain.TaskTypeBad {
		return nil, domain.ErrTaskIsBad
	}

	verified, err := s.oracle.Verify(ctx, imageBase64, task.Name)
	if err != nil {
		return nil, err
	}

	if recErr := s.profiles.RecordValidation(ctx, userID); recErr != nil {
		log.Printf("Failed to record validation attempt for user %s: %v", userID, recErr)
	}

	if !verified {
		return nil, domain.ErrTaskNotVerified
	}

	return s.finish(ctx, task, domain.CompletionAura(task.Intensity))
}

// CompleteNormal completes a non-verifiable normal good task; the reward is
// unconditional.
func (s *TaskService) CompleteNormal(ctx context.Context, userID, taskID string) (*CompletionResult, error) {
	task, err := s.ownedPending(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Category != domain.TaskCategoryNormal {
		return nil, domain.ErrTaskIsTimed
	}
	if task.ImageVerifiable {
		return nil, domain.ErrTaskVerifiable
	}
	if task.Type == domain.TaskTypeBad {
		return nil, domain.ErrTaskIsBad
	}

	return s.finish(ctx, task, domain.CompletionAura(task.Intensity))
}

// CompleteTimed completes a timed task of either type, scaling the reward (or
// penalty) by the time actually spent.
func (s *TaskService) CompleteTimed(ctx context.Context, userID, taskID string, actualMinutes *int) (*CompletionResult, error) {
	task, err := s.ownedPending(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Category != domain.TaskCategoryTimed {
		return nil, domain.ErrTaskNotTimed
	}

	minutes := task.EffectiveMinutes(actualMinutes)
	return s.finish(ctx, task, domain.TimedAura(task.Intensity, task.Type, minutes))
}

// CompleteBad acknowledges a non-timed bad task, deducting aura.
func (s *TaskService) CompleteBad(ctx context.Context, userID, taskID string) (*CompletionResult, error) {
	task, err := s.ownedPending(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.Type != domain.TaskTypeBad {
		return nil, domain.ErrTaskNotBad
	}
	if task.Category == domain.TaskCategoryTimed {
		return nil, domain.ErrTaskIsTimed
	}

	return s.finish(ctx, task, -domain.CompletionAura(task.Intensity))
}

func (s *TaskService) finish(ctx context.Context, task *domain.Task, auraChange int) (*CompletionResult, error) {
	if err := task.Complete(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("task service: failed to persist completion: %w", err)
	}

	newAura, err := s.profiles.AdjustAura(ctx, task.UserID, auraChange)
	if err != nil {
		return nil, err
	}

	return &CompletionResult{Task: task, AuraChange: auraChange, NewAura: newAura}, nil
}

// MarkBad flips a pending task's type to bad in place.
func (s *TaskService) MarkBad(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.ownedPending(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if err := task.MarkBad(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task regardless of state.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.UserID != userID {
		return domain.ErrTaskNotFound
	}
	return s.repo.Delete(ctx, taskID)
}
