package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/feelalive/aura-engine/internal/core/domain"
)

type StudyPlanService struct {
	repo     domain.StudyPlanRepository
	profiles *ProfileService
	oracle   Oracle
}

func NewStudyPlanService(repo domain.StudyPlanRepository, profiles *ProfileService, oracle Oracle) *StudyPlanService {
	return &StudyPlanService{
		repo:     repo,
		profiles: profiles,
		oracle:   oracle,
	}
}

type CreateStudyPlanInput struct {
	UserID    string
	Subjects  []string
	Chapters  []domain.Chapter
	Deadline  string
	Timetable []domain.TimetableDay
}

// StudyPlanResult is a plan returned after a task completion, with its
// ledger effect spelled out.
type StudyPlanResult struct {
	Plan       *domain.StudyPlan `json:"plan"`
	AuraChange int               `json:"auraChange"`
	NewAura    int               `json:"newAura"`
}

func (s *StudyPlanService) Create(ctx context.Context, input CreateStudyPlanInput) (*domain.StudyPlan, error) {
	plan, err := domain.NewStudyPlan(input.UserID, input.Subjects, input.Chapters, input.Deadline, input.Timetable)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("study plan service: failed to save plan: %w", err)
	}

	return plan, nil
}

// GetAndReconcile loads the plan and settles every missed day between the
// last check and the caller's current date. Each past day with an incomplete
// task costs a fixed penalty, exactly once: the scan window always starts
// right after the previously persisted check date.
func (s *StudyPlanService) GetAndReconcile(ctx context.Context, userID, clientDate string) (*domain.StudyPlan, error) {
	if clientDate == "" {
		return nil, domain.ErrClientDateRequired
	}

	plan, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	penalty, err := plan.MissedDayPenaltyTotal(clientDate)
	if err != nil {
		return nil, err
	}

	if penalty > 0 {
		newAura, err := s.profiles.AdjustAura(ctx, userID, -penalty)
		if err != nil {
			return nil, err
		}
		log.Printf("Study plan penalty for user %s: -%d aura (now %d)", userID, penalty, newAura)
	}

	if plan.LastCheckedDate != clientDate {
		if err := s.repo.UpdateLastChecked(ctx, userID, clientDate); err != nil {
			return nil, err
		}
		plan.LastCheckedDate = clientDate
	}

	return plan, nil
}

// CompleteTask marks one timetable task done and rewards aura by task type.
func (s *StudyPlanService) CompleteTask(ctx context.Context, userID, taskID, clientDate, dateOfTask string) (*StudyPlanResult, error) {
	today, err := domain.ParseDate(clientDate)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	taskDate, err := domain.ParseDate(dateOfTask)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	if taskDate.After(today) {
		return nil, domain.ErrFutureTaskDate
	}

	plan, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reward, ok := plan.CompleteTask(taskID, dateOfTask)
	if !ok {
		return nil, domain.ErrPlanTaskNotFound
	}

	if err := s.repo.UpdateTimetable(ctx, userID, plan.Timetable); err != nil {
		return nil, fmt.Errorf("study plan service: failed to persist timetable: %w", err)
	}

	newAura, err := s.profiles.AdjustAura(ctx, userID, reward)
	if err != nil {
		return nil, err
	}

	return &StudyPlanResult{Plan: plan, AuraChange: reward, NewAura: newAura}, nil
}

// Delete drops the plan entirely; the user must regenerate to continue.
// Deleting an absent plan is not an error.
func (s *StudyPlanService) Delete(ctx context.Context, userID string) error {
	err := s.repo.Delete(ctx, userID)
	if errors.Is(err, domain.ErrPlanNotFound) {
		return nil
	}
	return err
}

// GenerateTimetable asks the oracle for a day-by-day plan preview. The
// result is not persisted; the client saves it through Create.
func (s *StudyPlanService) GenerateTimetable(ctx context.Context, chapters []domain.Chapter, deadline, startDate string) ([]domain.TimetableDay, error) {
	if len(chapters) == 0 || deadline == "" {
		return nil, domain.ErrPlanFieldsMissing
	}
	if startDate == "" {
		startDate = domain.Today()
	}
	return s.oracle.GenerateTimetable(ctx, chapters, deadline, startDate)
}
