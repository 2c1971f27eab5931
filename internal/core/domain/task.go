package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTaskNameEmpty       = errors.New("task name cannot be empty")
	ErrInvalidTaskCategory = errors.New("invalid task category (must be normal or timed)")
	ErrInvalidDuration     = errors.New("timed tasks require a duration in minutes greater than zero")
	ErrTaskCompleted       = errors.New("task already completed")
	ErrTaskNotVerifiable   = errors.New("task is not image verifiable")
	ErrTaskVerifiable      = errors.New("task requires image verification")
	ErrTaskNotTimed        = errors.New("task is not a timed task")
	ErrTaskIsTimed         = errors.New("timed tasks must be completed through the timed flow")
	ErrTaskNotBad          = errors.New("task is not a bad task")
	ErrTaskIsBad           = errors.New("bad tasks cannot be completed through this flow")
	ErrImageRequired       = errors.New("image data is required for verification")
	ErrTaskNotVerified     = errors.New("task verification rejected")
)

const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"

	TaskTypeGood = "good"
	TaskTypeBad  = "bad"

	TaskCategoryNormal = "normal"
	TaskCategoryTimed  = "timed"

	IntensityEasy   = "easy"
	IntensityMedium = "medium"
	IntensityHard   = "hard"
)

type Task struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	Name            string     `json:"name"`
	Intensity       string     `json:"intensity"`
	Type            string     `json:"type"`
	Category        string     `json:"taskCategory"`
	DurationMinutes *int       `json:"durationMinutes,omitempty"`
	ImageVerifiable bool       `json:"isImageVerifiable"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

// TaskClassification is the oracle's verdict on a freshly created task.
type TaskClassification struct {
	Type            string `json:"type"`
	Intensity       string `json:"intensity"`
	ImageVerifiable bool   `json:"isImageVerifiable"`
}

func (c TaskClassification) Valid() bool {
	if c.Type != TaskTypeGood && c.Type != TaskTypeBad {
		return false
	}
	switch c.Intensity {
	case IntensityEasy, IntensityMedium, IntensityHard:
	default:
		return false
	}
	return true
}

// ValidateTaskInput checks the caller-supplied fields before any oracle call
// is spent on them.
func ValidateTaskInput(name, category string, durationMinutes *int) error {
	if strings.TrimSpace(name) == "" {
		return ErrTaskNameEmpty
	}
	switch category {
	case TaskCategoryNormal:
	case TaskCategoryTimed:
		if durationMinutes == nil || *durationMinutes <= 0 {
			return ErrInvalidDuration
		}
	default:
		return ErrInvalidTaskCategory
	}
	return nil
}

func NewTask(userID, name, category string, durationMinutes *int, cls TaskClassification) (*Task, error) {
	if err := ValidateTaskInput(name, category, durationMinutes); err != nil {
		return nil, err
	}

	if category != TaskCategoryTimed {
		durationMinutes = nil
	}

	verifiable := cls.ImageVerifiable
	if category == TaskCategoryTimed {
		verifiable = false
	}

	return &Task{
		ID:              uuid.New().String(),
		UserID:          userID,
		Name:            strings.TrimSpace(name),
		Intensity:       cls.Intensity,
		Type:            cls.Type,
		Category:        category,
		DurationMinutes: durationMinutes,
		ImageVerifiable: verifiable,
		Status:          TaskStatusPending,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// Complete transitions the task to its terminal state, exactly once.
func (t *Task) Complete() error {
	if t.IsCompleted() {
		return ErrTaskCompleted
	}
	now := time.Now().UTC()
	t.Status = TaskStatusCompleted
	t.CompletedAt = &now
	return nil
}

func (t *Task) MarkBad() error {
	if t.IsCompleted() {
		return ErrTaskCompleted
	}
	t.Type = TaskTypeBad
	return nil
}

// CompletionAura is the flat reward (or penalty magnitude) for non-timed tasks.
func CompletionAura(intensity string) int {
	switch intensity {
	case IntensityEasy:
		return 5
	case IntensityMedium:
		return 10
	case IntensityHard:
		return 15
	default:
		return 5
	}
}

func timedRate(intensity string) int {
	switch intensity {
	case IntensityEasy:
		return 5
	case IntensityMedium:
		return 7
	case IntensityHard:
		return 10
	default:
		return 1
	}
}

// TimedAura computes the signed aura change for a timed task completion.
// effectiveMinutes should already be resolved against the planned duration.
// Short non-zero efforts never round down to a silent zero: they yield a
// minimal signed amount so the user always gets feedback.
func TimedAura(intensity, taskType string, effectiveMinutes int) int {
	if effectiveMinutes < 0 {
		effectiveMinutes = 0
	}

	amount := (effectiveMinutes / 10) * timedRate(intensity)

	if amount == 0 && effectiveMinutes > 0 && effectiveMinutes < 10 {
		if intensity == IntensityEasy {
			amount = 1
		} else {
			amount = 2
		}
	}

	if taskType == TaskTypeBad {
		return -amount
	}
	return amount
}

// EffectiveMinutes resolves the caller-supplied actual duration against the
// planned one: a valid actual (>= 0) wins, otherwise the plan, floored at 0.
func (t *Task) EffectiveMinutes(actual *int) int {
	if actual != nil && *actual >= 0 {
		return *actual
	}
	if t.DurationMinutes != nil && *t.DurationMinutes > 0 {
		return *t.DurationMinutes
	}
	return 0
}
