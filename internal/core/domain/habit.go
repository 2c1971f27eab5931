package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty        = errors.New("habit name cannot be empty")
	ErrCompletedDaysRequired = errors.New("completedDays is required")
	ErrEmptyPatch            = errors.New("no updatable fields provided")
)

// HabitCompletionAura is the flat reward for each good habit completion.
const HabitCompletionAura = 15

// Habit is a perpetual good habit: completing it bumps counters and aura but
// never reaches a terminal state.
type Habit struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Name           string    `json:"habitName"`
	Goal           string    `json:"habitGoal"`
	Location       string    `json:"habitLocation"`
	CompletedTimes int       `json:"completedTimes"`
	CompletedDays  string    `json:"completedDays"`
	CreatedAt      time.Time `json:"createdAt"`
}

func NewHabit(userID, name, goal, location, completedDays string) (*Habit, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrHabitNameEmpty
	}

	return &Habit{
		ID:             uuid.New().String(),
		UserID:         userID,
		Name:           trimmed,
		Goal:           goal,
		Location:       location,
		CompletedTimes: 0,
		CompletedDays:  completedDays,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// HabitPatch is a whitelist partial update. Nil fields are left untouched.
type HabitPatch struct {
	Name          *string
	Goal          *string
	Location      *string
	CompletedDays *string
}

func (p HabitPatch) Empty() bool {
	return p.Name == nil && p.Goal == nil && p.Location == nil && p.CompletedDays == nil
}

func (h *Habit) Apply(p HabitPatch) error {
	if p.Empty() {
		return ErrEmptyPatch
	}
	if p.Name != nil {
		trimmed := strings.TrimSpace(*p.Name)
		if trimmed == "" {
			return ErrHabitNameEmpty
		}
		h.Name = trimmed
	}
	if p.Goal != nil {
		h.Goal = *p.Goal
	}
	if p.Location != nil {
		h.Location = *p.Location
	}
	if p.CompletedDays != nil {
		h.CompletedDays = *p.CompletedDays
	}
	return nil
}
