package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidSeverity = errors.New("invalid severity (must be average, high, vhigh, or extreme)")

const (
	SeverityAverage  = "average"
	SeverityHigh     = "high"
	SeverityVeryHigh = "vhigh"
	SeverityExtreme  = "extreme"
)

// SeverityAuraLoss maps a bad habit's harm tier to the aura deducted per
// completion. The result is frozen on the habit at creation time so later
// table changes never affect existing habits.
func SeverityAuraLoss(severity string) (int, error) {
	switch severity {
	case SeverityAverage:
		return 5, nil
	case SeverityHigh:
		return 10, nil
	case SeverityVeryHigh:
		return 15, nil
	case SeverityExtreme:
		return 20, nil
	default:
		return 0, ErrInvalidSeverity
	}
}

type BadHabit struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Name           string    `json:"habitName"`
	Goal           string    `json:"habitGoal"`
	Severity       string    `json:"severity"`
	AuraLoss       int       `json:"auraLoss"`
	CompletedTimes int       `json:"completedTimes"`
	CompletedDays  string    `json:"completedDays"`
	CreatedAt      time.Time `json:"createdAt"`
}

func NewBadHabit(userID, name, goal, severity, completedDays string) (*BadHabit, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrHabitNameEmpty
	}
	if completedDays == "" {
		return nil, ErrCompletedDaysRequired
	}

	loss, err := SeverityAuraLoss(severity)
	if err != nil {
		return nil, err
	}

	return &BadHabit{
		ID:             uuid.New().String(),
		UserID:         userID,
		Name:           trimmed,
		Goal:           goal,
		Severity:       severity,
		AuraLoss:       loss,
		CompletedTimes: 0,
		CompletedDays:  completedDays,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// EffectiveAuraLoss returns the frozen per-completion loss, recomputing it
// from the severity if an older record was stored without one.
func (b *BadHabit) EffectiveAuraLoss() int {
	if b.AuraLoss > 0 {
		return b.AuraLoss
	}
	loss, err := SeverityAuraLoss(b.Severity)
	if err != nil {
		return 5
	}
	return loss
}

type BadHabitPatch struct {
	Name          *string
	Goal          *string
	Severity      *string
	CompletedDays *string
}

func (p BadHabitPatch) Empty() bool {
	return p.Name == nil && p.Goal == nil && p.Severity == nil && p.CompletedDays == nil
}

func (b *BadHabit) Apply(p BadHabitPatch) error {
	if p.Empty() {
		return ErrEmptyPatch
	}
	if p.Name != nil {
		trimmed := strings.TrimSpace(*p.Name)
		if trimmed == "" {
			return ErrHabitNameEmpty
		}
		b.Name = trimmed
	}
	if p.Goal != nil {
		b.Goal = *p.Goal
	}
	if p.Severity != nil {
		loss, err := SeverityAuraLoss(*p.Severity)
		if err != nil {
			return err
		}
		b.Severity = *p.Severity
		b.AuraLoss = loss
	}
	if p.CompletedDays != nil {
		b.CompletedDays = *p.CompletedDays
	}
	return nil
}
