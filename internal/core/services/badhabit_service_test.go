package services_test

import (
	"context"
	"testing"

	"github.com/feelalive/aura-engine/internal/adapters/repository"
	"github.com/feelalive/aura-engine/internal/core/domain"
	"github.com/feelalive/aura-engine/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func newBadHabitFixture() (*services.BadHabitService, *services.ProfileService) {
	profiles, _ := newProfileFixture()
	return services.NewBadHabitService(repository.NewInMemoryBadHabitRepository(), profiles), profiles
}

func TestBadHabitService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _ := newBadHabitFixture()

	t.Run("Success: freezes the per-slip loss", func(t *testing.T) {
		h, err := svc.Create(ctx, services.CreateBadHabitInput{
			UserID:        "u1",
			Name:          "Doomscrolling",
			Goal:          "Stop",
			Severity:      domain.SeverityVeryHigh,
			CompletedDays: "[]",
		})
		assert.Nil(t, err)
		assert.Equal(t, 15, h.AuraLoss)
	})

	t.Run("Error: invalid severity", func(t *testing.T) {
		_, err := svc.Create(ctx, services.CreateBadHabitInput{
			UserID:        "u1",
			Name:          "Doomscrolling",
			Severity:      "mild",
			CompletedDays: "[]",
		})
		assert.Equal(t, domain.ErrInvalidSeverity, err)
	})
}

func TestBadHabitService_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: incrementBy multiplies the deduction", func(t *testing.T) {
		svc, _ := newBadHabitFixture()
		h, err := svc.Create(ctx, services.CreateBadHabitInput{
			UserID:        "u1",
			Name:          "Smoking",
			Severity:      domain.SeverityExtreme,
			CompletedDays: "[]",
		})
		assert.Nil(t, err)

		result, err := svc.Complete(ctx, "u1", h.ID, `["2026-09-01"]`, 3)
		assert.Nil(t, err)
		assert.Equal(t, 3, result.Habit.CompletedTimes)
		assert.Equal(t, 0, result.NewAura, "50 - 3x20 floors at zero")
	})

	t.Run("Success: non-positive incrementBy defaults to one", func(t *testing.T) {
		svc, _ := newBadHabitFixture()
		h, err := svc.Create(ctx, services.CreateBadHabitInput{
			UserID:        "u1",
			Name:          "Smoking",
			Severity:      domain.SeverityHigh,
			CompletedDays: "[]",
		})
		assert.Nil(t, err)

		result, err := svc.Complete(ctx, "u1", h.ID, "[]", 0)
		assert.Nil(t, err)
		assert.Equal(t, 1, result.Habit.CompletedTimes)
		assert.Equal(t, domain.StartingAura-10, result.NewAura)
	})

	t.Run("deduction uses the frozen loss, not the live table", func(t *testing.T) {
		svc, _ := newBadHabitFixture()
		h, err := svc.Create(ctx, services.CreateBadHabitInput{
			UserID:        "u1",
			Name:          "Smoking",
			Severity:      domain.SeverityAverage,
			CompletedDays: "[]",
		})
		assert.Nil(t, err)
		assert.Equal(t, 5, h.AuraLoss)

		result, err := svc.Complete(ctx, "u1", h.ID, "[]", 1)
		assert.Nil(t, err)
		assert.Equal(t, domain.StartingAura-5, result.NewAura)
	})

	t.Run("Error: completedDays required", func(t *testing.T) {
		svc, _ := newBadHabitFixture()
		h, err := svc.Create(ctx, services.CreateBadHabitInput{
			UserID:        "u1",
			Name:          "Smoking",
			Severity:      domain.SeverityHigh,
			CompletedDays: "[]",
		})
		assert.Nil(t, err)

		_, err = svc.Complete(ctx, "u1", h.ID, "", 1)
		assert.Equal(t, domain.ErrCompletedDaysRequired, err)
	})

	t.Run("Error: foreign habit not found", func(t *testing.T) {
		svc, _ := newBadHabitFixture()
		h, err := svc.Create(ctx, services.CreateBadHabitInput{
			UserID:        "u1",
			Name:          "Smoking",
			Severity:      domain.SeverityHigh,
			CompletedDays: "[]",
		})
		assert.Nil(t, err)

		_, err = svc.Complete(ctx, "intruder", h.ID, "[]", 1)
		assert.Equal(t, domain.ErrBadHabitNotFound, err)
	})
}

func TestBadHabitService_Update(t *testing.T) {
	ctx := context.Background()
	svc, _ := newBadHabitFixture()

	h, err := svc.Create(ctx, services.CreateBadHabitInput{
		UserID:        "u1",
		Name:          "Smoking",
		Severity:      domain.SeverityAverage,
		CompletedDays: "[]",
	})
	assert.Nil(t, err)

	sev := domain.SeverityExtreme
	updated, err := svc.Update(ctx, "u1", h.ID, domain.BadHabitPatch{Severity: &sev})
	assert.Nil(t, err)
	assert.Equal(t, 20, updated.AuraLoss, "severity change re-freezes the loss")

	// Future completions use the new frozen value.
	result, err := svc.Complete(ctx, "u1", h.ID, "[]", 1)
	assert.Nil(t, err)
	assert.Equal(t, domain.StartingAura-20, result.NewAura)
}
