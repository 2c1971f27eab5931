package domain_test

import (
	"testing"
	"time"

	"github.com/feelalive/aura-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestNewHabit(t *testing.T) {
	t.Run("Success: creates habit with zero counters", func(t *testing.T) {
		h, err := domain.NewHabit("u1", "  Morning run  ", "5k", "Park", "[]")

		assert.Nil(t, err)
		assert.NotEmpty(t, h.ID)
		assert.Equal(t, "Morning run", h.Name)
		assert.Equal(t, "5k", h.Goal)
		assert.Equal(t, "Park", h.Location)
		assert.Equal(t, 0, h.CompletedTimes)
		assert.WithinDuration(t, time.Now().UTC(), h.CreatedAt, 2*time.Second)
	})

	t.Run("Error: empty name", func(t *testing.T) {
		_, err := domain.NewHabit("u1", "   ", "goal", "loc", "[]")
		assert.Equal(t, domain.ErrHabitNameEmpty, err)
	})
}

func TestHabit_Apply(t *testing.T) {
	t.Run("Success: nil fields untouched", func(t *testing.T) {
		h, err := domain.NewHabit("u1", "Read", "30 pages", "Home", "[]")
		assert.Nil(t, err)

		goal := "50 pages"
		assert.Nil(t, h.Apply(domain.HabitPatch{Goal: &goal}))
		assert.Equal(t, "50 pages", h.Goal)
		assert.Equal(t, "Read", h.Name)
		assert.Equal(t, "Home", h.Location)
	})

	t.Run("Error: empty patch", func(t *testing.T) {
		h, err := domain.NewHabit("u1", "Read", "goal", "loc", "[]")
		assert.Nil(t, err)
		assert.Equal(t, domain.ErrEmptyPatch, h.Apply(domain.HabitPatch{}))
	})
}
