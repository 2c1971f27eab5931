package services_test

import (
	"context"
	"testing"

	"github.com/feelalive/aura-engine/internal/adapters/repository"
	"github.com/feelalive/aura-engine/internal/core/domain"
	"github.com/feelalive/aura-engine/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func newPageFixture() *services.AuraPageService {
	return services.NewAuraPageService(repository.NewInMemoryAuraPageRepository())
}

func TestAuraPageService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: upserts and keeps the username", func(t *testing.T) {
		svc := newPageFixture()

		page, err := svc.Save(ctx, "u1", "neo", true, "hacker")
		assert.Nil(t, err)
		assert.Equal(t, "neo", page.Username)
		assert.NotNil(t, page.Theme)

		// Re-saving under the same user is allowed.
		page, err = svc.Save(ctx, "u1", "neo", false, "gold")
		assert.Nil(t, err)
		assert.False(t, page.Enabled)
		assert.Equal(t, "gold", *page.Theme)
	})

	t.Run("Error: username taken by another user", func(t *testing.T) {
		svc := newPageFixture()

		_, err := svc.Save(ctx, "u1", "neo", true, "")
		assert.Nil(t, err)

		_, err = svc.Save(ctx, "u2", "neo", true, "")
		assert.Equal(t, domain.ErrUsernameTaken, err)
	})

	t.Run("Error: invalid username", func(t *testing.T) {
		svc := newPageFixture()

		_, err := svc.Save(ctx, "u1", "not valid!", true, "")
		assert.Equal(t, domain.ErrInvalidUsername, err)
	})
}

func TestAuraPageService_SetEnabled(t *testing.T) {
	ctx := context.Background()
	svc := newPageFixture()

	_, err := svc.SetEnabled(ctx, "u1", true)
	assert.Equal(t, domain.ErrAuraPageNotFound, err)

	_, err = svc.Save(ctx, "u1", "neo", false, "")
	assert.Nil(t, err)

	page, err := svc.SetEnabled(ctx, "u1", true)
	assert.Nil(t, err)
	assert.True(t, page.Enabled)

	stored, err := svc.Get(ctx, "u1")
	assert.Nil(t, err)
	assert.True(t, stored.Enabled)
}
