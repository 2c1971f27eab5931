package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/feelalive/aura-engine/internal/core/domain"
)

type AuraPageService struct {
	repo domain.AuraPageRepository
}

func NewAuraPageService(repo domain.AuraPageRepository) *AuraPageService {
	return &AuraPageService{
		repo: repo,
	}
}

// Save creates or updates the user's public aura page. The username must be
// unique across all other users; invalid themes are stored as null.
func (s *AuraPageService) Save(ctx context.Context, userID, username string, enabled bool, theme string) (*domain.AuraPage, error) {
	page, err := domain.NewAuraPage(userID, username, enabled, theme)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByUsername(ctx, username)
	if err == nil && existing.UserID != userID {
		return nil, domain.ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, domain.ErrAuraPageNotFound) {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, page); err != nil {
		return nil, fmt.Errorf("aura page service: failed to save page: %w", err)
	}
	return page, nil
}

func (s *AuraPageService) SetEnabled(ctx context.Context, userID string, enabled bool) (*domain.AuraPage, error) {
	page, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetEnabled(ctx, userID, enabled); err != nil {
		return nil, err
	}
	page.Enabled = enabled
	return page, nil
}

func (s *AuraPageService) Get(ctx context.Context, userID string) (*domain.AuraPage, error) {
	return s.repo.GetByUserID(ctx, userID)
}
