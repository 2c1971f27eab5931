package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/feelalive/aura-engine/internal/core/domain"
)

// ProfileService is the aura ledger. Every aura-affecting operation goes
// through AdjustAura so the zero floor is enforced in exactly one place.
type ProfileService struct {
	repo domain.ProfileRepository
}

func NewProfileService(repo domain.ProfileRepository) *ProfileService {
	return &ProfileService{
		repo: repo,
	}
}

// GetOrCreate lazily creates the profile with its starting aura on first
// access.
func (s *ProfileService) GetOrCreate(ctx context.Context, userID string) (*domain.UserProfile, error) {
	profile, err := s.repo.GetByID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	profile = domain.NewUserProfile(userID)
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("profile service: failed to create profile: %w", err)
	}
	return profile, nil
}

// AdjustAura applies a signed delta to the user's balance and returns the new
// value. The balance never goes below zero; the clamp is applied atomically
// in the store.
func (s *ProfileService) AdjustAura(ctx context.Context, userID string, delta int) (int, error) {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return 0, err
	}
	return s.repo.AdjustAura(ctx, userID, delta)
}

// ConsumeValidation enforces the daily verification quota: the counter is
// lazily reset on the first request after a date boundary, then checked
// against the cap. It does not increment; the caller records the attempt
// after the oracle call regardless of the verdict.
func (s *ProfileService) ConsumeValidation(ctx context.Context, profile *domain.UserProfile, today string) error {
	if profile.LastValidationResetDate != today {
		if err := s.repo.ResetValidation(ctx, profile.UserID, today); err != nil {
			return err
		}
		profile.ValidationCount = 0
		profile.LastValidationResetDate = today
	}

	if profile.ValidationCount >= domain.DailyValidationLimit {
		return domain.ErrValidationLimit
	}
	return nil
}

// RecordValidation counts one verification attempt against today's quota.
func (s *ProfileService) RecordValidation(ctx context.Context, userID string) error {
	return s.repo.IncrementValidation(ctx, userID)
}
