package services

import (
	"context"
	"fmt"
	"log"

	"github.com/feelalive/aura-engine/internal/core/domain"
)

const (
	// Completing the full committed span pays more per day than giving up;
	// the asymmetry is the commitment device.
	socialEndAuraPerDay    = 15
	socialGiveUpAuraPerDay = 10
)

type SocialService struct {
	repo     domain.ProfileRepository
	profiles *ProfileService
}

func NewSocialService(repo domain.ProfileRepository, profiles *ProfileService) *SocialService {
	return &SocialService{
		repo:     repo,
		profiles: profiles,
	}
}

// Challenge is the active social blocker state as exposed to the caller.
type Challenge struct {
	SocialPassword string `json:"socialPassword"`
	SocialDays     int    `json:"socialDays"`
	SocialStart    string `json:"socialStart"`
	SocialEnd      string `json:"socialEnd"`
}

// ChallengeOutcome reports a resolved challenge's ledger effect.
type ChallengeOutcome struct {
	CompletedDays int `json:"completedDays"`
	AuraChange    int `json:"auraChange"`
	NewAura       int `json:"newAura"`
}

func challengeFromProfile(p *domain.UserProfile) *Challenge {
	c := &Challenge{}
	if p.SocialPassword != nil {
		c.SocialPassword = *p.SocialPassword
	}
	if p.SocialDays != nil {
		c.SocialDays = *p.SocialDays
	}
	if p.SocialStart != nil {
		c.SocialStart = *p.SocialStart
	}
	if p.SocialEnd != nil {
		c.SocialEnd = *p.SocialEnd
	}
	return c
}

// GetOrSetup returns the active challenge, or starts one when none is active
// and both a password and a day count were supplied. Arguments are ignored
// while a challenge is running: only one at a time.
func (s *SocialService) GetOrSetup(ctx context.Context, userID, password string, days int) (*Challenge, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile.HasActiveChallenge() {
		return challengeFromProfile(profile), nil
	}

	if password == "" && days == 0 {
		return nil, domain.ErrChallengeNotFound
	}
	if password == "" {
		return nil, domain.ErrChallengePassword
	}
	if days <= 0 {
		return nil, domain.ErrInvalidChallengeDays
	}

	start := domain.Today()
	startDate, err := domain.ParseDate(start)
	if err != nil {
		return nil, err
	}
	end := startDate.AddDate(0, 0, days).Format(domain.DateLayout)

	if err := s.repo.SetSocialBlocker(ctx, userID, password, days, start, end); err != nil {
		return nil, fmt.Errorf("social service: failed to start challenge: %w", err)
	}

	return &Challenge{
		SocialPassword: password,
		SocialDays:     days,
		SocialStart:    start,
		SocialEnd:      end,
	}, nil
}

// End resolves a fully elapsed challenge: the committed span must be over and
// the stored dates must round-trip (end minus days equals start), which
// guards against tampered records. Success pays the full per-day rate and
// clears the challenge.
func (s *SocialService) End(ctx context.Context, userID string) (*ChallengeOutcome, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.HasActiveChallenge() {
		return nil, domain.ErrChallengeNotFound
	}

	days := *profile.SocialDays
	endDate, err := domain.ParseDate(*profile.SocialEnd)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	today, err := domain.ParseDate(domain.Today())
	if err != nil {
		return nil, err
	}

	roundTrip := endDate.AddDate(0, 0, -days).Format(domain.DateLayout)
	if roundTrip != *profile.SocialStart || today.Before(endDate) {
		return nil, domain.ErrChallengeNotElapsed
	}

	return s.resolve(ctx, userID, days, days*socialEndAuraPerDay)
}

// GiveUp abandons the challenge early, paying the reduced rate for the days
// actually survived. It always resolves when a challenge exists.
func (s *SocialService) GiveUp(ctx context.Context, userID string) (*ChallengeOutcome, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.HasActiveChallenge() {
		return nil, domain.ErrChallengeNotFound
	}

	days := *profile.SocialDays
	startDate, err := domain.ParseDate(*profile.SocialStart)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	today, err := domain.ParseDate(domain.Today())
	if err != nil {
		return nil, err
	}

	completed := int(today.Sub(startDate).Hours() / 24)
	if completed < 0 {
		completed = 0
	}
	if completed > days {
		completed = days
	}

	return s.resolve(ctx, userID, completed, completed*socialGiveUpAuraPerDay)
}

func (s *SocialService) resolve(ctx context.Context, userID string, completedDays, reward int) (*ChallengeOutcome, error) {
	newAura, err := s.profiles.AdjustAura(ctx, userID, reward)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ClearSocialBlocker(ctx, userID); err != nil {
		return nil, fmt.Errorf("social service: failed to reset challenge: %w", err)
	}

	log.Printf("Social challenge resolved for user %s: %d days, +%d aura", userID, completedDays, reward)

	return &ChallengeOutcome{
		CompletedDays: completedDays,
		AuraChange:    reward,
		NewAura:       newAura,
	}, nil
}
