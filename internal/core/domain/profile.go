package domain

import (
	"errors"
	"time"
)

var (
	ErrValidationLimit      = errors.New("daily image validation limit reached")
	ErrChallengeNotFound    = errors.New("no active social blocker challenge")
	ErrChallengeNotElapsed  = errors.New("challenge days not completed yet")
	ErrInvalidChallengeDays = errors.New("challenge days must be greater than zero")
	ErrChallengePassword    = errors.New("challenge password is required")
)

const (
	// StartingAura is granted when a profile is created on first access.
	StartingAura = 50

	// DailyValidationLimit caps image verification calls per user per day.
	DailyValidationLimit = 200

	// DateLayout is the wire format for all day-granularity dates.
	DateLayout = "2006-01-02"
)

// UserProfile is the single source of truth for a user's aura balance and
// daily verification quota. The social blocker fields form an all-or-nothing
// group: nil means no active challenge.
type UserProfile struct {
	UserID                  string  `json:"userId"`
	Aura                    int     `json:"aura"`
	ValidationCount         int     `json:"validationCount"`
	LastValidationResetDate string  `json:"lastValidationResetDate"`
	SocialPassword          *string `json:"socialPassword,omitempty"`
	SocialDays              *int    `json:"socialDays,omitempty"`
	SocialStart             *string `json:"socialStart,omitempty"`
	SocialEnd               *string `json:"socialEnd,omitempty"`
}

func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:                  userID,
		Aura:                    StartingAura,
		ValidationCount:         0,
		LastValidationResetDate: Today(),
	}
}

func (p *UserProfile) HasActiveChallenge() bool {
	return p.SocialEnd != nil && *p.SocialEnd != ""
}

// Today returns the current UTC calendar day in the wire format.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// ParseDate parses a day-granularity date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
