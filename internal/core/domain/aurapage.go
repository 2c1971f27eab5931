package domain

import (
	"errors"
	"regexp"
)

var (
	ErrInvalidUsername = errors.New("invalid username (max 40 chars, only letters, numbers, dot, underscore, hyphen)")
	ErrUsernameTaken   = errors.New("username already in use")
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

const MaxUsernameLen = 40

// AllowedThemes are the cosmetic themes a public aura page can unlock.
var AllowedThemes = []string{"hacker", "peace", "midnight", "gold"}

// AuraPage is a user's public score page: a unique handle, a visibility
// switch, and an optional cosmetic theme.
type AuraPage struct {
	UserID   string  `json:"userId"`
	Username string  `json:"username"`
	Enabled  bool    `json:"enable"`
	Theme    *string `json:"theme"`
}

func NewAuraPage(userID, username string, enabled bool, theme string) (*AuraPage, error) {
	if username == "" || len(username) > MaxUsernameLen || !usernameRegex.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	// Unknown themes are stored as null rather than rejected.
	var validTheme *string
	for _, t := range AllowedThemes {
		if theme == t {
			validTheme = &theme
			break
		}
	}

	return &AuraPage{
		UserID:   userID,
		Username: username,
		Enabled:  enabled,
		Theme:    validTheme,
	}, nil
}
