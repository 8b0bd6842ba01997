package domain

import (
	"strings"
	"time"
)

// User represents an authenticated quiz owner.
type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a new User instance
func NewUser(email, name, avatarURL string) *User {
	now := time.Now()
	return &User{
		Email:     NormalizeEmail(email),
		Name:      strings.TrimSpace(name),
		AvatarURL: avatarURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	if u.Email == "" {
		return NewValidationError("email is required")
	}
	return nil
}

// NormalizeEmail trims and lower-cases an address so it can be used as an identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
