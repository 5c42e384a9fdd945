package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrDuplicateEmail is returned by the repository when a write would give two users the same email.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrNoCredential is returned by Validate when a user has neither a password nor a federated identity.
var ErrNoCredential = errors.New("user must have a password or a federated identity")

// User is the core identity record. PasswordHash and GoogleID are both optional, but at least one
// must be set; a merged account carries both.
type User struct {
	ID           string
	Email        string
	PasswordHash string // empty for pure-federated accounts
	GoogleID     string // empty for local-only accounts
	ThemeDefined bool   // true once at least one theme selection is saved
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the user for persistence. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.PasswordHash == "" && u.GoogleID == "" {
		return ErrNoCredential
	}
	return nil
}

// HasPassword reports whether the user can log in with a local password.
func (u *User) HasPassword() bool { return u.PasswordHash != "" }

// Patch is a partial update of a user. Nil fields are left unchanged.
type Patch struct {
	ID           string
	Email        *string
	PasswordHash *string
	GoogleID     *string
	ThemeDefined *bool
	UpdatedAt    time.Time
}

// Apply returns a copy of u with the patch applied. Used to validate the resulting record before writing.
func (p Patch) Apply(u User) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.GoogleID != nil {
		u.GoogleID = *p.GoogleID
	}
	if p.ThemeDefined != nil {
		u.ThemeDefined = *p.ThemeDefined
	}
	if !p.UpdatedAt.IsZero() {
		u.UpdatedAt = p.UpdatedAt
	}
	return u
}

// NormalizeEmail trims and lower-cases an email. Emails are compared case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
