package domain

import "errors"

// ErrUnknownUser is returned by the repository when selections reference a user that does not exist.
var ErrUnknownUser = errors.New("user does not exist")

// Theme is a catalog entry: a named content-preference category. Immutable reference data.
type Theme struct {
	ID   string
	Name string
}

// UserTheme links a user to a selected theme. Duplicate (UserID, ThemeID) pairs are allowed.
type UserTheme struct {
	ID      string
	UserID  string
	ThemeID string
}
