package repository

import (
	"context"

	"account-service/internal/user/domain"
)

// Repository defines persistence for users. Get methods return nil, nil when no user matches.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts u. Returns domain.ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, u *domain.User) error
	// Update applies the non-nil fields of p and returns the updated user, or nil if p.ID does not exist.
	// Returns domain.ErrDuplicateEmail when the new email is already taken.
	Update(ctx context.Context, p domain.Patch) (*domain.User, error)
}
