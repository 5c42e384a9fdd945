package repository

import (
	"context"

	"account-service/internal/theme/domain"
)

// Repository defines persistence for the theme catalog and per-user selections.
type Repository interface {
	// ListCatalog returns every catalog theme ordered by name.
	ListCatalog(ctx context.Context) ([]domain.Theme, error)
	// GetUserThemeNames returns the names of the themes selected by userID in stored order.
	// Duplicate selections appear once per stored row.
	GetUserThemeNames(ctx context.Context, userID string) ([]string, error)
	// InsertUserThemes stores one association per theme id and marks the user as having themes defined.
	// Returns domain.ErrUnknownUser when userID does not exist.
	InsertUserThemes(ctx context.Context, userID string, themeIDs []string) ([]domain.UserTheme, error)
}
