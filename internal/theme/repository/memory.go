package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"account-service/internal/theme/domain"
)

// UserMarker flags a user as having saved theme selections. Reports false when the user does not exist.
type UserMarker interface {
	MarkThemeDefined(ctx context.Context, userID string) (bool, error)
}

// MemoryRepository is an in-process Repository. Used by tests and by the server in development when
// DATABASE_URL is empty.
type MemoryRepository struct {
	mu         sync.Mutex
	catalog    []domain.Theme
	selections []domain.UserTheme
	users      UserMarker
}

// NewMemoryRepository returns a repository over catalog. users marks theme_defined on insert.
func NewMemoryRepository(catalog []domain.Theme, users UserMarker) *MemoryRepository {
	c := append([]domain.Theme(nil), catalog...)
	sort.Slice(c, func(i, j int) bool { return c[i].Name < c[j].Name })
	return &MemoryRepository{catalog: c, users: users}
}

func (r *MemoryRepository) ListCatalog(ctx context.Context) ([]domain.Theme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Theme(nil), r.catalog...), nil
}

func (r *MemoryRepository) GetUserThemeNames(ctx context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make(map[string]string, len(r.catalog))
	for _, t := range r.catalog {
		names[t.ID] = t.Name
	}
	out := []string{}
	for _, s := range r.selections {
		if s.UserID != userID {
			continue
		}
		if name, ok := names[s.ThemeID]; ok {
			out = append(out, name)
		}
	}
	return out, nil
}

func (r *MemoryRepository) InsertUserThemes(ctx context.Context, userID string, themeIDs []string) ([]domain.UserTheme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.users != nil {
		ok, err := r.users.MarkThemeDefined(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrUnknownUser
		}
	}
	out := make([]domain.UserTheme, 0, len(themeIDs))
	for _, id := range themeIDs {
		out = append(out, domain.UserTheme{ID: uuid.New().String(), UserID: userID, ThemeID: id})
	}
	r.selections = append(r.selections, out...)
	return out, nil
}
