package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"account-service/internal/user/domain"
)

// MemoryRepository is an in-process Repository with the same uniqueness rule as the Postgres schema.
// Used by tests and by the server in development when DATABASE_URL is empty.
type MemoryRepository struct {
	mu   sync.Mutex
	byID map[string]*domain.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*domain.User)}
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u := r.findEmail(email); u != nil {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *MemoryRepository) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findEmail(u.Email) != nil {
		return domain.ErrDuplicateEmail
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *MemoryRepository) Update(ctx context.Context, p domain.Patch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[p.ID]
	if !ok {
		return nil, nil
	}
	if p.Email != nil {
		if other := r.findEmail(*p.Email); other != nil && other.ID != p.ID {
			return nil, domain.ErrDuplicateEmail
		}
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	next := p.Apply(*u)
	r.byID[p.ID] = &next
	cp := next
	return &cp, nil
}

// MarkThemeDefined sets ThemeDefined on the user. Reports false when the user does not exist.
func (r *MemoryRepository) MarkThemeDefined(ctx context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[userID]
	if !ok {
		return false, nil
	}
	u.ThemeDefined = true
	u.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *MemoryRepository) findEmail(email string) *domain.User {
	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}
