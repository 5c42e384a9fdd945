// Package service implements theme catalog lookups, per-user theme selections and the
// suggestion requests driven by them.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"account-service/internal/apperr"
	"account-service/internal/audit"
	"account-service/internal/events"
	"account-service/internal/logging"
	"account-service/internal/theme/domain"
)

// DefaultSuggestionCount is used when Suggestions is called with a non-positive count.
const DefaultSuggestionCount = 6

var (
	ErrThemeIDsRequired = apperr.Invalid("At least one theme Id is required.")
	ErrInvalidThemeIDs  = apperr.Conflict("Invalid theme Id(s).")
	ErrUserNotFound     = apperr.NotFound("User not found.")
)

// ErrSuggestionsUnavailable is returned when no suggestion generator is configured.
var ErrSuggestionsUnavailable = errors.New("suggestion generator is not configured")

// Repository is the theme persistence needed by the service.
type Repository interface {
	ListCatalog(ctx context.Context) ([]domain.Theme, error)
	GetUserThemeNames(ctx context.Context, userID string) ([]string, error)
	InsertUserThemes(ctx context.Context, userID string, themeIDs []string) ([]domain.UserTheme, error)
}

// SuggestionGenerator produces content from theme names. *suggestion.Client implements it.
type SuggestionGenerator interface {
	Generate(ctx context.Context, themes []string, count int) ([]string, error)
	GeneratePages(ctx context.Context, themes []string) ([]string, error)
}

// PageSuggestion is generated page content for one theme.
type PageSuggestion struct {
	Theme   string
	Content string
}

// ThemeService implements the theme preference operations.
type ThemeService struct {
	repo      Repository
	generator SuggestionGenerator
	audit     audit.AuditLogger
	emitter   events.Emitter
	log       *slog.Logger
}

// Option configures optional ThemeService collaborators.
type Option func(*ThemeService)

func WithSuggestionGenerator(g SuggestionGenerator) Option {
	return func(s *ThemeService) { s.generator = g }
}

func WithAuditLogger(a audit.AuditLogger) Option { return func(s *ThemeService) { s.audit = a } }

func WithEmitter(e events.Emitter) Option { return func(s *ThemeService) { s.emitter = e } }

func WithLogger(l *slog.Logger) Option { return func(s *ThemeService) { s.log = l } }

// NewThemeService returns a ThemeService over repo.
func NewThemeService(repo Repository, opts ...Option) *ThemeService {
	s := &ThemeService{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logging.OrDefault(s.log)
	return s
}

// Catalog returns every theme ordered by name.
func (s *ThemeService) Catalog(ctx context.Context) ([]domain.Theme, error) {
	themes, err := s.repo.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	return themes, nil
}

// SaveSelections appends the given theme ids to the user's selections. Every id must exist in the
// catalog; otherwise nothing is stored and the error lists each unknown id.
func (s *ThemeService) SaveSelections(ctx context.Context, userID string, themeIDs []string) ([]domain.UserTheme, error) {
	if len(themeIDs) == 0 {
		return nil, ErrThemeIDsRequired
	}
	if userID == "" {
		return nil, ErrUserNotFound
	}
	catalog, err := s.repo.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}
	names := make(map[string]string, len(catalog))
	for _, t := range catalog {
		names[t.ID] = t.Name
	}
	var unknown []string
	seen := make(map[string]bool)
	for _, id := range themeIDs {
		if _, ok := names[id]; ok || seen[id] {
			continue
		}
		seen[id] = true
		unknown = append(unknown, id)
	}
	if len(unknown) > 0 {
		return nil, ErrInvalidThemeIDs.WithDetails(unknown...)
	}

	rows, err := s.repo.InsertUserThemes(ctx, userID, themeIDs)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownUser) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("save theme selections: %w", err)
	}

	selected := make([]string, 0, len(themeIDs))
	for _, id := range themeIDs {
		selected = append(selected, names[id])
	}
	if s.audit != nil {
		s.audit.LogEvent(ctx, userID, audit.ActionThemesSaved, fmt.Sprintf("count=%d", len(rows)))
	}
	ev := events.New(events.TypeThemesSelected, userID, "")
	ev.Themes = selected
	events.EmitAsync(s.emitter, s.log, ev)
	return rows, nil
}

// GetSelections returns the names of the user's selected themes in stored order.
func (s *ThemeService) GetSelections(ctx context.Context, userID string) ([]string, error) {
	names, err := s.repo.GetUserThemeNames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get theme selections: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Suggestions asks the generator for count suggestions based on the user's themes.
// A user without selections gets an empty list and no generator call.
func (s *ThemeService) Suggestions(ctx context.Context, userID string, count int) ([]string, error) {
	if s.generator == nil {
		return nil, ErrSuggestionsUnavailable
	}
	if count <= 0 {
		count = DefaultSuggestionCount
	}
	themes, err := s.GetSelections(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(themes) == 0 {
		return []string{}, nil
	}
	out, err := s.generator.Generate(ctx, themes, count)
	if err != nil {
		return nil, fmt.Errorf("generate suggestions: %w", err)
	}
	return out, nil
}

// PageSuggestions asks the generator for one page per selected theme.
func (s *ThemeService) PageSuggestions(ctx context.Context, userID string) ([]PageSuggestion, error) {
	if s.generator == nil {
		return nil, ErrSuggestionsUnavailable
	}
	themes, err := s.GetSelections(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(themes) == 0 {
		return []PageSuggestion{}, nil
	}
	pages, err := s.generator.GeneratePages(ctx, themes)
	if err != nil {
		return nil, fmt.Errorf("generate pages: %w", err)
	}
	if len(pages) != len(themes) {
		return nil, fmt.Errorf("generate pages: got %d pages for %d themes", len(pages), len(themes))
	}
	out := make([]PageSuggestion, len(themes))
	for i, name := range themes {
		out[i] = PageSuggestion{Theme: name, Content: pages[i]}
	}
	return out, nil
}
