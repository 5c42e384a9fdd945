// Package handler implements the theme.v1 ThemeService.
package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	themev1 "account-service/api/theme/v1"
	"account-service/internal/platform/rbac"
	"account-service/internal/theme/service"
)

// Server implements ThemeService. Selection and suggestion RPCs only address the caller's own account.
type Server struct {
	themev1.UnimplementedThemeServiceServer
	themes *service.ThemeService
}

// NewServer returns a ThemeService server. If themes is nil, all RPCs return Unimplemented.
func NewServer(themes *service.ThemeService) *Server {
	return &Server{themes: themes}
}

func (s *Server) ListThemes(ctx context.Context, req *themev1.ListThemesRequest) (*themev1.ListThemesResponse, error) {
	if s.themes == nil {
		return nil, status.Error(codes.Unimplemented, "method ListThemes not implemented")
	}
	catalog, err := s.themes.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*themev1.Theme, len(catalog))
	for i, t := range catalog {
		out[i] = &themev1.Theme{ID: t.ID, Name: t.Name}
	}
	return &themev1.ListThemesResponse{Themes: out}, nil
}

func (s *Server) SaveThemeSelections(ctx context.Context, req *themev1.SaveThemeSelectionsRequest) (*themev1.SaveThemeSelectionsResponse, error) {
	if s.themes == nil {
		return nil, status.Error(codes.Unimplemented, "method SaveThemeSelections not implemented")
	}
	userID, err := rbac.RequireSelf(ctx, req.GetUserID())
	if err != nil {
		return nil, err
	}
	rows, err := s.themes.SaveSelections(ctx, userID, req.GetThemeIDs())
	if err != nil {
		return nil, err
	}
	out := make([]*themev1.UserTheme, len(rows))
	for i, r := range rows {
		out[i] = &themev1.UserTheme{ID: r.ID, UserID: r.UserID, ThemeID: r.ThemeID}
	}
	return &themev1.SaveThemeSelectionsResponse{Selections: out}, nil
}

func (s *Server) GetThemeSelections(ctx context.Context, req *themev1.GetThemeSelectionsRequest) (*themev1.GetThemeSelectionsResponse, error) {
	if s.themes == nil {
		return nil, status.Error(codes.Unimplemented, "method GetThemeSelections not implemented")
	}
	userID, err := rbac.RequireSelf(ctx, req.GetUserID())
	if err != nil {
		return nil, err
	}
	names, err := s.themes.GetSelections(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &themev1.GetThemeSelectionsResponse{Themes: names}, nil
}

// GetSuggestions returns generated suggestions for the caller's themes.
func (s *Server) GetSuggestions(ctx context.Context, req *themev1.GetSuggestionsRequest) (*themev1.GetSuggestionsResponse, error) {
	if s.themes == nil {
		return nil, status.Error(codes.Unimplemented, "method GetSuggestions not implemented")
	}
	userID, err := rbac.RequireSelf(ctx, req.GetUserID())
	if err != nil {
		return nil, err
	}
	out, err := s.themes.Suggestions(ctx, userID, int(req.GetCount()))
	if err != nil {
		return nil, unavailable(err)
	}
	return &themev1.GetSuggestionsResponse{Suggestions: out}, nil
}

// GetPageSuggestions returns one generated page per theme the caller selected.
func (s *Server) GetPageSuggestions(ctx context.Context, req *themev1.GetPageSuggestionsRequest) (*themev1.GetPageSuggestionsResponse, error) {
	if s.themes == nil {
		return nil, status.Error(codes.Unimplemented, "method GetPageSuggestions not implemented")
	}
	userID, err := rbac.RequireSelf(ctx, req.GetUserID())
	if err != nil {
		return nil, err
	}
	pages, err := s.themes.PageSuggestions(ctx, userID)
	if err != nil {
		return nil, unavailable(err)
	}
	out := make([]*themev1.PageSuggestion, len(pages))
	for i, p := range pages {
		out[i] = &themev1.PageSuggestion{Type: p.Theme, Content: p.Content}
	}
	return &themev1.GetPageSuggestionsResponse{Pages: out}, nil
}

func unavailable(err error) error {
	if errors.Is(err, service.ErrSuggestionsUnavailable) {
		return status.Error(codes.Unimplemented, "suggestion generator not configured")
	}
	return err
}
