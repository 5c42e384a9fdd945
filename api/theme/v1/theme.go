// Package themev1 defines the theme.v1 messages, exchanged as JSON over gRPC.
package themev1

type Theme struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserTheme struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	ThemeID string `json:"themeId"`
}

type ListThemesRequest struct{}

type ListThemesResponse struct {
	Themes []*Theme `json:"themes"`
}

// UserID may be left empty to address the caller's own account.
type SaveThemeSelectionsRequest struct {
	UserID   string   `json:"userId,omitempty"`
	ThemeIDs []string `json:"themeIds"`
}

func (x *SaveThemeSelectionsRequest) GetUserID() string {
	if x != nil {
		return x.UserID
	}
	return ""
}

func (x *SaveThemeSelectionsRequest) GetThemeIDs() []string {
	if x != nil {
		return x.ThemeIDs
	}
	return nil
}

type SaveThemeSelectionsResponse struct {
	Selections []*UserTheme `json:"selections"`
}

type GetThemeSelectionsRequest struct {
	UserID string `json:"userId,omitempty"`
}

func (x *GetThemeSelectionsRequest) GetUserID() string {
	if x != nil {
		return x.UserID
	}
	return ""
}

// GetThemeSelectionsResponse lists theme names in stored order; duplicates are kept.
type GetThemeSelectionsResponse struct {
	Themes []string `json:"themes"`
}

type GetSuggestionsRequest struct {
	UserID string `json:"userId,omitempty"`
	Count  int32  `json:"count,omitempty"`
}

func (x *GetSuggestionsRequest) GetUserID() string {
	if x != nil {
		return x.UserID
	}
	return ""
}

func (x *GetSuggestionsRequest) GetCount() int32 {
	if x != nil {
		return x.Count
	}
	return 0
}

type GetSuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type GetPageSuggestionsRequest struct {
	UserID string `json:"userId,omitempty"`
}

func (x *GetPageSuggestionsRequest) GetUserID() string {
	if x != nil {
		return x.UserID
	}
	return ""
}

// PageSuggestion is generated page content for one of the user's themes.
type PageSuggestion struct {
	Type    string `json:"type"`
	Content string `json:"pageData"`
}

type GetPageSuggestionsResponse struct {
	Pages []*PageSuggestion `json:"pages"`
}
