// Package accountv1 defines the account.v1 messages, exchanged as JSON over gRPC.
package accountv1

import "time"

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (x *CreateUserRequest) GetEmail() string {
	if x != nil {
		return x.Email
	}
	return ""
}

func (x *CreateUserRequest) GetPassword() string {
	if x != nil {
		return x.Password
	}
	return ""
}

type CreateUserResponse struct {
	Token        string    `json:"token"`
	ThemeDefined bool      `json:"themeDefined"`
	UserID       string    `json:"userId"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// LoginRequest selects the federated path when GoogleID is set; Password is then ignored.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	GoogleID string `json:"googleId,omitempty"`
}

func (x *LoginRequest) GetEmail() string {
	if x != nil {
		return x.Email
	}
	return ""
}

func (x *LoginRequest) GetPassword() string {
	if x != nil {
		return x.Password
	}
	return ""
}

func (x *LoginRequest) GetGoogleID() string {
	if x != nil {
		return x.GoogleID
	}
	return ""
}

// LoginResponse has Created set when a federated login created the account.
type LoginResponse struct {
	Token        string    `json:"token"`
	ThemeDefined bool      `json:"themeDefined"`
	UserID       string    `json:"userId"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Created      bool      `json:"created"`
}

type UserSummary struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	ThemeDefined bool   `json:"themeDefined"`
}

// UpdateUserRequest updates the caller's own account. An empty Password leaves the password unchanged.
type UpdateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

func (x *UpdateUserRequest) GetEmail() string {
	if x != nil {
		return x.Email
	}
	return ""
}

func (x *UpdateUserRequest) GetPassword() string {
	if x != nil {
		return x.Password
	}
	return ""
}

type UpdateUserResponse struct {
	User *UserSummary `json:"user"`
}

type RequestPasswordResetRequest struct {
	Email string `json:"email"`
}

func (x *RequestPasswordResetRequest) GetEmail() string {
	if x != nil {
		return x.Email
	}
	return ""
}

type RequestPasswordResetResponse struct {
	Message string `json:"message"`
}

// PerformPasswordResetRequest carries the new password. The recovery token travels as the bearer credential.
type PerformPasswordResetRequest struct {
	Password string `json:"password"`
}

func (x *PerformPasswordResetRequest) GetPassword() string {
	if x != nil {
		return x.Password
	}
	return ""
}

type PerformPasswordResetResponse struct {
	User *UserSummary `json:"user"`
}
