// Package handler implements the account.v1 AccountService over the identity service.
package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	accountv1 "account-service/api/account/v1"
	identitydomain "account-service/internal/identity/domain"
	"account-service/internal/identity/service"
	"account-service/internal/platform/rbac"
	"account-service/internal/server/interceptors"
)

// EmailDeliveredMessage is returned once a recovery mail has been handed to the transport.
const EmailDeliveredMessage = "Email delivered."

// AccountServer implements AccountService. Business errors from the service are returned unchanged
// and rendered by interceptors.ErrorsUnary.
type AccountServer struct {
	accountv1.UnimplementedAccountServiceServer
	auth *service.AuthService
}

// NewAccountServer returns an AccountService server. If auth is nil, all RPCs return Unimplemented.
func NewAccountServer(auth *service.AuthService) *AccountServer {
	return &AccountServer{auth: auth}
}

// CreateUser signs up a local account and returns its first session token.
func (s *AccountServer) CreateUser(ctx context.Context, req *accountv1.CreateUserRequest) (*accountv1.CreateUserResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method CreateUser not implemented")
	}
	res, err := s.auth.Create(ctx, req.GetEmail(), req.GetPassword())
	if err != nil {
		return nil, err
	}
	return &accountv1.CreateUserResponse{
		Token:        res.Token,
		ThemeDefined: res.ThemeDefined,
		UserID:       res.UserID,
		ExpiresAt:    res.ExpiresAt,
	}, nil
}

// Login authenticates by password, or by Google id when google_id is set.
func (s *AccountServer) Login(ctx context.Context, req *accountv1.LoginRequest) (*accountv1.LoginResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method Login not implemented")
	}
	var login identitydomain.LoginRequest
	if req.GetGoogleID() != "" {
		login = identitydomain.FederatedLogin{Email: req.GetEmail(), GoogleID: req.GetGoogleID()}
	} else {
		login = identitydomain.LocalLogin{Email: req.GetEmail(), Password: req.GetPassword()}
	}
	res, err := s.auth.Login(ctx, login)
	if err != nil {
		return nil, err
	}
	return &accountv1.LoginResponse{
		Token:        res.Token,
		ThemeDefined: res.ThemeDefined,
		UserID:       res.UserID,
		ExpiresAt:    res.ExpiresAt,
		Created:      res.Created,
	}, nil
}

// UpdateUser changes the caller's email and optionally password.
func (s *AccountServer) UpdateUser(ctx context.Context, req *accountv1.UpdateUserRequest) (*accountv1.UpdateUserResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method UpdateUser not implemented")
	}
	userID, err := rbac.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	sum, err := s.auth.UpdateProfile(ctx, userID, req.GetEmail(), req.GetPassword())
	if err != nil {
		return nil, err
	}
	return &accountv1.UpdateUserResponse{User: toSummary(sum)}, nil
}

// RequestPasswordReset mails a recovery token to the account's address.
func (s *AccountServer) RequestPasswordReset(ctx context.Context, req *accountv1.RequestPasswordResetRequest) (*accountv1.RequestPasswordResetResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method RequestPasswordReset not implemented")
	}
	if err := s.auth.RequestPasswordReset(ctx, req.GetEmail()); err != nil {
		if errors.Is(err, service.ErrMailUnavailable) {
			return nil, status.Error(codes.Unimplemented, "password recovery mail not configured")
		}
		return nil, err
	}
	return &accountv1.RequestPasswordResetResponse{Message: EmailDeliveredMessage}, nil
}

// PerformPasswordReset sets a new password. The recovery token is the request's bearer credential.
func (s *AccountServer) PerformPasswordReset(ctx context.Context, req *accountv1.PerformPasswordResetRequest) (*accountv1.PerformPasswordResetResponse, error) {
	if s.auth == nil {
		return nil, status.Error(codes.Unimplemented, "method PerformPasswordReset not implemented")
	}
	sum, err := s.auth.PerformPasswordReset(ctx, interceptors.BearerToken(ctx), req.GetPassword())
	if err != nil {
		return nil, err
	}
	return &accountv1.PerformPasswordResetResponse{User: toSummary(sum)}, nil
}

func toSummary(u *service.UserSummary) *accountv1.UserSummary {
	return &accountv1.UserSummary{ID: u.ID, Email: u.Email, ThemeDefined: u.ThemeDefined}
}
