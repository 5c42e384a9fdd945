// Package handler implements the dev-only gRPC DevService.
package handler

import (
	"context"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	devv1 "account-service/api/dev/v1"
	"account-service/internal/devmail"
)

const devNote = "DEV MODE ONLY"

// Mailbox is the read side of the dev mailbox.
type Mailbox interface {
	Latest(ctx context.Context, email string) (devmail.Message, bool)
}

// Server implements DevService. Only registered when RECOVERY_RETURN_TO_CLIENT is set and not production.
type Server struct {
	devv1.UnimplementedDevServiceServer
	mailbox Mailbox
}

// NewServer returns a DevService server that reads recovery tokens from mailbox.
func NewServer(mailbox Mailbox) *Server {
	return &Server{mailbox: mailbox}
}

// GetRecoveryToken returns the latest recovery token sent to email. Returns NotFound if missing or expired.
func (s *Server) GetRecoveryToken(ctx context.Context, req *devv1.GetRecoveryTokenRequest) (*devv1.GetRecoveryTokenResponse, error) {
	if s.mailbox == nil {
		return nil, status.Error(codes.Unimplemented, "dev mailbox not configured")
	}
	email := strings.TrimSpace(req.GetEmail())
	if email == "" {
		return nil, status.Error(codes.InvalidArgument, "email is required")
	}
	msg, ok := s.mailbox.Latest(ctx, email)
	if !ok {
		return nil, status.Error(codes.NotFound, "recovery token not found or expired")
	}
	return &devv1.GetRecoveryTokenResponse{
		Token:     msg.Token,
		ExpiresAt: msg.ExpiresAt,
		Note:      devNote,
	}, nil
}
