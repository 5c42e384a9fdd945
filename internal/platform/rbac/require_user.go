// Package rbac holds the caller checks shared by gRPC handlers.
package rbac

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"account-service/internal/server/interceptors"
)

// RequireUser ensures the caller is authenticated with a session token.
// Returns the caller's user id, or a gRPC Unauthenticated error.
func RequireUser(ctx context.Context) (string, error) {
	userID, ok := interceptors.GetUserID(ctx)
	if !ok || userID == "" {
		return "", status.Error(codes.Unauthenticated, "user context required")
	}
	return userID, nil
}

// RequireSelf ensures the caller is authenticated and that requestedUserID, when set, names the caller.
// An empty requestedUserID addresses the caller's own account. Returns the effective user id or a gRPC
// error (Unauthenticated or PermissionDenied).
func RequireSelf(ctx context.Context, requestedUserID string) (string, error) {
	userID, err := RequireUser(ctx)
	if err != nil {
		return "", err
	}
	if requestedUserID != "" && requestedUserID != userID {
		return "", status.Error(codes.PermissionDenied, "user_id does not match caller")
	}
	return userID, nil
}
