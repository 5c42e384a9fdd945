package interceptors

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"account-service/internal/security"
)

const (
	publicMethod    = "/test.Service/PublicMethod"
	protectedMethod = "/test.Service/ProtectedMethod"
)

type seen struct {
	called bool
	userID string
	email  string
	bearer string
}

func capture(s *seen) grpc.UnaryHandler {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		s.called = true
		s.userID, _ = GetUserID(ctx)
		s.email, _ = GetEmail(ctx)
		s.bearer = BearerToken(ctx)
		return "success", nil
	}
}

func withBearer(token string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+token))
}

func newInterceptor(t *testing.T) (grpc.UnaryServerInterceptor, *security.TokenProvider) {
	t.Helper()
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	return AuthUnary(tokens, map[string]bool{publicMethod: true}), tokens
}

func TestAuthUnary_PublicMethod_NoToken(t *testing.T) {
	interceptor, _ := newInterceptor(t)
	var s seen
	resp, err := interceptor(context.Background(), "request", &grpc.UnaryServerInfo{FullMethod: publicMethod}, capture(&s))
	if err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if resp != "success" || s.userID != "" {
		t.Errorf("resp = %v, userID = %q", resp, s.userID)
	}
}

func TestAuthUnary_ProtectedMethod_NoToken(t *testing.T) {
	interceptor, _ := newInterceptor(t)
	var s seen
	_, err := interceptor(context.Background(), "request", &grpc.UnaryServerInfo{FullMethod: protectedMethod}, capture(&s))
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("code = %v, want Unauthenticated", status.Code(err))
	}
	if s.called {
		t.Error("handler must not run")
	}
}

func TestAuthUnary_ProtectedMethod_ValidSession(t *testing.T) {
	interceptor, tokens := newInterceptor(t)
	token, _, err := tokens.IssueSession("user-1", "a@x.com", false)
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	var s seen
	if _, err := interceptor(withBearer(token), "request", &grpc.UnaryServerInfo{FullMethod: protectedMethod}, capture(&s)); err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if s.userID != "user-1" || s.email != "a@x.com" {
		t.Errorf("identity = %q/%q", s.userID, s.email)
	}
}

func TestAuthUnary_ProtectedMethod_InvalidToken(t *testing.T) {
	interceptor, _ := newInterceptor(t)
	var s seen
	_, err := interceptor(withBearer("garbage"), "request", &grpc.UnaryServerInfo{FullMethod: protectedMethod}, capture(&s))
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("code = %v, want Unauthenticated", status.Code(err))
	}
}

func TestAuthUnary_ProtectedMethod_RecoveryTokenRejected(t *testing.T) {
	interceptor, tokens := newInterceptor(t)
	token, _, err := tokens.IssueRecovery("a@x.com")
	if err != nil {
		t.Fatalf("IssueRecovery: %v", err)
	}
	var s seen
	_, err = interceptor(withBearer(token), "request", &grpc.UnaryServerInfo{FullMethod: protectedMethod}, capture(&s))
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("code = %v, want Unauthenticated", status.Code(err))
	}
	if s.called {
		t.Error("handler must not run")
	}
}

func TestAuthUnary_PublicMethod_RecoveryTokenPassesThrough(t *testing.T) {
	interceptor, tokens := newInterceptor(t)
	token, _, err := tokens.IssueRecovery("a@x.com")
	if err != nil {
		t.Fatalf("IssueRecovery: %v", err)
	}
	var s seen
	if _, err := interceptor(withBearer(token), "request", &grpc.UnaryServerInfo{FullMethod: publicMethod}, capture(&s)); err != nil {
		t.Fatalf("interceptor: %v", err)
	}
	if s.bearer != token || s.userID != "" {
		t.Errorf("bearer = %q, userID = %q", s.bearer, s.userID)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid", "Bearer token123", "token123"},
		{"case insensitive", "bearer token123", "token123"},
		{"invalid prefix", "Basic token123", ""},
		{"whitespace", "  Bearer   token123  ", "token123"},
		{"too short", "Bear", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", tt.header))
			if got := BearerToken(ctx); got != tt.want {
				t.Errorf("BearerToken = %q, want %q", got, tt.want)
			}
		})
	}
	if got := BearerToken(context.Background()); got != "" {
		t.Errorf("missing metadata: got %q", got)
	}
}
