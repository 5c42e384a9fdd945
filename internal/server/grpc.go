package server

import (
	"log/slog"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	accountv1 "account-service/api/account/v1"
	devv1 "account-service/api/dev/v1"
	themev1 "account-service/api/theme/v1"

	"account-service/internal/devmail"
	devhandler "account-service/internal/devmail/handler"
	healthhandler "account-service/internal/health/handler"
	identityhandler "account-service/internal/identity/handler"
	identityservice "account-service/internal/identity/service"
	"account-service/internal/server/interceptors"
	themehandler "account-service/internal/theme/handler"
	themeservice "account-service/internal/theme/service"
)

// Deps holds optional service dependencies for gRPC handlers.
type Deps struct {
	// Auth backs AccountService. If nil, account RPCs return Unimplemented.
	Auth *identityservice.AuthService
	// Themes backs ThemeService. If nil, theme RPCs return Unimplemented.
	Themes *themeservice.ThemeService
	// HealthPinger is used by the health service for readiness (e.g. *sql.DB). If nil, Check skips the DB ping.
	HealthPinger healthhandler.Pinger
	// DevMailbox is read by the dev-only DevService. If nil, DevService is not registered.
	// Set only when RECOVERY_RETURN_TO_CLIENT is enabled outside production.
	DevMailbox *devmail.Mailbox
}

// RegisterServices registers all gRPC services with the given server.
//
// Service → handler mapping:
//   - account.v1.AccountService → internal/identity/handler
//   - theme.v1.ThemeService     → internal/theme/handler
//   - grpc.health.v1.Health     → internal/health/handler
//   - dev.v1.DevService         → internal/devmail/handler (dev only)
func RegisterServices(s grpc.ServiceRegistrar, deps Deps) {
	accountv1.RegisterAccountServiceServer(s, identityhandler.NewAccountServer(deps.Auth))
	themev1.RegisterThemeServiceServer(s, themehandler.NewServer(deps.Themes))
	healthpb.RegisterHealthServer(s, healthhandler.NewServer(deps.HealthPinger))
	if deps.DevMailbox != nil {
		devv1.RegisterDevServiceServer(s, devhandler.NewServer(deps.DevMailbox))
	}
}

// PublicMethods returns the full method names callable without a session token.
// PerformPasswordReset is public to the interceptor; its handler validates the recovery bearer itself.
func PublicMethods() map[string]bool {
	return map[string]bool{
		accountv1.CreateUserMethod:           true,
		accountv1.LoginMethod:                true,
		accountv1.RequestPasswordResetMethod: true,
		accountv1.PerformPasswordResetMethod: true,
		themev1.ListThemesMethod:             true,
		devv1.GetRecoveryTokenMethod:         true,
		healthpb.Health_Check_FullMethodName: true,
	}
}

// UnaryInterceptors returns the server's interceptor chain, outermost first: request logging, error
// rendering, then session authentication.
func UnaryInterceptors(tokens interceptors.SessionValidator, log *slog.Logger) []grpc.UnaryServerInterceptor {
	skipLog := map[string]bool{healthpb.Health_Check_FullMethodName: true}
	return []grpc.UnaryServerInterceptor{
		interceptors.LoggingUnary(log, skipLog),
		interceptors.ErrorsUnary(log),
		interceptors.AuthUnary(tokens, PublicMethods()),
	}
}

// NewGRPCServer builds a grpc.Server with the interceptor chain and all services registered.
func NewGRPCServer(tokens interceptors.SessionValidator, log *slog.Logger, deps Deps, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(UnaryInterceptors(tokens, log)...))
	s := grpc.NewServer(opts...)
	RegisterServices(s, deps)
	return s
}
