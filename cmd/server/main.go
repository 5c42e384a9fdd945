package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"account-service/internal/audit"
	auditrepo "account-service/internal/audit/repository"
	"account-service/internal/config"
	"account-service/internal/db"
	"account-service/internal/devmail"
	"account-service/internal/events"
	identityservice "account-service/internal/identity/service"
	"account-service/internal/logging"
	"account-service/internal/mail"
	"account-service/internal/security"
	"account-service/internal/server"
	"account-service/internal/server/interceptors"
	"account-service/internal/suggestion"
	telemetryotel "account-service/internal/telemetry/otel"
	themedomain "account-service/internal/theme/domain"
	themerepo "account-service/internal/theme/repository"
	themeservice "account-service/internal/theme/service"
	userrepo "account-service/internal/user/repository"
)

const serviceName = "account-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	secret, err := security.LoadSecret(cfg.JWTSecret)
	if err != nil {
		fatal(log, "jwt secret", err)
	}
	tokens, err := security.NewTokenProvider(secret, cfg.JWTIssuer, cfg.JWTAudience, cfg.SessionTTL(), cfg.RecoveryTTL())
	if err != nil {
		fatal(log, "token provider", err)
	}

	ctx := context.Background()
	providers, err := telemetryotel.NewProviders(ctx, cfg.OTLPEndpoint, serviceName, cfg.OTLPInsecure, log)
	if err != nil {
		fatal(log, "otel", err)
	}
	providers.SetGlobal()

	emitters := events.Multi{}
	producer := events.NewKafkaProducer(cfg.KafkaBrokersList(), cfg.AccountEventsTopic)
	if producer != nil {
		emitters = append(emitters, producer)
		log.Info("publishing account events to kafka", "topic", cfg.AccountEventsTopic)
	}
	if cfg.OTLPEndpoint != "" {
		emitters = append(emitters, events.NewOTelEmitter(providers.LoggerProvider))
	}

	var (
		users    identityservice.UserRepo
		themes   themeservice.Repository
		auditLog audit.AuditLogger
		conn     *sql.DB
	)
	if cfg.DatabaseURL != "" {
		conn, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			fatal(log, "database", err)
		}
		defer conn.Close()
		users = userrepo.NewPostgresRepository(conn)
		themes = themerepo.NewPostgresRepository(conn)
		auditLog = audit.NewLogger(auditrepo.NewPostgresRepository(conn), interceptors.ClientIP, log)
	} else {
		if cfg.IsProduction() {
			fatal(log, "database", errors.New("DATABASE_URL is required when APP_ENV=production"))
		}
		log.Warn("DATABASE_URL not set; using in-memory stores, data is lost on restart")
		mem := userrepo.NewMemoryRepository()
		users = mem
		themes = themerepo.NewMemoryRepository(themedomain.DefaultCatalog(), mem)
	}

	authOpts := []identityservice.Option{
		identityservice.WithEmitter(emitters),
		identityservice.WithLogger(log),
	}
	themeOpts := []themeservice.Option{
		themeservice.WithEmitter(emitters),
		themeservice.WithLogger(log),
	}
	if auditLog != nil {
		authOpts = append(authOpts, identityservice.WithAuditLogger(auditLog))
		themeOpts = append(themeOpts, themeservice.WithAuditLogger(auditLog))
	}

	var mailbox *devmail.Mailbox
	switch {
	case cfg.RecoveryReturnToClient:
		mailbox = devmail.NewMailbox()
		authOpts = append(authOpts, identityservice.WithMailSender(mailbox))
		log.Warn("dev recovery mode: recovery tokens are readable through DevService")
	case cfg.MailAPIURL != "":
		authOpts = append(authOpts, identityservice.WithMailSender(mail.NewHTTPSender(cfg.MailAPIKey, cfg.MailAPIURL, cfg.MailFrom, cfg.ResetURL)))
	default:
		log.Info("MAIL_API_URL not set; password recovery is disabled")
	}

	if cfg.SuggestionAPIURL != "" {
		themeOpts = append(themeOpts, themeservice.WithSuggestionGenerator(suggestion.NewClient(cfg.SuggestionAPIKey, cfg.SuggestionAPIURL)))
	}

	hasher := security.NewHashPool(security.NewHasher(cfg.BcryptCost), cfg.HashWorkers())
	deps := server.Deps{
		Auth:       identityservice.NewAuthService(users, hasher, tokens, authOpts...),
		Themes:     themeservice.NewThemeService(themes, themeOpts...),
		DevMailbox: mailbox,
	}
	if conn != nil {
		deps.HealthPinger = conn
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		fatal(log, "listen", err)
	}
	defer lis.Close()

	s := server.NewGRPCServer(tokens, log, deps, grpc.StatsHandler(otelgrpc.NewServerHandler()))

	go func() {
		log.Info("gRPC server listening", "addr", cfg.GRPCAddr)
		if err := s.Serve(lis); err != nil {
			fatal(log, "serve", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down gRPC server...")
	s.GracefulStop()
	// Async emits run detached from request contexts; give them time to finish.
	time.Sleep(events.ShutdownDrainDuration)
	if err := producer.Close(); err != nil {
		log.Warn("kafka producer close", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Warn("otel shutdown", "error", err)
	}
	log.Info("gRPC server stopped")
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}
