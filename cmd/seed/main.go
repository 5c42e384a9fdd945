// seed inserts the theme catalog and, with -dev-user, a local development account.
// Idempotent: existing themes and an existing dev account are left untouched.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"account-service/internal/config"
	"account-service/internal/db"
	identityservice "account-service/internal/identity/service"
	"account-service/internal/logging"
	"account-service/internal/security"
	themedomain "account-service/internal/theme/domain"
	themerepo "account-service/internal/theme/repository"
	userrepo "account-service/internal/user/repository"
)

const (
	devUserEmail = "dev@example.com"
	devPassword  = "password123"
)

func main() {
	devUser := flag.Bool("dev-user", false, "Also create "+devUserEmail+" with a known password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is not set; create a .env or set DATABASE_URL")
		os.Exit(1)
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("db", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	catalog := themedomain.DefaultCatalog()
	inserted, err := themerepo.NewPostgresRepository(conn).SeedCatalog(ctx, catalog)
	if err != nil {
		log.Error("seed themes", "error", err)
		os.Exit(1)
	}
	log.Info("theme catalog seeded", "inserted", inserted, "existing", len(catalog)-inserted)

	if !*devUser {
		return
	}
	if cfg.IsProduction() {
		log.Error("refusing to create the dev account when APP_ENV=production")
		os.Exit(1)
	}
	// The session token is discarded, so any non-empty secret will do when JWT_SECRET is unset.
	secret, err := security.LoadSecret(cfg.JWTSecret)
	if errors.Is(err, security.ErrMissingSigningKey) {
		secret, err = []byte("seed-only"), nil
	}
	if err != nil {
		log.Error("jwt secret", "error", err)
		os.Exit(1)
	}
	tokens, err := security.NewTokenProvider(secret, cfg.JWTIssuer, cfg.JWTAudience, cfg.SessionTTL(), cfg.RecoveryTTL())
	if err != nil {
		log.Error("token provider", "error", err)
		os.Exit(1)
	}
	auth := identityservice.NewAuthService(userrepo.NewPostgresRepository(conn), security.NewHashPool(security.NewHasher(cfg.BcryptCost), 1), tokens,
		identityservice.WithLogger(log))
	res, err := auth.Create(ctx, devUserEmail, devPassword)
	switch {
	case errors.Is(err, identityservice.ErrEmailTaken):
		log.Info("dev account already exists", "email", devUserEmail)
	case err != nil:
		log.Error("create dev account", "error", err)
		os.Exit(1)
	default:
		log.Info("dev account created", "email", devUserEmail, "password", devPassword, "user_id", res.UserID)
	}
}
