// migrate runs DB migrations from embedded SQL; use with go run ./cmd/migrate.
package main

import (
	"flag"
	"log/slog"
	"os"

	"account-service/internal/config"
	"account-service/internal/db/migrate"
	"account-service/internal/logging"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	status := flag.Bool("status", false, "Print the applied schema version and exit")
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

	if *status {
		version, dirty, err := migrate.Version(cfg.DatabaseURL)
		if err != nil {
			log.Error("migrate status", "error", err)
			os.Exit(1)
		}
		log.Info("schema version", "version", version, "dirty", dirty)
		return
	}

	// Already being at the target version is reported as success by Run.
	if err := migrate.Run(cfg.DatabaseURL, *direction); err != nil {
		log.Error("migrate", "direction", *direction, "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied", "direction", *direction)
}
