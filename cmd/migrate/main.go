// Command migrate copies the flat-file accounts into PostgreSQL. It is safe to
// run repeatedly: accounts already present are skipped.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/GlebRadaev/recyclepay/internal/app"
	"github.com/GlebRadaev/recyclepay/internal/config"
	"github.com/GlebRadaev/recyclepay/internal/pg"
	"github.com/GlebRadaev/recyclepay/internal/service/migrationservice"
	"github.com/GlebRadaev/recyclepay/pkg/logger"
	"github.com/rs/zerolog/log"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.New()
	if err := logger.InitLogger(cfg); err != nil {
		log.Fatal().Err(err).Msg("Can't init logger")
	}
	if cfg.Database == "" {
		log.Fatal().Msg("DATABASE_URI is required")
	}

	st, err := app.NewStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Can't init storage")
	}
	defer st.Close()

	ctx = pg.WithProbeMemo(ctx)
	result, err := migrationservice.New(st.Backends, cfg.MigrationWorkers).MigrateAll(ctx)
	if err != nil {
		zap.L().Error("migration failed", zap.Error(err))
		log.Error().Err(err).Msg("Migration failed")
		st.Close()
		os.Exit(1)
	}

	log.Info().
		Int("migrated", result.Migrated).
		Int("skipped", result.Skipped).
		Int("errors", result.Errors).
		Msg("Migration finished")
	if result.Errors > 0 {
		st.Close()
		os.Exit(2)
	}
}
