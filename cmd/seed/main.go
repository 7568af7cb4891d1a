// Seed CLI: loads the starter catalog and well-known accounts.
// Safe to run repeatedly; records are upserted by natural key.
package main

import (
	"context"
	"os"

	"github.com/sweetshop/sweetshop-api/internal/infrastructure/config"
	"github.com/sweetshop/sweetshop-api/internal/infrastructure/db/postgres"
	"github.com/sweetshop/sweetshop-api/internal/infrastructure/seed"
	"github.com/sweetshop/sweetshop-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(postgres.Config{
		DSN:         cfg.Postgres.DSN,
		AutoMigrate: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	if err := seed.Run(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().Msg("seeding completed")
}
