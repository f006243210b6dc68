// Command migrate provisions the register_user procedure in a local
// development database.
package main

import (
	"context"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"

	"github.com/octobees/ragnarok-registration/internal/config"
	"github.com/octobees/ragnarok-registration/internal/database"
	"github.com/octobees/ragnarok-registration/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logg := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, cfg.DatabaseURL(), logg); err != nil {
		logg.Fatal().Err(err).Msg("migration failed")
	}
}
