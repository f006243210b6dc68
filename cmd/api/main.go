package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"

	"github.com/octobees/ragnarok-registration/internal/config"
	"github.com/octobees/ragnarok-registration/internal/database"
	"github.com/octobees/ragnarok-registration/internal/handler"
	"github.com/octobees/ragnarok-registration/internal/logger"
	"github.com/octobees/ragnarok-registration/internal/repository"
	"github.com/octobees/ragnarok-registration/internal/router"
	"github.com/octobees/ragnarok-registration/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logg := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL(), logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	registrations := repository.NewPGXRegistrationRepository(pool)
	registrationService := service.NewRegistrationService(registrations)
	registrationHandler := handler.NewRegistrationHandler(registrationService, logg)

	e := router.New(logg, router.Handlers{Registration: registrationHandler})

	serverErr := make(chan error, 1)
	go func() {
		logg.Info().Str("port", cfg.Port).Msg("http server listening")
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logg.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error().Err(err).Msg("server error")
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("graceful shutdown failed")
	}
}
