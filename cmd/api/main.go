package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vaughan-dsouza/courses-api/internal/config"
	"github.com/vaughan-dsouza/courses-api/internal/db"
	"github.com/vaughan-dsouza/courses-api/internal/logger"
	"github.com/vaughan-dsouza/courses-api/internal/server"
	"github.com/vaughan-dsouza/courses-api/internal/store"
)

func main() {
	cfg, envLoaded, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	logger.Configure(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	if !envLoaded {
		logger.Info().Msg("No .env file found")
	}

	conn, err := db.Open(cfg.DatabaseURL, db.PoolConfig{
		MaxOpen:     cfg.DBMaxOpen,
		MaxIdle:     cfg.DBMaxIdle,
		MaxLifetime: cfg.DBMaxLifetime,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("db open")
	}
	s := store.New(conn)
	defer s.Close()

	// Schema and connectivity problems are logged; the server still starts.
	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 15*time.Second)
	if err := s.Migrate(bootCtx); err != nil {
		logger.Error().Err(err).Msg("Error creating database schema")
	}
	if err := s.Ping(bootCtx); err != nil {
		logger.Error().Err(err).Msg("Error connecting to the database")
	} else {
		logger.Info().Msg("Connection to the database successful!")
	}
	cancelBoot()

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: server.NewRouter(s),
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server is listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}
