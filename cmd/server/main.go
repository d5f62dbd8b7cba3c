// @title RSVP Tracker API
// @version 1.0
// @description Guest list and RSVP recording API.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rsvptracker/config"
	_ "rsvptracker/docs"
	delivery "rsvptracker/internal/delivery/http"
	"rsvptracker/internal/delivery/http/controllers"
	"rsvptracker/internal/repository/postgres"
	"rsvptracker/internal/services"
)

const shutdownGracePeriod = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cfg.Environment, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck

	if err := postgres.ApplyMigrations(db); err != nil {
		return err
	}
	logger.Info("database migrations applied")

	store := postgres.NewStore(db)
	guestController := controllers.NewGuestController(logger, services.NewGuestService(store.Guests()))
	healthController := controllers.NewHealthController(logger, store)

	mux := delivery.NewRouter(guestController, healthController)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           delivery.NewHandler(logger, cfg.AllowedOrigins, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment, "allow_all_origins", cfg.AllowAllOrigins())
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		return srv.Close()
	}
	logger.Info("server stopped")
	return nil
}
