package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashimthegreat/techbucket-website/internal/config"
	"github.com/ashimthegreat/techbucket-website/internal/database"
	"github.com/ashimthegreat/techbucket-website/internal/logger"
	"github.com/ashimthegreat/techbucket-website/internal/server"

	"go.uber.org/zap"
)

const shutdownGrace = 30 * time.Second

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server exited with error", zap.Error(err))
	}
	log.Info("Server exited")
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("Starting TechBucket website API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	dbService, err := database.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	db := dbService.DB()

	log.Info("Database health check", zap.Any("health", dbService.Health()))

	if err := database.RunMigrations(db, "migrations", log); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	srv := server.NewServer(cfg, log, db)

	// Creates the default admin account and starts the email dispatcher
	if err := srv.Bootstrap(context.Background()); err != nil {
		return fmt.Errorf("failed to bootstrap server: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		srv.Close()
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	// In-flight requests get shutdownGrace to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := srv.Close(); err != nil {
		log.Error("Error closing server resources", zap.Error(err))
	}

	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
