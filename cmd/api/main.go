package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forms-backend/internal/bootstrap"
	"forms-backend/internal/shared/config"
	"forms-backend/internal/shared/server"
	"forms-backend/internal/shared/telemetry"
)

func main() {
	if err := run(); err != nil {
		telemetry.Error("server.exit", map[string]any{"error": err})
		telemetry.Sync()
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := telemetry.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Printf("logger init failed, using default: %v", err)
	}
	defer telemetry.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		telemetry.Info("server.start", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		telemetry.Info("server.shutdown", nil)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
