package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/noah-isme/bunkerpal-api/api/swagger"
	"github.com/noah-isme/bunkerpal-api/internal/app"
	"github.com/noah-isme/bunkerpal-api/internal/handler"
	"github.com/noah-isme/bunkerpal-api/pkg/config"
	"github.com/noah-isme/bunkerpal-api/pkg/logger"
)

// @title BunkerPal API
// @version 1.0.0
// @description Class attendance tracking with bunk/attend projections.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("bootstrap failed", "error", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logr.Sugar().Warnw("shutdown cleanup failed", "error", err)
		}
	}()
	application.StartBackground(ctx)

	checks := map[string]handler.Pinger{
		"postgres": application.DB,
		"redis":    handler.PingFunc(application.PingRedis),
	}
	r := app.NewRouter(cfg, logr, application.Services, application.Validate, checks)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "reports", cfg.Reports.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Errorw("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Warnw("graceful shutdown failed", "error", err)
	}
}
