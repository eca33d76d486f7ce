// Package main запускает веб-клиент проката автомобилей Rentify.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/magabrotheeeer/rentify-web/internal/app"
	"github.com/magabrotheeeer/rentify-web/internal/config"
	"github.com/magabrotheeeer/rentify-web/internal/lib/sl"
)

func main() {
	// .env необязателен: в контейнере переменные приходят из окружения.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	logger.Info("starting rentify-web", slog.String("env", cfg.Env))
	logger.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("rentify-web stopped gracefully")
}
