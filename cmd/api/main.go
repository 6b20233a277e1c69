package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/nulln0ne/rdx-dex/internal/app"
	"github.com/nulln0ne/rdx-dex/internal/config"
	"github.com/nulln0ne/rdx-dex/internal/handler"
	"github.com/nulln0ne/rdx-dex/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	server := fiber.New()
	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	h := handler.Handlers{
		Tokens:        handler.NewTokenHandler(logger, a.Registry),
		Swap:          handler.NewSwapHandler(logger, a.Registry, a.Swap),
		Pool:          handler.NewPoolHandler(logger, a.Registry, a.Pool),
		Notifications: handler.NewNotificationHandler(logger, a.Recorder),
		Gatherer:      a.Gatherer,
	}
	if cfg.FarmConfigured() {
		h.Farm = handler.NewFarmHandler(logger, a.Farm)
	}
	handler.Register(server, h)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(cfg.Addr)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			_ = server.Shutdown()
			a.Close()
			return fmt.Errorf("server error: %w", err)
		}
		a.Close()
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_ = server.ShutdownWithContext(shutdownCtx)

	a.Close()
	return nil
}
