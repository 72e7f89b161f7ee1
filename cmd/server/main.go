package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/youruser/coverapp/internal/cli"
	"github.com/youruser/coverapp/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}
	config.SetupLogging(os.Stderr, cfg.Log.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Serve(ctx, cfg); err != nil {
		slog.Error("Server failed", "err", err)
		os.Exit(1)
	}
}
