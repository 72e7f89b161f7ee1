package config

import (
	"io"
	"log/slog"

	"github.com/gogpu/gg"
)

// SetupLogging installs a text slog handler as the default logger and
// routes the rasterizer's diagnostics through it.
func SetupLogging(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gg.SetLogger(logger.With("component", "gg"))
	return logger
}
