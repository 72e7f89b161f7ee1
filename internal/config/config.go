// Package config reads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/youruser/coverapp/internal/cover"
)

type Config struct {
	Server ServerConfig `json:"server"`
	Render RenderConfig `json:"render"`
	Data   DataConfig   `json:"data"`
	Log    LogConfig    `json:"log"`
}

type ServerConfig struct {
	Port         string   `json:"port"`
	BindAddr     string   `json:"bind_addr"`
	GinMode      string   `json:"gin_mode"`
	MaxUploadMB  int64    `json:"max_upload_mb"`
	AllowOrigins []string `json:"allow_origins"`
}

type RenderConfig struct {
	FontDir      string        `json:"font_dir"`
	DefaultLogo  string        `json:"default_logo"`
	ExportScale  float64       `json:"export_scale"`
	ImageTimeout time.Duration `json:"image_timeout"`
}

type DataConfig struct {
	Dir string `json:"dir"`
}

type LogConfig struct {
	Level string `json:"level"`
}

// Addr is the listen address for the HTTP editor.
func (s ServerConfig) Addr() string {
	return s.BindAddr + ":" + s.Port
}

// MaxUploadBytes is the multipart memory limit.
func (s ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// PresetPath is where named snapshots are stored.
func (d DataConfig) PresetPath() string {
	return filepath.Join(d.Dir, "presets.yaml")
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file, using system environment variables", "err", err)
	}

	scale, err := strconv.ParseFloat(getEnv("EXPORT_SCALE", "2"), 64)
	if err != nil {
		return nil, fmt.Errorf("EXPORT_SCALE: %w", err)
	}
	timeout, err := time.ParseDuration(getEnv("IMAGE_TIMEOUT", "1.5s"))
	if err != nil {
		return nil, fmt.Errorf("IMAGE_TIMEOUT: %w", err)
	}
	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "32"), 10, 64)
	if err != nil || maxUpload <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be a positive integer")
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			BindAddr:     getEnv("BIND_ADDR", "127.0.0.1"),
			GinMode:      getEnv("GIN_MODE", "release"),
			MaxUploadMB:  maxUpload,
			AllowOrigins: parseList(getEnv("ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		Render: RenderConfig{
			FontDir:      getEnv("FONT_DIR", "fonts"),
			DefaultLogo:  getEnv("DEFAULT_LOGO", cover.DefaultLogo),
			ExportScale:  cover.ClampScale(scale),
			ImageTimeout: timeout,
		},
		Data: DataConfig{
			Dir: getEnv("DATA_DIR", "data"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// Defaults returns the cover defaults with installation overrides applied.
func (c *Config) Defaults() cover.Config {
	d := cover.Default()
	d.LogoRef = c.Render.DefaultLogo
	return d
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
