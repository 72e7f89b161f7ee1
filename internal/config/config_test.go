package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "BIND_ADDR", "EXPORT_SCALE", "IMAGE_TIMEOUT", "MAX_UPLOAD_MB", "DATA_DIR", "ALLOW_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr() != "127.0.0.1:8080" {
		t.Errorf("Expected localhost bind, got %s", cfg.Server.Addr())
	}
	if cfg.Render.ImageTimeout != 1500*time.Millisecond {
		t.Errorf("Expected 1.5s image timeout, got %s", cfg.Render.ImageTimeout)
	}
	if cfg.Render.ExportScale != 2 {
		t.Errorf("Expected scale 2, got %v", cfg.Render.ExportScale)
	}
	if cfg.Server.MaxUploadBytes() != 32<<20 {
		t.Errorf("Unexpected upload limit %d", cfg.Server.MaxUploadBytes())
	}
	if !strings.HasSuffix(cfg.Data.PresetPath(), "presets.yaml") {
		t.Errorf("Unexpected preset path %s", cfg.Data.PresetPath())
	}
	if len(cfg.Server.AllowOrigins) != 2 {
		t.Errorf("Expected 2 default origins, got %v", cfg.Server.AllowOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("EXPORT_SCALE", "9")
	t.Setenv("IMAGE_TIMEOUT", "250ms")
	t.Setenv("DEFAULT_LOGO", "brand/logo.png")
	t.Setenv("ALLOW_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("Expected port 9000, got %s", cfg.Server.Port)
	}
	if cfg.Render.ExportScale != 4 {
		t.Errorf("Expected scale clamped to 4, got %v", cfg.Render.ExportScale)
	}
	if cfg.Render.ImageTimeout != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %s", cfg.Render.ImageTimeout)
	}
	if cfg.Defaults().LogoRef != "brand/logo.png" {
		t.Errorf("Expected default logo override, got %s", cfg.Defaults().LogoRef)
	}
	if len(cfg.Server.AllowOrigins) != 2 || cfg.Server.AllowOrigins[1] != "http://b.test" {
		t.Errorf("Unexpected origins %v", cfg.Server.AllowOrigins)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"EXPORT_SCALE", "big"},
		{"IMAGE_TIMEOUT", "soon"},
		{"MAX_UPLOAD_MB", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := (LogConfig{Level: in}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupLogging(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	buf := new(bytes.Buffer)
	logger := SetupLogging(buf, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Expected info to be filtered")
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("Expected key/value output, got %q", out)
	}
}
