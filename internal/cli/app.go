package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youruser/coverapp/internal/api"
	"github.com/youruser/coverapp/internal/assets"
	"github.com/youruser/coverapp/internal/catalog"
	"github.com/youruser/coverapp/internal/config"
	"github.com/youruser/coverapp/internal/editor"
	imagepkg "github.com/youruser/coverapp/internal/image"
	"github.com/youruser/coverapp/internal/preset"
)

// App bundles the long-lived components shared by every command.
type App struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Assets   *assets.Registry
	Fonts    *imagepkg.FontBook
	Renderer *imagepkg.Renderer
	Presets  *preset.Store
}

func NewApp(cfg *config.Config) *App {
	cat, err := catalog.LoadFromDataDir(cfg.Data.Dir)
	if err != nil {
		slog.Warn("Custom categories not loaded", "err", err)
	}
	reg := assets.NewRegistry()
	reg.AllowLocal(cfg.Render.DefaultLogo)
	fonts := imagepkg.NewFontBook(cfg.Render.FontDir)
	return &App{
		Config:   cfg,
		Catalog:  cat,
		Assets:   reg,
		Fonts:    fonts,
		Renderer: imagepkg.NewRenderer(reg, fonts, cfg.Render.ImageTimeout),
		Presets:  preset.NewStore(cfg.Data.PresetPath(), cfg.Defaults()),
	}
}

func (a *App) Close() {
	a.Fonts.Close()
}

// RegisterDir registers every regular file in dir as an upload.
func (a *App) RegisterDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return n, err
		}
		a.Assets.Register(e.Name(), data)
		n++
	}
	return n, nil
}

// Serve runs the HTTP editor until ctx is cancelled.
func Serve(ctx context.Context, cfg *config.Config) error {
	app := NewApp(cfg)
	defer app.Close()

	gin.SetMode(cfg.Server.GinMode)
	h := api.NewHandler(editor.New(cfg.Defaults()), app.Assets, app.Catalog, app.Renderer, app.Presets, cfg.Render.ExportScale)
	router := api.NewRouter(h, api.RouterOptions{
		AllowOrigins:   cfg.Server.AllowOrigins,
		MaxUploadBytes: cfg.Server.MaxUploadBytes(),
	})

	server := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Cover editor available", "addr", server.Addr, "url", "http://"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "err", err)
			return err
		}
		slog.Info("Server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}
