package editor

import (
	"context"

	"github.com/youruser/coverapp/internal/cover"
	imagepkg "github.com/youruser/coverapp/internal/image"
)

type rendererFunc func(cfg cover.Config)

func (f rendererFunc) Render(_ context.Context, cfg cover.Config, _ imagepkg.RenderOptions) ([]byte, error) {
	f(cfg)
	return []byte("ok"), nil
}
