package export

import (
	"context"
	"fmt"

	"github.com/youruser/coverapp/internal/cover"
	imagepkg "github.com/youruser/coverapp/internal/image"
)

// File is a rendered download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Single renders the live configuration once.
type Single struct {
	Renderer Renderer
	Scale    float64
}

// SingleOptions picks the encoding. Background only applies to JPEG.
type SingleOptions struct {
	Format     string
	Background string
	Quality    int
}

func (s Single) Run(ctx context.Context, host Host, cfg cover.Config, opts SingleOptions) (*File, error) {
	format, err := imagepkg.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	restore, err := host.BeginExport()
	if err != nil {
		return nil, err
	}
	defer restore()

	host.SetStatus(Status{State: StateProcessingRow, Current: 1, Total: 1, Message: "Generating..."})
	data, err := s.Renderer.Render(ctx, cfg, imagepkg.RenderOptions{
		Scale:      s.Scale,
		Format:     format,
		Background: opts.Background,
		Quality:    opts.Quality,
	})
	if err != nil {
		err = fmt.Errorf("rendering cover: %w", err)
		host.SetStatus(Status{State: StateFailed, Total: 1, Message: err.Error()})
		return nil, err
	}
	host.SetStatus(Status{State: StateDone, Current: 1, Total: 1, Message: "Done"})
	return &File{
		Name:        SingleFileName(cfg, format),
		ContentType: imagepkg.ContentType(format),
		Data:        data,
	}, nil
}
