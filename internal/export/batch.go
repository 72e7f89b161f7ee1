package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/youruser/coverapp/internal/cover"
	imagepkg "github.com/youruser/coverapp/internal/image"
)

// RowError records a row that was skipped.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// BatchResult summarizes a finished batch.
type BatchResult struct {
	Requested int        `json:"requested"`
	Succeeded int        `json:"succeeded"`
	Errors    []RowError `json:"errors"`
	Entries   []Entry    `json:"-"`
	Archive   []byte     `json:"-"`
	Name      string     `json:"name"`
}

// Batch renders every dataset row in order and zips the results.
type Batch struct {
	Renderer Renderer
	Scale    float64
	Packager Packager
}

// Run renders base with each delta applied in turn. Rows run strictly one
// after another on a private copy of base; a failed row is logged and
// skipped. Cancellation is checked between rows.
func (b Batch) Run(ctx context.Context, host Host, base cover.Config, items []cover.Delta) (*BatchResult, error) {
	restore, err := host.BeginExport()
	if err != nil {
		return nil, err
	}
	defer restore()

	total := len(items)
	host.SetStatus(Status{State: StatePreparing, Total: total, Message: "Preparing..."})

	res := &BatchResult{Requested: total, Name: ArchiveName}
	for i, d := range items {
		if err := ctx.Err(); err != nil {
			return b.fail(host, res, fmt.Errorf("batch cancelled at row %d: %w", i+1, err))
		}
		host.SetStatus(Status{
			State:   StateProcessingRow,
			Current: i + 1,
			Total:   total,
			Message: fmt.Sprintf("Processing %d of %d...", i+1, total),
		})

		cfg := base.Apply(d)
		data, err := b.Renderer.Render(ctx, cfg, imagepkg.RenderOptions{Scale: b.Scale, Format: imagepkg.FormatPNG})
		if err != nil {
			if ctx.Err() != nil {
				return b.fail(host, res, fmt.Errorf("batch cancelled at row %d: %w", i+1, ctx.Err()))
			}
			slog.Error("Row failed", "row", i+1, "title", cfg.Title, "err", err)
			res.Errors = append(res.Errors, RowError{Row: i + 1, Error: err.Error()})
			continue
		}
		res.Entries = append(res.Entries, Entry{Name: BatchFileName(i, cfg), Data: data})
		res.Succeeded++
	}

	host.SetStatus(Status{State: StatePackaging, Current: total, Total: total, Message: "Zipping..."})
	pack := b.Packager
	if pack == nil {
		pack = ZipEntries
	}
	archive, err := pack(res.Entries)
	if err != nil {
		return b.fail(host, res, fmt.Errorf("%w: %v", ErrPackaging, err))
	}
	res.Archive = archive

	slog.Info("Batch export finished", "requested", res.Requested, "succeeded", res.Succeeded, "failed", len(res.Errors))
	host.SetStatus(Status{
		State:   StateDone,
		Current: total,
		Total:   total,
		Message: fmt.Sprintf("Done: %d of %d covers", res.Succeeded, total),
	})
	return res, nil
}

func (b Batch) fail(host Host, res *BatchResult, err error) (*BatchResult, error) {
	slog.Error("Batch export failed", "err", err)
	host.SetStatus(Status{State: StateFailed, Total: res.Requested, Message: err.Error()})
	return res, err
}
