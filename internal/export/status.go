// Package export renders covers to files, one at a time or in batches
// packed into a zip archive.
package export

import (
	"context"
	"errors"

	"github.com/youruser/coverapp/internal/cover"
	imagepkg "github.com/youruser/coverapp/internal/image"
)

// State is a step of an export run.
type State string

const (
	StateIdle          State = "idle"
	StatePreparing     State = "preparing"
	StateProcessingRow State = "processing"
	StatePackaging     State = "packaging"
	StateDone          State = "done"
	StateFailed        State = "failed"
)

// Status is the progress published while an export runs.
type Status struct {
	State   State  `json:"state"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

var ErrPackaging = errors.New("packaging failed")

// Host is the editing session an export runs inside. BeginExport marks the
// session busy and returns a func that undoes it; restore always runs.
type Host interface {
	BeginExport() (restore func(), err error)
	SetStatus(Status)
}

// Renderer turns a configuration into encoded image bytes.
type Renderer interface {
	Render(ctx context.Context, cfg cover.Config, opts imagepkg.RenderOptions) ([]byte, error)
}

// NopHost runs exports outside an editing session, e.g. from the CLI.
// Progress goes to OnStatus when set.
type NopHost struct {
	OnStatus func(Status)
}

func (NopHost) BeginExport() (func(), error) { return func() {}, nil }

func (h NopHost) SetStatus(s Status) {
	if h.OnStatus != nil {
		h.OnStatus(s)
	}
}
