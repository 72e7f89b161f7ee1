// Package editor holds the state of the single live editing session: the
// configuration being edited, the loaded bulk dataset, preview zoom and
// export progress.
package editor

import (
	"errors"
	"sync"

	"github.com/youruser/coverapp/internal/bulk"
	"github.com/youruser/coverapp/internal/cover"
	"github.com/youruser/coverapp/internal/export"
)

var (
	// ErrBusy is returned for edits attempted while an export runs.
	ErrBusy      = errors.New("an export is in progress")
	ErrNoDataset = errors.New("no bulk dataset loaded")
)

// Preview zoom bounds.
const (
	MinZoom = 0.25
	MaxZoom = 2
)

// Session is safe for concurrent use.
type Session struct {
	mu        sync.RWMutex
	defaults  cover.Config
	cfg       cover.Config
	dataset   *bulk.Dataset
	zoom      float64
	savedZoom float64
	exporting bool
	status    export.Status
}

func New(defaults cover.Config) *Session {
	return &Session{
		defaults: defaults,
		cfg:      defaults,
		zoom:     1,
		status:   export.Status{State: export.StateIdle},
	}
}

func (s *Session) Config() cover.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Session) Defaults() cover.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

// Patch merges a JSON object into the live configuration.
func (s *Session) Patch(raw []byte) (cover.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exporting {
		return s.cfg, ErrBusy
	}
	next, err := s.cfg.Patch(raw)
	if err != nil {
		return s.cfg, err
	}
	s.cfg = next
	return next, nil
}

// Replace swaps the whole configuration, e.g. when a preset is loaded.
func (s *Session) Replace(cfg cover.Config) error {
	cfg = cfg.Clamp()
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exporting {
		return ErrBusy
	}
	s.cfg = cfg
	return nil
}

// Reset restores the defaults and drops the dataset.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exporting {
		return ErrBusy
	}
	s.cfg = s.defaults
	s.dataset = nil
	s.status = export.Status{State: export.StateIdle}
	return nil
}

// LoadDataset replaces the dataset wholesale, moves to the first item and
// applies it to the live configuration. On error nothing changes.
func (s *Session) LoadDataset(res *bulk.Result) error {
	if res == nil || len(res.Items) == 0 {
		return bulk.ErrEmptySheet
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exporting {
		return ErrBusy
	}
	s.dataset = bulk.NewDataset(res.Items)
	s.cfg = s.cfg.Apply(res.Items[0])
	return nil
}

// Navigate moves through the dataset and applies the item now selected.
func (s *Session) Navigate(dir bulk.Direction) (cover.Config, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exporting {
		return s.cfg, s.dataset.Index(), ErrBusy
	}
	d, ok := s.dataset.Move(dir)
	if !ok {
		return s.cfg, 0, ErrNoDataset
	}
	s.cfg = s.cfg.Apply(d)
	return s.cfg, s.dataset.Index(), nil
}

// DatasetView is a read-only snapshot of the bulk dataset.
type DatasetView struct {
	Active bool          `json:"active"`
	Index  int           `json:"index"`
	Total  int           `json:"total"`
	Items  []cover.Delta `json:"items"`
}

func (s *Session) Dataset() DatasetView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DatasetView{
		Active: s.dataset.Len() > 0,
		Index:  s.dataset.Index(),
		Total:  s.dataset.Len(),
		Items:  s.dataset.Items(),
	}
}

func (s *Session) Zoom() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.zoom
}

// SetZoom clamps z to [MinZoom, MaxZoom].
func (s *Session) SetZoom(z float64) float64 {
	if z < MinZoom {
		z = MinZoom
	}
	if z > MaxZoom {
		z = MaxZoom
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exporting {
		s.savedZoom = z
		return s.zoom
	}
	s.zoom = z
	return z
}

// BeginExport marks the session busy, clears the previous run's status and
// forces 1:1 preview zoom. The returned func restores the zoom and clears
// the busy flag; the final status stays readable until the next run.
func (s *Session) BeginExport() (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exporting {
		return nil, ErrBusy
	}
	s.exporting = true
	s.status = export.Status{State: export.StateIdle}
	s.savedZoom = s.zoom
	s.zoom = 1

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.zoom = s.savedZoom
			s.exporting = false
		})
	}, nil
}

func (s *Session) Exporting() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exporting
}

func (s *Session) SetStatus(st export.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = st
}

func (s *Session) Status() export.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
