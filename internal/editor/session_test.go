package editor

import (
	"errors"
	"testing"

	"github.com/youruser/coverapp/internal/bulk"
	"github.com/youruser/coverapp/internal/cover"
	"github.com/youruser/coverapp/internal/export"
)

func dataset(titles ...string) *bulk.Result {
	res := &bulk.Result{}
	for _, t := range titles {
		res.Items = append(res.Items, cover.Delta{Title: cover.String(t)})
	}
	return res
}

func TestLoadDatasetAppliesFirstItem(t *testing.T) {
	s := New(cover.Default())
	if _, err := s.Patch([]byte(`{"speaker_name":"Kept"}`)); err != nil {
		t.Fatal(err)
	}

	if err := s.LoadDataset(dataset("one", "two")); err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}
	cfg := s.Config()
	if cfg.Title != "one" {
		t.Errorf("Expected first item applied, got %s", cfg.Title)
	}
	if cfg.SpeakerName != "Kept" {
		t.Errorf("Expected fields absent from the delta to survive, got %s", cfg.SpeakerName)
	}
	view := s.Dataset()
	if !view.Active || view.Index != 0 || view.Total != 2 {
		t.Errorf("Unexpected dataset view %+v", view)
	}
}

func TestLoadDatasetEmptyKeepsState(t *testing.T) {
	s := New(cover.Default())
	if err := s.LoadDataset(dataset("one")); err != nil {
		t.Fatal(err)
	}
	if err := s.LoadDataset(&bulk.Result{}); !errors.Is(err, bulk.ErrEmptySheet) {
		t.Errorf("Expected ErrEmptySheet, got %v", err)
	}
	if s.Dataset().Total != 1 {
		t.Error("Expected previous dataset to remain")
	}
}

func TestNavigate(t *testing.T) {
	s := New(cover.Default())
	if _, _, err := s.Navigate(bulk.Next); !errors.Is(err, ErrNoDataset) {
		t.Errorf("Expected ErrNoDataset, got %v", err)
	}

	if err := s.LoadDataset(dataset("one", "two")); err != nil {
		t.Fatal(err)
	}
	cfg, idx, err := s.Navigate(bulk.Next)
	if err != nil || idx != 1 || cfg.Title != "two" {
		t.Errorf("Expected item two at 1, got %s at %d (%v)", cfg.Title, idx, err)
	}
	_, idx, _ = s.Navigate(bulk.Next)
	if idx != 1 {
		t.Errorf("Expected index clamped at 1, got %d", idx)
	}
	cfg, idx, _ = s.Navigate(bulk.Prev)
	if idx != 0 || cfg.Title != "one" {
		t.Errorf("Expected item one at 0, got %s at %d", cfg.Title, idx)
	}
}

func TestBusyRejectsEdits(t *testing.T) {
	s := New(cover.Default())
	s.SetZoom(1.5)

	restore, err := s.BeginExport()
	if err != nil {
		t.Fatal(err)
	}
	if s.Zoom() != 1 {
		t.Errorf("Expected zoom forced to 1, got %v", s.Zoom())
	}
	if _, err := s.BeginExport(); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected second export to be rejected, got %v", err)
	}
	if _, err := s.Patch([]byte(`{"title":"x"}`)); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected patch to be rejected, got %v", err)
	}
	if err := s.Reset(); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected reset to be rejected, got %v", err)
	}
	if err := s.LoadDataset(dataset("a")); !errors.Is(err, ErrBusy) {
		t.Errorf("Expected dataset load to be rejected, got %v", err)
	}

	restore()
	restore()
	if s.Exporting() {
		t.Error("Expected busy flag cleared")
	}
	if s.Zoom() != 1.5 {
		t.Errorf("Expected zoom restored to 1.5, got %v", s.Zoom())
	}
}

func TestBatchLeavesLiveConfigUntouched(t *testing.T) {
	s := New(cover.Default())
	if err := s.LoadDataset(dataset("one", "two", "three")); err != nil {
		t.Fatal(err)
	}
	before := s.Config()

	var rendered []string
	r := rendererFunc(func(cfg cover.Config) { rendered = append(rendered, cfg.Title) })
	res, err := export.Batch{Renderer: r}.Run(t.Context(), s, s.Config(), s.Dataset().Items)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Succeeded != 3 {
		t.Errorf("Expected 3 covers, got %d", res.Succeeded)
	}
	if s.Config() != before {
		t.Error("Expected live configuration untouched by batch export")
	}
	if s.Status().State != export.StateDone {
		t.Errorf("Expected done status, got %s", s.Status().State)
	}
	if s.Exporting() {
		t.Error("Expected busy flag cleared after batch")
	}
	if len(rendered) != 3 || rendered[2] != "three" {
		t.Errorf("Unexpected render order %v", rendered)
	}
}

func TestReset(t *testing.T) {
	s := New(cover.Default())
	if err := s.LoadDataset(dataset("one")); err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if s.Config() != cover.Default() {
		t.Error("Expected defaults after reset")
	}
	if s.Dataset().Active {
		t.Error("Expected dataset cleared")
	}
}

func TestSetZoomClamps(t *testing.T) {
	s := New(cover.Default())
	if got := s.SetZoom(10); got != MaxZoom {
		t.Errorf("Expected %v, got %v", MaxZoom, got)
	}
	if got := s.SetZoom(0); got != MinZoom {
		t.Errorf("Expected %v, got %v", MinZoom, got)
	}
}

func TestExportStatusLifecycle(t *testing.T) {
	s := New(cover.Default())

	restore, err := s.BeginExport()
	if err != nil {
		t.Fatal(err)
	}
	s.SetStatus(export.Status{State: export.StateDone, Current: 2, Total: 2, Message: "Done: 2 of 2 covers"})
	restore()
	if got := s.Status().State; got != export.StateDone {
		t.Errorf("Expected final status kept after run, got %s", got)
	}

	restore, err = s.BeginExport()
	if err != nil {
		t.Fatal(err)
	}
	if st := s.Status(); st.State != export.StateIdle || st.Message != "" {
		t.Errorf("Expected previous status cleared on next run, got %+v", st)
	}
	s.SetStatus(export.Status{State: export.StateFailed, Message: "boom"})
	restore()

	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	if st := s.Status(); st.State != export.StateIdle || st.Message != "" {
		t.Errorf("Expected status cleared on reset, got %+v", st)
	}
}
