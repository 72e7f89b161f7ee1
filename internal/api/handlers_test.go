package api

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/youruser/coverapp/internal/assets"
	"github.com/youruser/coverapp/internal/catalog"
	"github.com/youruser/coverapp/internal/cover"
	"github.com/youruser/coverapp/internal/editor"
	imagepkg "github.com/youruser/coverapp/internal/image"
	"github.com/youruser/coverapp/internal/preset"
)

type stubRenderer struct{}

func (stubRenderer) Render(_ context.Context, cfg cover.Config, opts imagepkg.RenderOptions) ([]byte, error) {
	return []byte("rendered:" + cfg.Title), nil
}

func newTestServer(t *testing.T) (*Handler, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	defaults := cover.Default()
	defaults.LogoRef = ""
	h := NewHandler(
		editor.New(defaults),
		assets.NewRegistry(),
		catalog.Default(),
		stubRenderer{},
		preset.NewStore(filepath.Join(t.TempDir(), "presets.yaml"), defaults),
		2,
	)
	r := gin.New()
	RegisterRoutes(r, h)
	return h, r
}

func do(r http.Handler, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func multipartBody(t *testing.T, field string, files map[string]string) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(content))
	}
	mw.Close()
	return buf.Bytes(), mw.FormDataContentType()
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("Invalid JSON %q: %v", w.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	_, r := newTestServer(t)
	w := do(r, http.MethodGet, "/api/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}

func TestConfigEndpoints(t *testing.T) {
	h, r := newTestServer(t)

	w := do(r, http.MethodPatch, "/api/config", []byte(`{"title":"Hello"}`), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var cfg cover.Config
	decode(t, w, &cfg)
	if cfg.Title != "Hello" {
		t.Errorf("Expected title Hello, got %s", cfg.Title)
	}

	w = do(r, http.MethodPatch, "/api/config", []byte(`{"layout":"diagonal"}`), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid layout, got %d", w.Code)
	}

	restore, err := h.Session.BeginExport()
	if err != nil {
		t.Fatal(err)
	}
	w = do(r, http.MethodPatch, "/api/config", []byte(`{"title":"Blocked"}`), "application/json")
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 while exporting, got %d", w.Code)
	}
	restore()

	h.Assets.Register("logo.png", []byte("x"))
	w = do(r, http.MethodPost, "/api/config/reset", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on reset, got %d", w.Code)
	}
	if h.Session.Config().Title != cover.Default().Title {
		t.Errorf("Expected default title after reset")
	}
	if h.Assets.Len() != 0 {
		t.Errorf("Expected assets cleared on reset, got %d", h.Assets.Len())
	}
}

func TestZoom(t *testing.T) {
	_, r := newTestServer(t)
	w := do(r, http.MethodPut, "/api/zoom", []byte(`{"zoom":10}`), "application/json")
	var out struct {
		Zoom float64 `json:"zoom"`
	}
	decode(t, w, &out)
	if out.Zoom != editor.MaxZoom {
		t.Errorf("Expected zoom clamped to %v, got %v", editor.MaxZoom, out.Zoom)
	}
}

func TestCategories(t *testing.T) {
	_, r := newTestServer(t)

	w := do(r, http.MethodGet, "/api/categories", nil, "")
	var out struct {
		Count int `json:"count"`
	}
	decode(t, w, &out)
	if out.Count != len(catalog.Default().All()) {
		t.Errorf("Expected %d categories, got %d", len(catalog.Default().All()), out.Count)
	}

	w = do(r, http.MethodGet, "/api/contrast?color=%23ffffff", nil, "")
	var c struct {
		TextColor string `json:"text_color"`
	}
	decode(t, w, &c)
	if c.TextColor != "#1f2937" {
		t.Errorf("Expected dark text on white, got %s", c.TextColor)
	}

	if w := do(r, http.MethodGet, "/api/contrast", nil, ""); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without color, got %d", w.Code)
	}
}

func TestAssetLifecycle(t *testing.T) {
	_, r := newTestServer(t)

	body, ct := multipartBody(t, "files", map[string]string{"side.png": "image-bytes"})
	w := do(r, http.MethodPost, "/api/assets", body, ct)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/assets/side.png", nil, "")
	if w.Code != http.StatusOK || w.Body.String() != "image-bytes" {
		t.Errorf("Unexpected asset response %d %q", w.Code, w.Body.String())
	}

	if w := do(r, http.MethodDelete, "/api/assets/side.png", nil, ""); w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/assets/side.png", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
}

func TestBulkAndBatchExport(t *testing.T) {
	h, r := newTestServer(t)

	if w := do(r, http.MethodPost, "/api/export/batch", nil, ""); w.Code != http.StatusConflict {
		t.Errorf("Expected 409 without dataset, got %d", w.Code)
	}

	csv := "Title,Category\nFirst,Marketing\nSecond,Finance\n"
	body, ct := multipartBody(t, "file", map[string]string{"rows.csv": csv})
	w := do(r, http.MethodPost, "/api/bulk", body, ct)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := h.Session.Config().Title; got != "First" {
		t.Errorf("Expected first row applied, got %s", got)
	}

	w = do(r, http.MethodPost, "/api/bulk/navigate", []byte(`{"direction":"next"}`), "application/json")
	var nav struct {
		Index int `json:"index"`
		Total int `json:"total"`
	}
	decode(t, w, &nav)
	if nav.Index != 1 || nav.Total != 2 {
		t.Errorf("Expected index 1 of 2, got %d of %d", nav.Index, nav.Total)
	}
	if w := do(r, http.MethodPost, "/api/bulk/navigate", []byte(`{"direction":"up"}`), "application/json"); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad direction, got %d", w.Code)
	}

	w = do(r, http.MethodPost, "/api/export/batch", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "batch_covers.zip") {
		t.Errorf("Unexpected Content-Disposition %q", cd)
	}
	if got := w.Header().Get("X-Batch-Succeeded"); got != "2" {
		t.Errorf("Expected 2 succeeded, got %s", got)
	}
	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	if err != nil {
		t.Fatalf("Invalid zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(zr.File))
	}
	if h.Session.Config().Title != "Second" {
		t.Errorf("Expected live config untouched by batch, got %s", h.Session.Config().Title)
	}
}

func TestBulkEmptySheet(t *testing.T) {
	_, r := newTestServer(t)
	body, ct := multipartBody(t, "file", map[string]string{"rows.csv": "Title\n"})
	if w := do(r, http.MethodPost, "/api/bulk", body, ct); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", w.Code)
	}
}

func TestSingleExportAndPreview(t *testing.T) {
	_, r := newTestServer(t)

	w := do(r, http.MethodPost, "/api/export/single", []byte(`{"format":"png"}`), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, ".png") {
		t.Errorf("Unexpected Content-Disposition %q", cd)
	}

	if w := do(r, http.MethodPost, "/api/export/single", []byte(`{"format":"gif"}`), "application/json"); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for gif, got %d", w.Code)
	}

	w = do(r, http.MethodGet, "/api/preview", nil, "")
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Errorf("Unexpected preview response %d %s", w.Code, w.Header().Get("Content-Type"))
	}

	w = do(r, http.MethodGet, "/api/export/status", nil, "")
	var st struct {
		Exporting bool `json:"exporting"`
	}
	decode(t, w, &st)
	if st.Exporting {
		t.Error("Expected export flag cleared")
	}
}

func TestPresets(t *testing.T) {
	h, r := newTestServer(t)

	do(r, http.MethodPatch, "/api/config", []byte(`{"title":"Saved"}`), "application/json")
	if w := do(r, http.MethodPost, "/api/presets/Evening", nil, ""); w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	do(r, http.MethodPatch, "/api/config", []byte(`{"title":"Changed"}`), "application/json")

	if w := do(r, http.MethodPost, "/api/presets/Evening/load", nil, ""); w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if h.Session.Config().Title != "Saved" {
		t.Errorf("Expected preset applied, got %s", h.Session.Config().Title)
	}

	w := do(r, http.MethodGet, "/api/presets/Evening/export", nil, "")
	if !strings.HasPrefix(w.Body.String(), "# Evening") {
		t.Errorf("Unexpected export text %q", w.Body.String())
	}

	if w := do(r, http.MethodPost, "/api/presets/bad!name", nil, ""); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid name, got %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/api/presets/Evening", nil, ""); w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/presets/Evening/load", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
}

func TestQRHandler(t *testing.T) {
	_, r := newTestServer(t)
	w := do(r, http.MethodGet, "/api/qr?text=hello&size=128", nil, "")
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Errorf("Unexpected response %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	if w := do(r, http.MethodGet, "/api/qr", nil, ""); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without text, got %d", w.Code)
	}
}

func TestUploadLimit(t *testing.T) {
	h, _ := newTestServer(t)
	r := NewRouter(h, RouterOptions{MaxUploadBytes: 1 << 20})

	big, ct := multipartBody(t, "files", map[string]string{"huge.png": strings.Repeat("x", 5<<20)})
	w := do(r, http.MethodPost, "/api/assets", big, ct)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413 for oversized upload, got %d", w.Code)
	}
	if h.Assets.Len() != 0 {
		t.Errorf("Expected nothing registered, got %d assets", h.Assets.Len())
	}

	small, ct := multipartBody(t, "files", map[string]string{"small.png": "tiny"})
	if w := do(r, http.MethodPost, "/api/assets", small, ct); w.Code != http.StatusCreated {
		t.Errorf("Expected 201 under the limit, got %d", w.Code)
	}

	// Streamed bodies carry no length and are cut off while reading.
	patch := `{"title":"` + strings.Repeat("a", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/config", strings.NewReader(patch))
	req.ContentLength = -1
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413 for streamed oversized body, got %d", rec.Code)
	}
}
