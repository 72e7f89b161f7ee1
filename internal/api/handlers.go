package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youruser/coverapp/internal/assets"
	"github.com/youruser/coverapp/internal/bulk"
	"github.com/youruser/coverapp/internal/catalog"
	"github.com/youruser/coverapp/internal/editor"
	"github.com/youruser/coverapp/internal/export"
	imagepkg "github.com/youruser/coverapp/internal/image"
	"github.com/youruser/coverapp/internal/preset"
)

// Handler serves the editor API for one session.
type Handler struct {
	Session  *editor.Session
	Assets   *assets.Registry
	Catalog  *catalog.Catalog
	Renderer export.Renderer
	Presets  *preset.Store
	Scale    float64
	started  time.Time
}

func NewHandler(s *editor.Session, reg *assets.Registry, cat *catalog.Catalog, r export.Renderer, p *preset.Store, scale float64) *Handler {
	return &Handler{
		Session:  s,
		Assets:   reg,
		Catalog:  cat,
		Renderer: r,
		Presets:  p,
		Scale:    scale,
		started:  time.Now(),
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, editor.ErrBusy), errors.Is(err, editor.ErrNoDataset):
		return http.StatusConflict
	case errors.Is(err, bulk.ErrEmptySheet):
		return http.StatusUnprocessableEntity
	case errors.Is(err, preset.ErrNotFound), errors.Is(err, assets.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, preset.ErrInvalidName):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func abort(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// badBody reports a request body that could not be read. Bodies cut off by
// the upload limit map to 413.
func badBody(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

func (h *Handler) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.Session.Config())
}

func (h *Handler) patchConfig(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		badBody(c, err)
		return
	}
	cfg, err := h.Session.Patch(raw)
	if err != nil {
		if errors.Is(err, editor.ErrBusy) {
			abort(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// reset drops configuration, dataset and uploaded assets.
func (h *Handler) reset(c *gin.Context) {
	if err := h.Session.Reset(); err != nil {
		abort(c, err)
		return
	}
	h.Assets.Reset()
	c.JSON(http.StatusOK, h.Session.Config())
}

func (h *Handler) getZoom(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"zoom": h.Session.Zoom()})
}

func (h *Handler) setZoom(c *gin.Context) {
	var req struct {
		Zoom float64 `json:"zoom" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"zoom": h.Session.SetZoom(req.Zoom)})
}

func (h *Handler) listCategories(c *gin.Context) {
	opt := catalog.FilterOptions{FreeWords: c.Query("q")}
	if g := c.QueryArray("group"); len(g) > 0 {
		opt.Groups = g
	}
	out := h.Catalog.Filter(opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "groups": h.Catalog.Groups(), "categories": out})
}

func (h *Handler) filterCategories(c *gin.Context) {
	var opt catalog.FilterOptions
	if err := c.ShouldBindJSON(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := h.Catalog.Filter(opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "categories": out})
}

func (h *Handler) contrast(c *gin.Context) {
	color := c.Query("color")
	if color == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "color is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"color": color, "text_color": catalog.ContrastTextColor(color)})
}

// qrHandler returns a PNG of a QR code for the "text" query param.
func (h *Handler) qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := 400
	if v, err := strconv.Atoi(c.DefaultQuery("size", "400")); err == nil {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
