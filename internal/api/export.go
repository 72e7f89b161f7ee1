package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/youruser/coverapp/internal/cover"
	"github.com/youruser/coverapp/internal/editor"
	"github.com/youruser/coverapp/internal/export"
	imagepkg "github.com/youruser/coverapp/internal/image"
)

func attachment(c *gin.Context, name, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, data)
}

// preview renders the live configuration as PNG.
func (h *Handler) preview(c *gin.Context) {
	scale := 1.0
	if v, err := strconv.ParseFloat(c.DefaultQuery("scale", "1"), 64); err == nil {
		scale = v
	}
	data, err := h.Renderer.Render(c.Request.Context(), h.Session.Config(), imagepkg.RenderOptions{
		Scale:  cover.ClampScale(scale),
		Format: imagepkg.FormatPNG,
	})
	if err != nil {
		abort(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

func (h *Handler) exportSingle(c *gin.Context) {
	var opts export.SingleOptions
	if c.Request.ContentLength > 0 {
		var req struct {
			Format     string `json:"format"`
			Background string `json:"background"`
			Quality    int    `json:"quality"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts = export.SingleOptions{Format: req.Format, Background: req.Background, Quality: req.Quality}
	}
	if _, err := imagepkg.ParseFormat(opts.Format); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := export.Single{Renderer: h.Renderer, Scale: h.Scale}.Run(c.Request.Context(), h.Session, h.Session.Config(), opts)
	if err != nil {
		abort(c, err)
		return
	}
	attachment(c, f.Name, f.ContentType, f.Data)
}

func (h *Handler) exportBatch(c *gin.Context) {
	view := h.Session.Dataset()
	if !view.Active {
		abort(c, editor.ErrNoDataset)
		return
	}
	res, err := export.Batch{Renderer: h.Renderer, Scale: h.Scale}.Run(c.Request.Context(), h.Session, h.Session.Config(), view.Items)
	if err != nil {
		abort(c, err)
		return
	}
	c.Header("X-Batch-Requested", strconv.Itoa(res.Requested))
	c.Header("X-Batch-Succeeded", strconv.Itoa(res.Succeeded))
	attachment(c, res.Name, "application/zip", res.Archive)
}

func (h *Handler) exportStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"exporting": h.Session.Exporting(), "status": h.Session.Status()})
}
