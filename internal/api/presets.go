package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youruser/coverapp/internal/preset"
)

func (h *Handler) listPresets(c *gin.Context) {
	list, err := h.Presets.List()
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "presets": list})
}

// savePreset snapshots the live configuration under :name.
func (h *Handler) savePreset(c *gin.Context) {
	p, err := h.Presets.Save(c.Param("name"), h.Session.Config())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) loadPreset(c *gin.Context) {
	p, err := h.Presets.Load(c.Param("name"))
	if err != nil {
		abort(c, err)
		return
	}
	if err := h.Session.Replace(p.Config); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Session.Config())
}

func (h *Handler) deletePreset(c *gin.Context) {
	if err := h.Presets.Delete(c.Param("name")); err != nil {
		abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) exportPreset(c *gin.Context) {
	p, err := h.Presets.Load(c.Param("name"))
	if err != nil {
		abort(c, err)
		return
	}
	text, err := preset.ExportText(p)
	if err != nil {
		abort(c, err)
		return
	}
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", []byte(text))
}

func (h *Handler) importPreset(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		badBody(c, err)
		return
	}
	p, err := h.Presets.Import(c.Param("name"), raw)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}
