package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youruser/coverapp/internal/bulk"
)

func (h *Handler) mapper() bulk.Mapper {
	return bulk.Mapper{Assets: h.Assets, Catalog: h.Catalog, Defaults: h.Session.Defaults()}
}

// uploadBulk ingests the multipart "file" field and makes it the session's
// dataset.
func (h *Handler) uploadBulk(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badBody(c, err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out := <-h.mapper().Start(c.Request.Context(), data, fh.Filename)
	if out.Err != nil {
		abort(c, out.Err)
		return
	}
	if err := h.Session.LoadDataset(out.Result); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":         len(out.Result.Items),
		"missing_count": out.Result.MissingCount,
		"missing":       out.Result.Missing,
		"index":         0,
		"config":        h.Session.Config(),
	})
}

func (h *Handler) getBulk(c *gin.Context) {
	c.JSON(http.StatusOK, h.Session.Dataset())
}

func (h *Handler) navigateBulk(c *gin.Context) {
	var req struct {
		Direction string `json:"direction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dir, ok := bulk.ParseDirection(req.Direction)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be next or prev"})
		return
	}
	cfg, idx, err := h.Session.Navigate(dir)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"index": idx, "total": h.Session.Dataset().Total, "config": cfg})
}
