package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youruser/coverapp/internal/assets"
)

// uploadAssets registers every file of the multipart "files" field under
// its original filename.
func (h *Handler) uploadAssets(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		badBody(c, err)
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	out := make([]assets.Asset, 0, len(files))
	for _, fh := range files {
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
		a := h.Assets.Register(fh.Filename, data)
		slog.Info("Asset registered", "filename", a.Filename, "size", a.Size)
		out = append(out, a)
	}
	c.JSON(http.StatusCreated, gin.H{"count": len(out), "assets": out})
}

func (h *Handler) registerAssetURL(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.Assets.RegisterURL(c.Request.Context(), req.URL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) listAssets(c *gin.Context) {
	list := h.Assets.List()
	c.JSON(http.StatusOK, gin.H{"count": len(list), "assets": list})
}

func (h *Handler) getAsset(c *gin.Context) {
	a, ok := h.Assets.Resolve(c.Param("filename"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}
	c.Data(http.StatusOK, a.ContentType, a.Data)
}

func (h *Handler) deleteAsset(c *gin.Context) {
	if !h.Assets.Remove(c.Param("filename")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
