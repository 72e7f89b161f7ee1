package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterOptions configures the engine around the handlers.
type RouterOptions struct {
	AllowOrigins   []string
	MaxUploadBytes int64
}

// NewRouter builds the gin engine for the editor API.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.Default()
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
		r.Use(limitBody(opts.MaxUploadBytes))
	}
	if len(opts.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.AllowOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Disposition", "X-Batch-Requested", "X-Batch-Succeeded"},
			MaxAge:        12 * time.Hour,
		}))
	}
	RegisterRoutes(r, h)
	return r
}

// limitBody rejects request bodies larger than max. Declared lengths are
// checked up front; streamed bodies fail on read with *http.MaxBytesError.
func limitBody(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > max {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("request body exceeds %d bytes", max),
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/qr", h.qrHandler)

		api.GET("/config", h.getConfig)
		api.PATCH("/config", h.patchConfig)
		api.POST("/config/reset", h.reset)
		api.GET("/zoom", h.getZoom)
		api.PUT("/zoom", h.setZoom)

		api.GET("/categories", h.listCategories)
		api.POST("/categories/filter", h.filterCategories)
		api.GET("/contrast", h.contrast)

		api.GET("/assets", h.listAssets)
		api.POST("/assets", h.uploadAssets)
		api.POST("/assets/url", h.registerAssetURL)
		api.GET("/assets/:filename", h.getAsset)
		api.DELETE("/assets/:filename", h.deleteAsset)

		api.GET("/bulk", h.getBulk)
		api.POST("/bulk", h.uploadBulk)
		api.POST("/bulk/navigate", h.navigateBulk)

		api.GET("/preview", h.preview)
		api.POST("/export/single", h.exportSingle)
		api.POST("/export/batch", h.exportBatch)
		api.GET("/export/status", h.exportStatus)

		api.GET("/presets", h.listPresets)
		api.POST("/presets/:name", h.savePreset)
		api.POST("/presets/:name/load", h.loadPreset)
		api.POST("/presets/:name/import", h.importPreset)
		api.GET("/presets/:name/export", h.exportPreset)
		api.DELETE("/presets/:name", h.deletePreset)
	}
}
