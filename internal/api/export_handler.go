package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/personal-blog-api/internal/service"
)

// ExportHandler handles the guarded article backup endpoint
type ExportHandler struct {
	services *service.Services
	errors   errorResponder
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, errs errorResponder, log zerolog.Logger) *ExportHandler {
	l := log.With().Str("handler", "export").Logger()
	errs.log = l
	return &ExportHandler{
		services: services,
		errors:   errs,
		log:      l,
	}
}

// StreamExport handles GET /api/admin/export?format=ndjson|json
// Streams every article directly to the response
func (h *ExportHandler) StreamExport(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatNDJSON)

	var contentType, filename string
	switch format {
	case service.FormatNDJSON:
		contentType, filename = "application/x-ndjson", "articles.ndjson"
	case service.FormatJSON:
		contentType, filename = "application/json", "articles.json"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: ndjson, json"})
		return
	}

	h.log.Info().Str("format", format).Msg("Starting streaming export")

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Status(http.StatusOK)

	count, err := h.services.Articles.Export(c.Request.Context(), c.Writer, format)
	if err != nil {
		// Can't return error JSON after streaming has started
		h.log.Error().Err(err).Int("count", count).Msg("Export failed")
		return
	}

	h.log.Info().Int("count", count).Msg("Export completed")
}
