package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sefcontact/engine/internal/application/export"
)

// ExportHandler handles dataset export HTTP requests
type ExportHandler struct {
	BaseHandler
	exportService *export.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *export.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// RegisterRoutes registers export routes on the given group
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/exports/:dataset", h.Export)
}

// Export returns a dataset by name. Sensitive fields are masked unless the
// masked query parameter is explicitly set to false.
func (h *ExportHandler) Export(c *gin.Context) {
	masked := true
	if raw := c.Query("masked"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.BadRequest(c, "Invalid masked parameter, expected true or false")
			return
		}
		masked = parsed
	}

	dataset, err := h.exportService.Export(c.Request.Context(), c.Param("dataset"), masked)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dataset)
}
