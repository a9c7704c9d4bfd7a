package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"facility-registry-api-server/internal/dto"
	"facility-registry-api-server/internal/export"
	"facility-registry-api-server/internal/service"
)

type ReportHandler struct {
	Reports  service.ReportService
	Exporter *export.Exporter
}

// Generate builds the report named by :type. With ?export=true the
// report is also uploaded to S3 and the object URL is returned in the
// X-Export-URL header.
func (h *ReportHandler) Generate(c *gin.Context) {
	var filters dto.ReportFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reportType := c.Param("type")
	var report interface{}
	var err error
	switch reportType {
	case "summary":
		report, err = h.Reports.Summary(c.Request.Context(), filters)
	case "detailed":
		report, err = h.Reports.Detailed(c.Request.Context(), filters)
	case "capacity":
		report, err = h.Reports.Capacity(c.Request.Context(), filters)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown report type, expected summary, detailed or capacity"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("export") == "true" {
		if h.Exporter == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Report export is not configured"})
			return
		}
		url, err := h.Exporter.UploadReport(c.Request.Context(), reportType, report)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export report"})
			return
		}
		c.Header("X-Export-URL", url)
	}

	c.JSON(http.StatusOK, report)
}
