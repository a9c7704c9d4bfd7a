package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"facility-registry-api-server/internal/cache"
	"facility-registry-api-server/internal/dto"
	"facility-registry-api-server/internal/service"
	"facility-registry-api-server/internal/socket"
)

type BulkHandler struct {
	Bulk  service.BulkService
	Cache *cache.Cache
	Hub   *socket.Hub
}

// Import runs a bulk reconciliation. The response is always 200 with a
// per-row partition; individual row failures never fail the request.
func (h *BulkHandler) Import(c *gin.Context) {
	var req dto.BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Bulk.Import(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if !req.DryRun && result.Summary.Successful > 0 {
		h.Cache.Flush(c.Request.Context())
		h.Hub.Broadcast("bulk-imported", "facility", "")
	}
	c.JSON(http.StatusOK, result)
}
