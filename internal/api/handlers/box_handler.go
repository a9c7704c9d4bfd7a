package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"facility-registry-api-server/internal/cache"
	"facility-registry-api-server/internal/dto"
	"facility-registry-api-server/internal/service"
	"facility-registry-api-server/internal/socket"
)

type BoxHandler struct {
	Boxes service.BoxService
	Cache *cache.Cache
	Hub   *socket.Hub
}

// ListByFacility returns a facility's boxes in sort order.
func (h *BoxHandler) ListByFacility(c *gin.Context) {
	facilityID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	boxes, err := h.Boxes.ListByFacility(c.Request.Context(), facilityID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boxes)
}

func (h *BoxHandler) GetByID(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	box, err := h.Boxes.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, box)
}

func (h *BoxHandler) Create(c *gin.Context) {
	var req dto.CreateBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.Boxes.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.Cache.Flush(c.Request.Context())
	h.Hub.Broadcast("created", "box", id.Hex())
	c.JSON(http.StatusCreated, gin.H{"id": id.Hex()})
}

func (h *BoxHandler) Update(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Boxes.Update(c.Request.Context(), id, &req); err != nil {
		respondError(c, err)
		return
	}

	h.Cache.Flush(c.Request.Context())
	h.Hub.Broadcast("updated", "box", id.Hex())
	c.JSON(http.StatusOK, gin.H{"id": id.Hex()})
}

// Delete removes a box and all of its variables.
func (h *BoxHandler) Delete(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	if _, err := h.Boxes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.Cache.Flush(c.Request.Context())
	h.Hub.Broadcast("deleted", "box", id.Hex())
	c.JSON(http.StatusOK, gin.H{"id": id.Hex()})
}
