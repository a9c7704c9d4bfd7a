package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"facility-registry-api-server/internal/cache"
	"facility-registry-api-server/internal/dto"
	"facility-registry-api-server/internal/service"
	"facility-registry-api-server/internal/socket"
)

type VariableHandler struct {
	Variables service.VariableService
	Cache     *cache.Cache
	Hub       *socket.Hub
}

// ListByBox returns a box's variables in sort order, flat.
func (h *VariableHandler) ListByBox(c *gin.Context) {
	boxID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	variables, err := h.Variables.ListByBox(c.Request.Context(), boxID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, variables)
}

// GetByKey returns every variable with the given key across all boxes.
func (h *VariableHandler) GetByKey(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}
	variables, err := h.Variables.GetByKey(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, variables)
}

func (h *VariableHandler) GetByID(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	variable, err := h.Variables.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, variable)
}

func (h *VariableHandler) Create(c *gin.Context) {
	var req dto.CreateVariableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.Variables.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.Cache.Flush(c.Request.Context())
	h.Hub.Broadcast("created", "variable", id.Hex())
	c.JSON(http.StatusCreated, gin.H{"id": id.Hex()})
}

func (h *VariableHandler) Update(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateVariableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Variables.Update(c.Request.Context(), id, &req); err != nil {
		respondError(c, err)
		return
	}

	h.Cache.Flush(c.Request.Context())
	h.Hub.Broadcast("updated", "variable", id.Hex())
	c.JSON(http.StatusOK, gin.H{"id": id.Hex()})
}

// Delete removes a variable and its whole subtree.
func (h *VariableHandler) Delete(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	if _, err := h.Variables.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.Cache.Flush(c.Request.Context())
	h.Hub.Broadcast("deleted", "variable", id.Hex())
	c.JSON(http.StatusOK, gin.H{"id": id.Hex()})
}
