package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"facility-registry-api-server/internal/cache"
	"facility-registry-api-server/internal/dto"
	"facility-registry-api-server/internal/models"
	"facility-registry-api-server/internal/service"
	"facility-registry-api-server/internal/socket"
)

type FacilityHandler struct {
	Facilities service.FacilityService
	Cache      *cache.Cache
	Hub        *socket.Hub
}

// List returns facilities matching the query filters. The unfiltered
// listing is served through the cache when one is configured.
func (h *FacilityHandler) List(c *gin.Context) {
	var filters dto.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cacheable := filters.Type == "" && filters.Region == "" && filters.Search == "" && filters.ActiveOnly == nil
	if cacheable {
		var cached []models.GeoLocale
		if err := h.Cache.Get(c.Request.Context(), "facilities:list", &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	facilities, err := h.Facilities.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	if cacheable {
		h.Cache.Set(c.Request.Context(), "facilities:list", facilities)
	}
	c.JSON(http.StatusOK, facilities)
}

// GetDetails returns one facility with its boxes and nested variables.
func (h *FacilityHandler) GetDetails(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	details, err := h.Facilities.GetDetails(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// ListWithDetails returns every matching facility with its full payload.
func (h *FacilityHandler) ListWithDetails(c *gin.Context) {
	var filters dto.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	facilities, err := h.Facilities.ListWithDetails(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, facilities)
}

// Nearby returns facilities within radiusKm of the given point, sorted
// by distance.
func (h *FacilityHandler) Nearby(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required"})
		return
	}
	radiusKm := 10.0
	if raw := c.Query("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "radius must be a positive number"})
			return
		}
		radiusKm = parsed
	}

	var filters dto.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.Facilities.Nearby(c.Request.Context(), models.Coordinates{Lat: lat, Lng: lng}, radiusKm, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// Create registers a new facility.
func (h *FacilityHandler) Create(c *gin.Context) {
	var req dto.CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.Facilities.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.Cache.Flush(c.Request.Context())
	h.Hub.Broadcast("created", "facility", id.Hex())
	c.JSON(http.StatusCreated, gin.H{"id": id.Hex()})
}

// Update applies a partial patch to a facility.
func (h *FacilityHandler) Update(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Facilities.Update(c.Request.Context(), id, &req); err != nil {
		respondError(c, err)
		return
	}

	h.Cache.Flush(c.Request.Context())
	h.Hub.Broadcast("updated", "facility", id.Hex())
	c.JSON(http.StatusOK, gin.H{"id": id.Hex()})
}

// Delete removes a facility and everything attached to it.
func (h *FacilityHandler) Delete(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	if _, err := h.Facilities.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.Cache.Flush(c.Request.Context())
	h.Hub.Broadcast("deleted", "facility", id.Hex())
	c.JSON(http.StatusOK, gin.H{"id": id.Hex()})
}
