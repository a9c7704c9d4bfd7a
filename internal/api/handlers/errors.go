package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"facility-registry-api-server/internal/geo"
	"facility-registry-api-server/internal/service"
)

// respondError maps engine errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body.
func respondError(c *gin.Context, err error) {
	var dup *service.DuplicateNameError
	var validation *service.ValidationError
	var bounds *geo.OutOfBoundsError

	switch {
	case errors.Is(err, service.ErrFacilityNotFound),
		errors.Is(err, service.ErrBoxNotFound),
		errors.Is(err, service.ErrVariableNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, gin.H{"error": dup.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validation.Error()})
	case errors.As(err, &bounds):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": bounds.Error()})
	case errors.Is(err, service.ErrInvalidPassword), errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, service.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnconfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin access is not configured"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// parseObjectID reads the :id path param. Responds 400 and returns
// false when it is not a valid ObjectID.
func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}
