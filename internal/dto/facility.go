package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"facility-registry-api-server/internal/models"
)

// CreateFacilityRequest is the payload for the admin create operation.
type CreateFacilityRequest struct {
	Name        string             `json:"name" binding:"required,min=3,max=200"`
	Type        string             `json:"type" binding:"required"`
	Region      string             `json:"region"`
	Coordinates models.Coordinates `json:"coordinates" binding:"required"`
	Description string             `json:"description"`
	IsActive    *bool              `json:"isActive"`
}

// UpdateFacilityRequest is a partial patch: nil fields are left untouched.
type UpdateFacilityRequest struct {
	Name        *string             `json:"name"`
	Type        *string             `json:"type"`
	Region      *string             `json:"region"`
	Coordinates *models.Coordinates `json:"coordinates"`
	Description *string             `json:"description"`
	IsActive    *bool               `json:"isActive"`
}

// ListFilters narrows read listings. Zero values mean "no restriction";
// ActiveOnly defaults to true when nil.
type ListFilters struct {
	Type       string `form:"type"`
	Region     string `form:"region"`
	Search     string `form:"search"`
	ActiveOnly *bool  `form:"activeOnly"`
}

// BoxDetails is a box carrying its assembled attribute forest.
type BoxDetails struct {
	ID        primitive.ObjectID     `json:"id"`
	Title     string                 `json:"title"`
	Icon      string                 `json:"icon"`
	Color     string                 `json:"color"`
	SortOrder int                    `json:"sortOrder"`
	Variables []*models.VariableNode `json:"variables"`
}

// FacilityDetails is a facility with its full attribute payload.
type FacilityDetails struct {
	models.GeoLocale `bson:",inline"`
	Boxes            []BoxDetails `json:"boxes"`
}

// NearbyFacility is a facility annotated with its distance from the
// search center, rounded to one decimal.
type NearbyFacility struct {
	models.GeoLocale  `bson:",inline"`
	DistanceKm        float64 `json:"distanceKm"`
	DistanceForHumans string  `json:"distance"`
}
