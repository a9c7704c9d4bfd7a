package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoLocale is a facility record: the root entity of the registry.
// Name is unique case-insensitively across active and inactive records.
type GeoLocale struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameLower   string             `bson:"nameLower" json:"-"` // lowercased copy for the uniqueness scan
	Type        string             `bson:"type" json:"type"`     // warehouse, port, airport, facility
	Region      string             `bson:"region" json:"region"` // north, south, east, west, central
	Coordinates Coordinates        `bson:"coordinates" json:"coordinates"`
	Description string             `bson:"description" json:"description"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
