package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// FacilityBox is a titled, ordered group of attributes owned by exactly
// one GeoLocale. Boxes are destroyed together with their facility.
type FacilityBox struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GeoLocaleID primitive.ObjectID `bson:"geoLocaleId" json:"geoLocaleId"`
	Title       string             `bson:"title" json:"title"`
	Icon        string             `bson:"icon" json:"icon"`
	Color       string             `bson:"color" json:"color"`
	SortOrder   int                `bson:"sortOrder" json:"sortOrder"`
}
