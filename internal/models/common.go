package models

// Coordinates is a GPS coordinate pair used by facilities and
// coordinate-typed variables.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Facility types accepted by the registry.
var FacilityTypes = []string{"warehouse", "port", "airport", "facility"}

// Regions accepted by the registry.
var Regions = []string{"north", "south", "east", "west", "central"}

// IsValidFacilityType reports whether t is one of the accepted facility types.
func IsValidFacilityType(t string) bool {
	for _, v := range FacilityTypes {
		if v == t {
			return true
		}
	}
	return false
}

// IsValidRegion reports whether r is one of the accepted regions.
func IsValidRegion(r string) bool {
	for _, v := range Regions {
		if v == r {
			return true
		}
	}
	return false
}
