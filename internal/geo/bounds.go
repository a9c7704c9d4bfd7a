package geo

import (
	"fmt"
	"math"

	"facility-registry-api-server/internal/models"
)

// Range is an inclusive interval on one axis.
type Range struct {
	Min float64
	Max float64
}

// Bounds is the rectangular region coordinates are validated against.
// The deployment rectangle comes from configuration, not from this package.
type Bounds struct {
	Lat Range
	Lng Range
}

// OutOfBoundsError names the offending coordinates and the valid rectangle
// so a caller can self-correct.
type OutOfBoundsError struct {
	Field  string
	Coord  models.Coordinates
	Bounds Bounds
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"%s (%v, %v) are outside the configured bounds. Valid range: Latitude %v to %v, Longitude %v to %v",
		e.Field, e.Coord.Lat, e.Coord.Lng,
		e.Bounds.Lat.Min, e.Bounds.Lat.Max,
		e.Bounds.Lng.Min, e.Bounds.Lng.Max,
	)
}

// IsWithinBounds reports whether coord falls inside bounds.
// Both ends of both axes are inclusive.
func IsWithinBounds(coord models.Coordinates, bounds Bounds) bool {
	return coord.Lat >= bounds.Lat.Min && coord.Lat <= bounds.Lat.Max &&
		coord.Lng >= bounds.Lng.Min && coord.Lng <= bounds.Lng.Max
}

// Validate checks coord against bounds and returns a descriptive
// OutOfBoundsError on failure. field names the input being validated.
func Validate(coord models.Coordinates, bounds Bounds, field string) error {
	if field == "" {
		field = "Coordinates"
	}
	if !IsWithinBounds(coord, bounds) {
		return &OutOfBoundsError{Field: field, Coord: coord, Bounds: bounds}
	}
	return nil
}

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// DistanceKm returns the great-circle distance between a and b in
// kilometers using the haversine formula.
func DistanceKm(a, b models.Coordinates) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// FormatDistance renders a distance for display: meters below 1 km,
// otherwise kilometers with one decimal.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1fkm", km)
}
