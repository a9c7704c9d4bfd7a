package geo

import (
	"errors"
	"math"
	"strings"
	"testing"

	"facility-registry-api-server/internal/models"
)

var testBounds = Bounds{
	Lat: Range{Min: 17.5, Max: 18.6},
	Lng: Range{Min: -67.5, Max: -65.0},
}

func TestIsWithinBounds(t *testing.T) {
	cases := []struct {
		name  string
		coord models.Coordinates
		want  bool
	}{
		{"inside", models.Coordinates{Lat: 18.4, Lng: -66.0}, true},
		{"lat min boundary", models.Coordinates{Lat: 17.5, Lng: -66.0}, true},
		{"lat max boundary", models.Coordinates{Lat: 18.6, Lng: -66.0}, true},
		{"lng min boundary", models.Coordinates{Lat: 18.0, Lng: -67.5}, true},
		{"lng max boundary", models.Coordinates{Lat: 18.0, Lng: -65.0}, true},
		{"lat too low", models.Coordinates{Lat: 17.49, Lng: -66.0}, false},
		{"lat too high", models.Coordinates{Lat: 18.61, Lng: -66.0}, false},
		{"lng too west", models.Coordinates{Lat: 18.0, Lng: -67.6}, false},
		{"lng too east", models.Coordinates{Lat: 18.0, Lng: -64.9}, false},
		{"way off", models.Coordinates{Lat: 99, Lng: 0}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsWithinBounds(tc.coord, testBounds); got != tc.want {
				t.Errorf("IsWithinBounds(%v) = %v, want %v", tc.coord, got, tc.want)
			}
		})
	}
}

func TestValidate_InsideReturnsNil(t *testing.T) {
	if err := Validate(models.Coordinates{Lat: 18.2, Lng: -66.5}, testBounds, "Facility coordinates"); err != nil {
		t.Fatalf("Validate should pass: %v", err)
	}
}

func TestValidate_OutsideNamesFieldAndRange(t *testing.T) {
	err := Validate(models.Coordinates{Lat: 19.0, Lng: -66.0}, testBounds, "Facility coordinates")
	if err == nil {
		t.Fatal("Validate should fail for out-of-bounds coordinates")
	}

	var oob *OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("expected *OutOfBoundsError, got %T", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "Facility coordinates") {
		t.Errorf("error should name the field: %s", msg)
	}
	if !strings.Contains(msg, "17.5") || !strings.Contains(msg, "18.6") {
		t.Errorf("error should include the valid latitude range: %s", msg)
	}
}

func TestDistanceKm_IdenticalPointsIsZero(t *testing.T) {
	p := models.Coordinates{Lat: 18.4, Lng: -66.0}
	if d := DistanceKm(p, p); d != 0 {
		t.Errorf("DistanceKm(p, p) = %v, want 0", d)
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	a := models.Coordinates{Lat: 18.4, Lng: -66.0}
	b := models.Coordinates{Lat: 18.3, Lng: -66.1}

	if d1, d2 := DistanceKm(a, b), DistanceKm(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestDistanceKm_MonotonicAlongMeridian(t *testing.T) {
	origin := models.Coordinates{Lat: 18.0, Lng: -66.0}
	near := models.Coordinates{Lat: 18.1, Lng: -66.0}
	far := models.Coordinates{Lat: 18.3, Lng: -66.0}

	if DistanceKm(origin, near) >= DistanceKm(origin, far) {
		t.Error("farther point on the same meridian should have greater distance")
	}
}

func TestDistanceKm_OneDegreeLatitude(t *testing.T) {
	a := models.Coordinates{Lat: 18.0, Lng: -66.0}
	b := models.Coordinates{Lat: 19.0, Lng: -66.0}

	// One degree of latitude is roughly 111 km.
	d := DistanceKm(a, b)
	if d < 110 || d > 112 {
		t.Errorf("DistanceKm over one degree latitude = %v, want ~111", d)
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(0.5); got != "500m" {
		t.Errorf("FormatDistance(0.5) = %q, want 500m", got)
	}
	if got := FormatDistance(2.34); got != "2.3km" {
		t.Errorf("FormatDistance(2.34) = %q, want 2.3km", got)
	}
}
