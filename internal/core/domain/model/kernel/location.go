package kernel

import (
	"errors"
	"fmt"
	"math"

	"chatorder/internal/pkg/errs"
	"chatorder/internal/pkg/guard"
)

const (
	// LocationMinLat is the minimum valid latitude in degrees.
	LocationMinLat = -90.0
	// LocationMaxLat is the maximum valid latitude in degrees.
	LocationMaxLat = 90.0
	// LocationMinLon is the minimum valid longitude in degrees.
	LocationMinLon = -180.0
	// LocationMaxLon is the maximum valid longitude in degrees.
	LocationMaxLon = 180.0

	earthRadiusKm = 6371.0
)

// ErrLocationIsNotConstructed is returned when a zero-value Location is used.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is a geographic point shared by customers (drop-off) and vendors
// (pickup). It backs the nearest-vendor assignment policy.
//
// The zero value is invalid; use NewLocation.
type Location struct { //nolint:recvcheck //using for validation
	lat float64
	lon float64

	guard guard.ConstructorGuard
}

// NewLocation creates a Location from latitude and longitude in degrees.
// Returns an error when either coordinate is outside its valid range.
func NewLocation(lat, lon float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLon(lon)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate returns ErrLocationIsNotConstructed for the zero value.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// Lon returns the longitude in degrees.
func (l Location) Lon() float64 {
	return l.lon
}

// DistanceKm returns the great-circle distance to another location in
// kilometers using the haversine formula.
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := l.Validate(); err != nil {
		return 0, err
	}
	if err := other.Validate(); err != nil {
		return 0, err
	}

	lat1 := l.lat * math.Pi / 180
	lat2 := other.lat * math.Pi / 180
	dLat := (other.lat - l.lat) * math.Pi / 180
	dLon := (other.lon - l.lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a)), nil
}

// String formats the location for logs, e.g. "Location(13.0930,80.1130)".
func (l Location) String() string {
	return fmt.Sprintf("Location(%.4f,%.4f)", l.lat, l.lon)
}

func (l *Location) setLat(lat float64) error {
	if lat < LocationMinLat || lat > LocationMaxLat || math.IsNaN(lat) {
		return errs.NewValueIsOutOfRangeError("latitude", lat, LocationMinLat, LocationMaxLat)
	}
	l.lat = lat
	return nil
}

func (l *Location) setLon(lon float64) error {
	if lon < LocationMinLon || lon > LocationMaxLon || math.IsNaN(lon) {
		return errs.NewValueIsOutOfRangeError("longitude", lon, LocationMinLon, LocationMaxLon)
	}
	l.lon = lon
	return nil
}
