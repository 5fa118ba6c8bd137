package kernel

import (
	"errors"
	"fmt"
	"math"

	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

const (
	// LongitudeMin and LongitudeMax bound valid longitudes in degrees.
	LongitudeMin = -180.0
	LongitudeMax = 180.0
	// LatitudeMin and LatitudeMax bound valid latitudes in degrees.
	LatitudeMin = -90.0
	LatitudeMax = 90.0

	// EarthRadiusKm is the fixed Earth radius used for great-circle distance.
	EarthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when validating a zero-value
// GeoPoint. Points must be created with NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable WGS84 coordinate pair (longitude, latitude) in
// degrees. It represents delivery locations of orders and registered
// locations of suppliers. The zero value is invalid and fails Validate.
//
// Example:
//
//	p, err := kernel.NewGeoPoint(77.59, 12.97)
//	if err != nil {
//	    // out-of-range coordinates
//	}
//	km, _ := p.DistanceKm(other)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lon   float64
	lat   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint after validating both coordinates.
// Longitude must lie in [-180, 180] and latitude in [-90, 90]. NaN and
// infinities are rejected.
func NewGeoPoint(lon float64, lat float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLon(lon), p.setLat(lat)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// OriginGeoPoint returns the (0, 0) point used as the default location for
// parties that never registered one. It is a valid coordinate pair; whether
// it is meaningful is for the caller to decide.
func OriginGeoPoint() GeoPoint {
	p, _ := NewGeoPoint(0, 0)
	return p
}

// Validate checks that the point was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lon returns the longitude in degrees.
func (p GeoPoint) Lon() float64 {
	return p.lon
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%g,%g)", p.lon, p.lat)
}

// IsEqual compares two points for exact coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lon == other.lon && p.lat == other.lat, nil
}

// DistanceKm computes the great-circle (haversine) distance to another point
// in kilometers, using the fixed EarthRadiusKm. Distance is symmetric and
// zero for identical points. Both points must be properly constructed.
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	const degToRad = math.Pi / 180
	dLat := (other.lat - p.lat) * degToRad
	dLon := (other.lon - p.lon) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(p.lat*degToRad)*math.Cos(other.lat*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c, nil
}

func (p *GeoPoint) setLon(lon float64) error {
	if math.IsNaN(lon) || lon < LongitudeMin || lon > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", lon, LongitudeMin, LongitudeMax)
	}

	p.lon = lon
	return nil
}

func (p *GeoPoint) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}

	p.lat = lat
	return nil
}
