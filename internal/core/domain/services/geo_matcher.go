// Package services contains stateless domain services that coordinate
// behavior across aggregates.
package services

import (
	"waterdelivery/internal/core/domain/model/kernel"
)

// DefaultDispatchRadiusKm is the matching radius shared by the order intake
// path and the change-feed path. Both must use the identical threshold.
const DefaultDispatchRadiusKm = 5.0

// GeoMatcher decides whether a supplier is eligible for an order based on
// great-circle distance between the supplier's registered location and the
// order's delivery point. Eligibility is boolean; there is no ranking and no
// tie-break.
type GeoMatcher struct{}

// NewGeoMatcher creates a GeoMatcher.
func NewGeoMatcher() GeoMatcher {
	return GeoMatcher{}
}

// IsEligible reports whether the two points lie within radiusKm of each
// other. Malformed geometry never panics or errors here: an unconstructed
// point on either side, or a negative radius, is simply a non-match.
func (GeoMatcher) IsEligible(partyPoint kernel.GeoPoint, orderPoint kernel.GeoPoint, radiusKm float64) bool {
	if radiusKm < 0 {
		return false
	}

	distance, err := partyPoint.DistanceKm(orderPoint)
	if err != nil {
		return false
	}

	return distance <= radiusKm
}
