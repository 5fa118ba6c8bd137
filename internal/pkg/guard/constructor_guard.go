// Package guard implements a defensive construction pattern for value objects
// and entities: a struct embedding a ConstructorGuard can detect whether it
// was created through its designated constructor or left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. Embed it in a
// domain struct and set it with NewConstructorGuard inside the constructor;
// zero-value instances then fail Validate.
//
// Example:
//
//	type GeoPoint struct {
//	    lon, lat float64
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewGeoPoint(lon, lat float64) (GeoPoint, error) {
//	    // ... validate bounds ...
//	    return GeoPoint{lon: lon, lat: lat, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (p GeoPoint) Validate() error {
//	    return p.guard.Validate(ErrGeoPointIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks the enclosing object as
// constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed objects. For zero-value objects it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
