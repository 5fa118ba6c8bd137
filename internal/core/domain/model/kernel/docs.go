// Package kernel contains the shared value objects of the domain model:
// entity identifiers (UUID) and geographic points (GeoPoint). Both are
// immutable, constructor-guarded, and safe for concurrent use.
package kernel
