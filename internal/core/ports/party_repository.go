package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/party"
)

// PartyRepository defines the persistence contract for party aggregates.
// Registration itself happens outside the core; the core only reads parties
// for matching and notification routing.
type PartyRepository interface {
	// Add persists a new party aggregate.
	Add(ctx context.Context, aggregate *party.Party) error

	// Get retrieves a party by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*party.Party, error)

	// GetAllSuppliers retrieves every registered supplier.
	GetAllSuppliers(ctx context.Context) ([]*party.Party, error)
}
