package ports

import (
	"context"
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
)

// ErrStaleOrderState is returned by UpdateGuarded when the persisted row no
// longer matches the snapshot the transition was computed from, i.e. another
// caller transitioned the order first. The losing caller must treat this as
// a failed transition, never retry blindly.
var ErrStaleOrderState = errors.New("order state changed concurrently")

// TransitionGuard is the snapshot of the fields a state transition was
// predicated on. The store compares it against the current row inside a
// single conditional write, which makes check-then-update atomic.
type TransitionGuard struct {
	// Status the order had when it was read.
	Status order.Status

	// SupplierID the order had when it was read (nil = unassigned).
	SupplierID *kernel.UUID
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order unconditionally. Use only
	// for mutations that are not lifecycle transitions.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateGuarded persists a state transition conditionally: the write only
	// applies while the stored status and supplier assignment still equal the
	// guard snapshot. Returns ErrStaleOrderState when the row moved on.
	UpdateGuarded(ctx context.Context, aggregate *order.Order, guard TransitionGuard) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByPaymentSession retrieves the single order carrying the given
	// externally issued payment session reference.
	GetByPaymentSession(ctx context.Context, sessionID string) (*order.Order, error)

	// GetCreatedAfter retrieves orders inserted strictly after the given
	// instant, oldest first. Drives the change-feed poll.
	GetCreatedAfter(ctx context.Context, after time.Time) ([]*order.Order, error)
}
