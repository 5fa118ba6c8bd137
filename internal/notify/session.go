// Package notify implements the live push side of the workflow: a registry
// of connected parties and a hub that fans typed events out to them.
// Delivery is connected-state-only: parties without an active session learn
// of changes on their next pull, not via push.
package notify

import (
	"time"

	"waterdelivery/internal/core/domain/model/order"
)

// EventType names a push event on the wire.
type EventType string

const (
	// EventNewOrder is pushed to eligible connected suppliers on dispatch.
	EventNewOrder EventType = "newOrder"

	// EventOrderResponse is pushed to the owning user after a supplier
	// accepted or rejected their order.
	EventOrderResponse EventType = "orderResponse"

	// EventOrderCancelled is pushed to the assigned supplier when the owner
	// cancels an order.
	EventOrderCancelled EventType = "orderCancelled"

	// EventOrderStatusUpdate is pushed to the owning user on delivery and
	// payment confirmation.
	EventOrderStatusUpdate EventType = "orderStatusUpdate"
)

// Session is an opaque handle to one party's active push channel. Transport
// adapters implement it; Send must be safe for concurrent use.
type Session interface {
	Send(event Event) error
}

// Event is a named payload delivered over a session: the order's projected
// state plus a human-readable message.
type Event struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
	Order   OrderView `json:"order"`
}

// NewEvent builds an event from an order aggregate.
func NewEvent(eventType EventType, message string, o *order.Order) Event {
	return Event{
		Type:    eventType,
		Message: message,
		Order:   NewOrderView(o),
	}
}

// OrderView is the outward projection of an order carried in push payloads
// and HTTP responses.
type OrderView struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"userId"`
	SupplierID      string    `json:"supplierId,omitempty"`
	Quantity        int       `json:"quantity"`
	Longitude       float64   `json:"lng"`
	Latitude        float64   `json:"lat"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"paymentStatus"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewOrderView projects an order aggregate for the wire.
func NewOrderView(o *order.Order) OrderView {
	view := OrderView{
		ID:              o.ID().String(),
		CustomerID:      o.CustomerID().String(),
		Quantity:        o.Quantity(),
		Longitude:       o.Location().Lon(),
		Latitude:        o.Location().Lat(),
		Status:          o.Status().String(),
		PaymentStatus:   o.PaymentStatus().String(),
		RejectionReason: o.RejectionReason(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}

	if supplierID := o.SupplierID(); supplierID != nil {
		view.SupplierID = supplierID.String()
	}

	return view
}
