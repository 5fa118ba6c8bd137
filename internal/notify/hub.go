package notify

import (
	"waterdelivery/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

// Hub routes typed events to parties through the Registry. Delivery is
// best-effort: a party without an active session is skipped, and a failing
// send is logged but never propagated to the state transition that
// triggered it.
type Hub struct {
	registry *Registry
	logger   *zap.Logger
}

// NewHub creates a hub over the given registry.
func NewHub(registry *Registry, logger *zap.Logger) *Hub {
	return &Hub{
		registry: registry,
		logger:   logger.Named("notify"),
	}
}

// Notify sends an event to a single party. Returns true when the event was
// handed to an active session, false when the party is offline or the send
// failed. Callers may only use the result for logging and metrics.
func (h *Hub) Notify(partyID kernel.UUID, event Event) bool {
	session, ok := h.registry.Lookup(partyID)
	if !ok {
		h.logger.Debug("dropping event for offline party",
			zap.String("party_id", partyID.String()),
			zap.String("event", string(event.Type)))
		return false
	}

	if err := session.Send(event); err != nil {
		h.logger.Warn("event delivery failed",
			zap.String("party_id", partyID.String()),
			zap.String("event", string(event.Type)),
			zap.Error(err))
		return false
	}

	return true
}

// BroadcastIf notifies every candidate for which the predicate holds.
// Candidates are evaluated and delivered independently: one failing delivery
// never blocks the rest. Returns the number of successful deliveries.
func (h *Hub) BroadcastIf(
	candidates []kernel.UUID,
	predicate func(kernel.UUID) bool,
	event Event,
) int {
	delivered := 0
	for _, partyID := range candidates {
		if !predicate(partyID) {
			continue
		}
		if h.Notify(partyID, event) {
			delivered++
		}
	}
	return delivered
}
