package commands

import (
	"context"
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/services"
	"waterdelivery/internal/notify"
	"waterdelivery/internal/pkg/errs"

	"go.uber.org/zap"
)

// DispatchOrderCommandHandler offers an order to connected suppliers.
// It resolves the pickup point, walks the currently connected parties, keeps
// suppliers within the matching radius and pushes a newOrder event to each.
// Offline suppliers are skipped silently; they pull open orders on reconnect.
//
// The handler is shared by both producers of fresh orders: the intake path
// right after commit, and the order feed poll.
type DispatchOrderCommandHandler struct {
	uowFactory UoWFactory
	registry   *notify.Registry
	hub        *notify.Hub
	matcher    services.GeoMatcher
	radiusKm   float64
	logger     *zap.Logger
}

// NewDispatchOrderCommandHandler creates a handler for supplier dispatch.
func NewDispatchOrderCommandHandler(
	uowFactory UoWFactory,
	registry *notify.Registry,
	hub *notify.Hub,
	matcher services.GeoMatcher,
	radiusKm float64,
	logger *zap.Logger,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		hub:        hub,
		matcher:    matcher,
		radiusKm:   radiusKm,
		logger:     logger.Named("dispatch_order"),
	}
}

// Handle processes the dispatch command. Matching reads run inside one
// transaction; push delivery happens only after it completes, so a slow
// socket never holds a database transaction open.
func (h DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	partyRepo := uow.PartyRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	point := aggregate.Location()
	if atOrigin, originErr := point.IsEqual(kernel.OriginGeoPoint()); originErr == nil && atOrigin {
		// The order was placed without coordinates. Fall back to the
		// location the owner registered with.
		owner, ownerErr := partyRepo.Get(ctx, aggregate.CustomerID())
		if ownerErr == nil {
			point = owner.Location()
		}
	}

	connected := h.registry.ConnectedIDs()
	eligible := make(map[kernel.UUID]bool, len(connected))
	for _, partyID := range connected {
		candidate, getErr := partyRepo.Get(ctx, partyID)
		if errors.Is(getErr, errs.ErrObjectNotFound) {
			continue
		}
		if getErr != nil {
			return getErr
		}

		if candidate.IsSupplier() && h.matcher.IsEligible(candidate.Location(), point, h.radiusKm) {
			eligible[partyID] = true
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := notify.NewEvent(notify.EventNewOrder, "New order placed nearby", aggregate)
	delivered := h.hub.BroadcastIf(connected, func(id kernel.UUID) bool {
		return eligible[id]
	}, event)

	h.logger.Info("order dispatched",
		zap.String("order_id", cmd.OrderID().String()),
		zap.Int("eligible", len(eligible)),
		zap.Int("notified", delivered))

	return nil
}
