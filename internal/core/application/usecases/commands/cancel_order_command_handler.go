package commands

import (
	"context"
	"errors"

	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/notify"
	"waterdelivery/internal/pkg/errs"
)

// CancelOrderCommandHandler withdraws an order on behalf of its owner.
// Paid and delivered orders cannot be cancelled. When the order had an
// assigned supplier, that supplier is told the work is gone.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	hub        *notify.Hub
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, hub *notify.Hub) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		hub:        hub,
	}
}

// Handle processes the cancellation. The assigned supplier, if any, receives
// an orderCancelled event after the transition committed.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	snapshot := ports.TransitionGuard{
		Status:     aggregate.Status(),
		SupplierID: aggregate.SupplierID(),
	}

	if err = aggregate.Cancel(cmd.CustomerID()); err != nil {
		return err
	}

	if err = orderRepo.UpdateGuarded(ctx, aggregate, snapshot); err != nil {
		if errors.Is(err, ports.ErrStaleOrderState) {
			return errs.NewInvalidTransitionErrorWithCause(
				snapshot.Status.String(), "cancel", err)
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if supplierID := aggregate.SupplierID(); supplierID != nil {
		h.hub.Notify(*supplierID,
			notify.NewEvent(notify.EventOrderCancelled, "Order was cancelled by the customer", aggregate))
	}

	return nil
}
