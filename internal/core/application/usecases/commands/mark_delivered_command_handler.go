package commands

import (
	"context"
	"errors"

	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/notify"
	"waterdelivery/internal/pkg/errs"
)

// MarkDeliveredCommandHandler completes an order on behalf of its assigned
// supplier. Only the supplier currently assigned to an accepted order may
// report delivery.
type MarkDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
	hub        *notify.Hub
}

// NewMarkDeliveredCommandHandler creates a handler for delivery completion.
func NewMarkDeliveredCommandHandler(uowFactory OrderUoWFactory, hub *notify.Hub) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		hub:        hub,
	}
}

// Handle processes the delivery report. The owner receives an
// orderStatusUpdate event after the transition committed.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
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

	if err = aggregate.Deliver(cmd.SupplierID()); err != nil {
		return err
	}

	if err = orderRepo.UpdateGuarded(ctx, aggregate, snapshot); err != nil {
		if errors.Is(err, ports.ErrStaleOrderState) {
			return errs.NewInvalidTransitionErrorWithCause(
				snapshot.Status.String(), "deliver", err)
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.hub.Notify(aggregate.CustomerID(),
		notify.NewEvent(notify.EventOrderStatusUpdate, "Your order has been delivered", aggregate))

	return nil
}
