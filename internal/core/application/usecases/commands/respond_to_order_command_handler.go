package commands

import (
	"context"
	"errors"

	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/notify"
	"waterdelivery/internal/pkg/errs"
)

// RespondToOrderCommandHandler applies a supplier's accept or reject response.
// The transition is computed against a snapshot of the row and written with a
// guarded update, so when two suppliers race for the same order exactly one
// response wins and the loser gets an invalid transition error.
type RespondToOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	hub        *notify.Hub
}

// NewRespondToOrderCommandHandler creates a handler for supplier responses.
func NewRespondToOrderCommandHandler(uowFactory OrderUoWFactory, hub *notify.Hub) RespondToOrderCommandHandler {
	return RespondToOrderCommandHandler{
		uowFactory: uowFactory,
		hub:        hub,
	}
}

// Handle processes the response command. The owner of the order is notified
// with an orderResponse event only after the transition committed.
func (h RespondToOrderCommandHandler) Handle(ctx context.Context, cmd RespondToOrderCommand) error {
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

	var message string
	switch cmd.Action() {
	case ResponseAccept:
		err = aggregate.Accept(cmd.SupplierID())
		message = "Your order was accepted"
	case ResponseReject:
		err = aggregate.Reject(cmd.SupplierID(), cmd.Reason())
		message = "Your order was rejected"
	default:
		return ErrResponseActionIsInvalid
	}
	if err != nil {
		return err
	}

	if err = orderRepo.UpdateGuarded(ctx, aggregate, snapshot); err != nil {
		if errors.Is(err, ports.ErrStaleOrderState) {
			return errs.NewInvalidTransitionErrorWithCause(
				snapshot.Status.String(), cmd.Action().String(), err)
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.hub.Notify(aggregate.CustomerID(), notify.NewEvent(notify.EventOrderResponse, message, aggregate))

	return nil
}
