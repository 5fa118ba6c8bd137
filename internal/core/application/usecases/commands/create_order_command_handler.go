package commands

import (
	"context"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"

	"go.uber.org/zap"
)

// DispatchTrigger starts supplier matching for a persisted order.
// Implemented by DispatchOrderCommandHandler.
type DispatchTrigger interface {
	Handle(ctx context.Context, cmd DispatchOrderCommand) error
}

// CreateOrderCommandHandler handles the business logic for order intake.
// New orders start in Pending status with an unpaid payment status. After the
// order is committed, matching suppliers are notified through the dispatch
// trigger; a dispatch failure never fails the intake because the order feed
// poll will pick the order up on its next tick.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher DispatchTrigger
	logger     *zap.Logger
}

// NewCreateOrderCommandHandler creates a handler for order intake.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher DispatchTrigger,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.Named("create_order"),
	}
}

// Handle processes the order intake command. The order is persisted inside a
// transaction; supplier dispatch runs only after a successful commit.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	location := cmd.Location()
	if location.Validate() != nil {
		location = kernel.OriginGeoPoint()
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.Quantity(),
		location,
		cmd.PaymentSessionID(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	dispatchCmd, err := NewDispatchOrderCommand(cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.dispatcher.Handle(ctx, dispatchCmd); err != nil {
		h.logger.Warn("dispatch after intake failed",
			zap.String("order_id", cmd.OrderID().String()),
			zap.Error(err))
	}

	return nil
}
