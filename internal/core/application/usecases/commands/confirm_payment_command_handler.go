package commands

import (
	"context"
	"errors"

	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/notify"

	"go.uber.org/zap"
)

// ConfirmPaymentCommandHandler reconciles payment outcomes reported by the
// gateway. Webhook delivery is at-least-once, so the handler is idempotent: a
// redelivered confirmation for an already paid order changes nothing and
// produces no second notification.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	hub        *notify.Hub
	logger     *zap.Logger
}

// NewConfirmPaymentCommandHandler creates a handler for payment reconciliation.
func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	hub *notify.Hub,
	logger *zap.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		hub:        hub,
		logger:     logger.Named("confirm_payment"),
	}
}

// Handle processes the payment outcome. On first successful confirmation the
// order moves Pending to Paid, the intent reference is recorded and the owner
// gets one orderStatusUpdate event. A failed outcome only marks the payment
// status; the lifecycle status is untouched.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
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

	aggregate, err := orderRepo.GetByPaymentSession(ctx, cmd.PaymentSessionID())
	if err != nil {
		return err
	}

	snapshot := ports.TransitionGuard{
		Status:     aggregate.Status(),
		SupplierID: aggregate.SupplierID(),
	}

	if !cmd.Succeeded() {
		if err = aggregate.FailPayment(); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		return uow.Commit(ctx)
	}

	if err = aggregate.ConfirmPayment(cmd.PaymentIntentID()); err != nil {
		if errors.Is(err, order.ErrPaymentAlreadyConfirmed) {
			h.logger.Debug("duplicate payment confirmation ignored",
				zap.String("payment_session_id", cmd.PaymentSessionID()))
			return nil
		}
		return err
	}

	if err = orderRepo.UpdateGuarded(ctx, aggregate, snapshot); err != nil {
		if errors.Is(err, ports.ErrStaleOrderState) {
			// A concurrent delivery of the same webhook confirmed first.
			// That write already notified the owner.
			h.logger.Debug("payment confirmation lost the race",
				zap.String("payment_session_id", cmd.PaymentSessionID()))
			return nil
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.hub.Notify(aggregate.CustomerID(),
		notify.NewEvent(notify.EventOrderStatusUpdate, "Payment confirmed for your order", aggregate))

	return nil
}
