package commands

import (
	"errors"

	"waterdelivery/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
	ErrPaymentSessionIsRequired = errors.New("payment session id is required")
)

// ConfirmPaymentCommand represents a payment outcome reported by the gateway
// webhook for a checkout session. Succeeded carries the gateway's verdict;
// the payment intent reference is only meaningful for successful payments.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentSessionID string
	paymentIntentID  string
	succeeded        bool

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command carrying a payment outcome.
func NewConfirmPaymentCommand(
	paymentSessionID string,
	paymentIntentID string,
	succeeded bool,
) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		paymentIntentID: paymentIntentID,
		succeeded:       succeeded,
		guard:           guard.NewConstructorGuard(),
	}

	if err := cmd.setPaymentSessionID(paymentSessionID); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// PaymentSessionID returns the checkout session reference keying the order.
func (c ConfirmPaymentCommand) PaymentSessionID() string {
	return c.paymentSessionID
}

// PaymentIntentID returns the gateway payment intent reference, if any.
func (c ConfirmPaymentCommand) PaymentIntentID() string {
	return c.paymentIntentID
}

// Succeeded reports whether the gateway confirmed the payment.
func (c ConfirmPaymentCommand) Succeeded() bool {
	return c.succeeded
}

func (c *ConfirmPaymentCommand) setPaymentSessionID(paymentSessionID string) error {
	if paymentSessionID == "" {
		return ErrPaymentSessionIsRequired
	}

	c.paymentSessionID = paymentSessionID
	return nil
}
