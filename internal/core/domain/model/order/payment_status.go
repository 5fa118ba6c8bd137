package order

import (
	"waterdelivery/internal/pkg/errs"
)

// PaymentStatus tracks the payment lifecycle of an order independently of its
// delivery lifecycle. It gates cancellation: once paid, an order can no
// longer be cancelled by its owner.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentUnpaid is the initial payment status of every order.
	PaymentUnpaid

	// PaymentPaid indicates the external gateway confirmed the payment.
	PaymentPaid

	// PaymentFailed indicates the external gateway reported a failed payment.
	PaymentFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "unknown",
		PaymentUnpaid:  "unpaid",
		PaymentPaid:    "paid",
		PaymentFailed:  "failed",
	}
}

// Validate checks that the PaymentStatus value is one of the declared states.
func (p PaymentStatus) Validate() error {
	switch p {
	case PaymentUnpaid, PaymentPaid, PaymentFailed:
		return nil
	case PaymentUnknown:
		return errs.NewValueIsInvalidError("payment status")
	default:
		return errs.NewValueIsInvalidError("payment status")
	}
}

// String returns the wire-level name of the payment status ("unpaid",
// "paid", "failed"), or "unknown" for invalid values.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "unknown"
}
