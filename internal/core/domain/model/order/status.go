package order

import (
	"waterdelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order. It implements a
// state machine with a closed transition table; any transition outside the
// table fails with an InvalidTransitionError and leaves the order untouched.
//
// State transitions:
//
//	Pending ──────> Paid            (payment confirmation)
//	Pending/Paid ─> Accepted        (supplier accept)
//	Pending/Paid ─> Rejected        (supplier reject; may re-enter matching)
//	Accepted ─────> Delivered       (assigned supplier)
//	any but Delivered ─> Cancelled  (owner, only while unpaid)
//
// Delivered and Cancelled are terminal. Rejected is terminal only with
// respect to the rejecting supplier: an unassigned rejected order stays
// reachable through the supplier pull query.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order.
	Pending

	// Paid indicates the payment for the order was confirmed while the order
	// was still awaiting a supplier response.
	Paid

	// Accepted indicates a supplier committed to fulfil the order.
	// An accepted order always has an assigned supplier.
	Accepted

	// Rejected indicates a supplier declined the order. The supplier
	// assignment is cleared so other suppliers can still pick it up.
	Rejected

	// Delivered indicates the assigned supplier completed the delivery.
	// This is a final state.
	Delivered

	// Cancelled indicates the owning user withdrew the order before
	// delivery and before payment. This is a final state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Paid:      "Paid",
		Accepted:  "Accepted",
		Rejected:  "Rejected",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Paid:      "Paid",
		Accepted:  "Accepted",
		Rejected:  "Rejected",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// Validate checks that the Status value is one of the declared states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// String returns the human-readable name of the status, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateRespond checks whether a supplier response (accept or reject) is
// allowed from the current status without performing the transition.
// Responses are only valid while the order is Pending or Paid.
func (s Status) ValidateRespond(trigger string) error {
	if s != Pending && s != Paid {
		return errs.NewInvalidTransitionError(s.String(), trigger)
	}
	return nil
}

// ValidateCanHaveSupplier validates the consistency between order status and
// supplier assignment.
//
// Rules:
//   - Accepted and Delivered orders must have an assigned supplier
//   - Rejected orders must not have an assigned supplier
//   - Other statuses may or may not carry an assignment (a cancelled order
//     keeps the supplier it had at cancellation time)
func (s Status) ValidateCanHaveSupplier(assigned bool) error {
	if !assigned && (s == Accepted || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			errs.NewValueIsRequiredError(s.String()+" order must have an assigned supplier"))
	}

	if assigned && s == Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status",
			errs.NewValueIsRequiredError("rejected order must not have an assigned supplier"))
	}

	return nil
}

// Accept transitions the status to Accepted.
//
// Valid from: Pending, Paid.
func (s Status) Accept() (Status, error) {
	if err := s.ValidateRespond("accept"); err != nil {
		return 0, err
	}

	return Accepted, nil
}

// Reject transitions the status to Rejected.
//
// Valid from: Pending, Paid.
func (s Status) Reject() (Status, error) {
	if err := s.ValidateRespond("reject"); err != nil {
		return 0, err
	}

	return Rejected, nil
}

// Deliver transitions the status to Delivered.
//
// Valid from: Accepted only. An order can never reach Delivered without
// having passed through Accepted.
func (s Status) Deliver() (Status, error) {
	if s != Accepted {
		return 0, errs.NewInvalidTransitionError(s.String(), "deliver")
	}

	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid from: any state except Delivered and Cancelled. The payment guard
// (paid orders cannot be cancelled) is enforced by the Order aggregate, not
// here, because it depends on the payment status, not the lifecycle status.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	if s == Delivered || s == Cancelled {
		return 0, errs.NewInvalidTransitionError(s.String(), "cancel")
	}

	return Cancelled, nil
}

// MarkPaid transitions the status to Paid on external payment confirmation.
//
// Valid from: Pending only. Reapplying a confirmation to an already Paid
// order is handled as an idempotent no-op one level up.
func (s Status) MarkPaid() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionError(s.String(), "confirm payment")
	}

	return Paid, nil
}
