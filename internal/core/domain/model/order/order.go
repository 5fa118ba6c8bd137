package order

import (
	"errors"
	"fmt"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
)

// DefaultRejectionReason is recorded when a supplier rejects an order
// without giving a reason.
const DefaultRejectionReason = "No reason provided"

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrPaymentAlreadyConfirmed signals an idempotent redelivery of a payment
	// confirmation: the order is already paid and nothing changed.
	ErrPaymentAlreadyConfirmed = errors.New("payment is already confirmed for this order")
)

// Order is the aggregate root of the delivery workflow. It is created by the
// order intake in Pending/unpaid state and afterwards mutated only through
// its transition methods, which enforce the role guard (authorization) before
// the state guard.
//
// Invariants:
//   - Quantity is positive
//   - Delivery location is a constructed GeoPoint
//   - Accepted and Delivered orders have an assigned supplier
//   - Rejected orders have no assigned supplier
//   - A paid order can no longer be cancelled
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID

	// supplierID is the assigned supplier (nil while unassigned).
	supplierID *kernel.UUID

	quantity int
	location kernel.GeoPoint

	status        Status
	paymentStatus PaymentStatus

	// rejectionReason is only meaningful while status is Rejected.
	rejectionReason string

	// paymentSessionID is the externally issued checkout session reference,
	// unique when present. paymentIntentID is recorded from the gateway on
	// confirmation.
	paymentSessionID string
	paymentIntentID  string

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a freshly placed order in Pending/unpaid state.
// paymentSessionID may be empty when the intake did not open a checkout
// session yet.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	quantity int,
	location kernel.GeoPoint,
	paymentSessionID string,
) (*Order, error) {
	now := time.Now().UTC()

	o := &Order{
		status:           Pending,
		paymentStatus:    PaymentUnpaid,
		paymentSessionID: paymentSessionID,
		createdAt:        now,
		updatedAt:        now,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setQuantity(quantity),
		o.setLocation(location),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. All invariants are
// re-checked so corrupt rows surface as errors instead of invalid aggregates.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	supplierID *kernel.UUID,
	quantity int,
	location kernel.GeoPoint,
	status Status,
	paymentStatus PaymentStatus,
	rejectionReason string,
	paymentSessionID string,
	paymentIntentID string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:           status,
		paymentStatus:    paymentStatus,
		rejectionReason:  rejectionReason,
		paymentSessionID: paymentSessionID,
		paymentIntentID:  paymentIntentID,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setQuantity(quantity),
		o.setLocation(location),
		status.Validate(),
		paymentStatus.Validate(),
		status.ValidateCanHaveSupplier(supplierID != nil),
	); err != nil {
		return nil, err
	}

	if supplierID != nil {
		if err := supplierID.Validate(); err != nil {
			return nil, err
		}
		sID := *supplierID
		o.supplierID = &sID
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the owning user.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// SupplierID returns the assigned supplier's identifier, or nil while the
// order is unassigned.
func (o *Order) SupplierID() *kernel.UUID {
	return o.supplierID
}

// Quantity returns the ordered quantity.
func (o *Order) Quantity() int {
	return o.quantity
}

// Location returns the delivery location.
func (o *Order) Location() kernel.GeoPoint {
	return o.location
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// RejectionReason returns the reason recorded on rejection, if any.
func (o *Order) RejectionReason() string {
	return o.rejectionReason
}

// PaymentSessionID returns the external checkout session reference, if any.
func (o *Order) PaymentSessionID() string {
	return o.paymentSessionID
}

// PaymentIntentID returns the gateway payment intent reference, if any.
func (o *Order) PaymentIntentID() string {
	return o.paymentIntentID
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Accept records a supplier's commitment to fulfil the order.
//
// Authorization guard: the order must be unassigned or already assigned to
// this supplier. State guard: status must be Pending or Paid. On success the
// order is Accepted with the supplier assigned and any previous rejection
// reason cleared.
func (o *Order) Accept(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	if err := o.authorizeSupplierResponse(supplierID, "accept order "+o.id.String()); err != nil {
		return err
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.supplierID = &supplierID
	o.rejectionReason = ""
	o.touch()
	return nil
}

// Reject records a supplier's refusal of the order.
//
// Same guards as Accept. On success the order is Rejected, the reason is
// recorded (DefaultRejectionReason when empty), and the supplier assignment
// is cleared so the order can re-enter matching for other suppliers.
func (o *Order) Reject(supplierID kernel.UUID, reason string) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	if err := o.authorizeSupplierResponse(supplierID, "reject order "+o.id.String()); err != nil {
		return err
	}

	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	if reason == "" {
		reason = DefaultRejectionReason
	}

	o.status = newStatus
	o.rejectionReason = reason
	o.supplierID = nil
	o.touch()
	return nil
}

// Deliver marks the order as delivered by its assigned supplier.
//
// Authorization guard: only the assigned supplier may deliver. State guard:
// status must be Accepted.
func (o *Order) Deliver(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	if o.supplierID == nil || !o.supplierID.IsEqual(supplierID) {
		return errs.NewUnauthorizedError(supplierID.String(), "deliver order "+o.id.String())
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// Cancel withdraws the order on behalf of its owner.
//
// Authorization guard: only the owning user may cancel. State guards: a
// delivered order cannot be cancelled, and neither can a paid one regardless
// of its lifecycle status.
func (o *Order) Cancel(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	if !o.customerID.IsEqual(customerID) {
		return errs.NewUnauthorizedError(customerID.String(), "cancel order "+o.id.String())
	}

	if o.paymentStatus == PaymentPaid {
		return errs.NewInvalidTransitionErrorWithCause(o.status.String(), "cancel",
			fmt.Errorf("order %s is already paid", o.id))
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// ConfirmPayment applies an external payment confirmation.
//
// Returns ErrPaymentAlreadyConfirmed when the order is already paid, so
// at-least-once webhook delivery stays idempotent. Otherwise the order must
// be Pending; it becomes Paid/paid with the gateway intent reference
// recorded.
func (o *Order) ConfirmPayment(paymentIntentID string) error {
	if o.paymentStatus == PaymentPaid {
		return ErrPaymentAlreadyConfirmed
	}

	newStatus, err := o.status.MarkPaid()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.paymentStatus = PaymentPaid
	o.paymentIntentID = paymentIntentID
	o.touch()
	return nil
}

// FailPayment records a failed payment outcome from the gateway. The
// lifecycle status is left untouched; only the payment status changes.
func (o *Order) FailPayment() error {
	if o.paymentStatus == PaymentPaid {
		return errs.NewInvalidTransitionError(o.status.String(), "fail payment")
	}

	o.paymentStatus = PaymentFailed
	o.touch()
	return nil
}

// authorizeSupplierResponse enforces the role guard for accept and reject:
// the order must be unassigned or assigned to the responding supplier.
// Checked before any state guard.
func (o *Order) authorizeSupplierResponse(supplierID kernel.UUID, action string) error {
	if o.supplierID != nil && !o.supplierID.IsEqual(supplierID) {
		return errs.NewUnauthorizedError(supplierID.String(), action)
	}
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}
