package order_test

import (
	"errors"
	"testing"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	location, err := kernel.NewGeoPoint(77.59, 12.97)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), 3, location, "cs_test_123")
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	location, _ := kernel.NewGeoPoint(77.59, 12.97)
	customerID := kernel.NewUUID()

	t.Run("should create pending unpaid order", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, customerID, 5, location, "cs_abc")

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.CustomerID().IsEqual(customerID))
		assert.Equal(t, 5, o.Quantity())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentUnpaid, o.PaymentStatus())
		assert.Nil(t, o.SupplierID())
		assert.Equal(t, "cs_abc", o.PaymentSessionID())
		assert.False(t, o.CreatedAt().IsZero())
	})

	t.Run("should fail with non-positive quantity", func(t *testing.T) {
		for _, q := range []int{0, -1} {
			_, err := order.NewOrder(kernel.NewUUID(), customerID, q, location, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "quantity")
		}
	})

	t.Run("should fail with unconstructed location", func(t *testing.T) {
		var badLocation kernel.GeoPoint
		_, err := order.NewOrder(kernel.NewUUID(), customerID, 1, badLocation, "")
		require.Error(t, err)
	})

	t.Run("should fail with missing identifiers", func(t *testing.T) {
		var nilID kernel.UUID
		_, err := order.NewOrder(nilID, customerID, 1, location, "")
		require.Error(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), nilID, 1, location, "")
		require.Error(t, err)
	})
}

func TestRestoreOrder(t *testing.T) {
	location, _ := kernel.NewGeoPoint(77.59, 12.97)
	now := time.Now().UTC()

	t.Run("should restore assigned accepted order", func(t *testing.T) {
		supplierID := kernel.NewUUID()

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), &supplierID, 2, location,
			order.Accepted, order.PaymentPaid, "", "cs_1", "pi_1", now, now,
		)

		require.NoError(t, err)
		require.NotNil(t, o.SupplierID())
		assert.True(t, o.SupplierID().IsEqual(supplierID))
		assert.Equal(t, "pi_1", o.PaymentIntentID())
	})

	t.Run("should reject accepted order without supplier", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil, 2, location,
			order.Accepted, order.PaymentPaid, "", "", "", now, now,
		)
		require.Error(t, err)
	})

	t.Run("should reject rejected order with supplier", func(t *testing.T) {
		supplierID := kernel.NewUUID()
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), &supplierID, 2, location,
			order.Rejected, order.PaymentUnpaid, "busy", "", "", now, now,
		)
		require.Error(t, err)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil, 2, location,
			order.Unknown, order.PaymentUnpaid, "", "", "", now, now,
		)
		require.Error(t, err)
	})
}

func TestOrder_Accept(t *testing.T) {
	t.Run("should assign supplier and move to Accepted", func(t *testing.T) {
		o := newPendingOrder(t)
		supplierID := kernel.NewUUID()

		require.NoError(t, o.Accept(supplierID))

		assert.Equal(t, order.Accepted, o.Status())
		require.NotNil(t, o.SupplierID())
		assert.True(t, o.SupplierID().IsEqual(supplierID))
		assert.Empty(t, o.RejectionReason())
	})

	t.Run("should accept paid order", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.ConfirmPayment("pi_1"))

		require.NoError(t, o.Accept(kernel.NewUUID()))
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("second supplier is unauthorized once assigned", func(t *testing.T) {
		o := newPendingOrder(t)
		first := kernel.NewUUID()
		require.NoError(t, o.Accept(first))

		err := o.Accept(kernel.NewUUID())

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrUnauthorized))
		assert.Equal(t, order.Accepted, o.Status())
		assert.True(t, o.SupplierID().IsEqual(first))
	})

	t.Run("re-accept by same supplier hits the state guard", func(t *testing.T) {
		o := newPendingOrder(t)
		supplierID := kernel.NewUUID()
		require.NoError(t, o.Accept(supplierID))

		err := o.Accept(supplierID)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrInvalidTransition))
	})
}

func TestOrder_Reject(t *testing.T) {
	t.Run("should record reason and clear assignment", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Reject(kernel.NewUUID(), "out of stock"))

		assert.Equal(t, order.Rejected, o.Status())
		assert.Equal(t, "out of stock", o.RejectionReason())
		assert.Nil(t, o.SupplierID())
	})

	t.Run("should default the reason when empty", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Reject(kernel.NewUUID(), ""))

		assert.Equal(t, order.DefaultRejectionReason, o.RejectionReason())
	})

	t.Run("assigned order only rejectable by its supplier", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Accept(kernel.NewUUID()))

		err := o.Reject(kernel.NewUUID(), "nope")

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrUnauthorized))
	})
}

func TestOrder_Deliver(t *testing.T) {
	t.Run("assigned supplier delivers accepted order", func(t *testing.T) {
		o := newPendingOrder(t)
		supplierID := kernel.NewUUID()
		require.NoError(t, o.Accept(supplierID))

		require.NoError(t, o.Deliver(supplierID))

		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("unassigned order cannot be delivered", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.Deliver(kernel.NewUUID())

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrUnauthorized))
	})

	t.Run("other supplier cannot deliver", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Accept(kernel.NewUUID()))

		err := o.Deliver(kernel.NewUUID())

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrUnauthorized))
		assert.Equal(t, order.Accepted, o.Status())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("owner cancels unpaid accepted order", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Accept(kernel.NewUUID()))

		require.NoError(t, o.Cancel(o.CustomerID()))

		assert.Equal(t, order.Cancelled, o.Status())
		// Supplier assignment is kept so the cancellation can be pushed to them.
		assert.NotNil(t, o.SupplierID())
	})

	t.Run("non-owner cannot cancel", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.Cancel(kernel.NewUUID())

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrUnauthorized))
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("paid order cannot be cancelled regardless of status", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.ConfirmPayment("pi_1"))

		err := o.Cancel(o.CustomerID())

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrInvalidTransition))
		assert.Equal(t, order.Paid, o.Status())
	})

	t.Run("delivered order cannot be cancelled", func(t *testing.T) {
		o := newPendingOrder(t)
		supplierID := kernel.NewUUID()
		require.NoError(t, o.Accept(supplierID))
		require.NoError(t, o.Deliver(supplierID))

		err := o.Cancel(o.CustomerID())

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrInvalidTransition))
	})
}

func TestOrder_ConfirmPayment(t *testing.T) {
	t.Run("pending order becomes paid", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.ConfirmPayment("pi_42"))

		assert.Equal(t, order.Paid, o.Status())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
		assert.Equal(t, "pi_42", o.PaymentIntentID())
	})

	t.Run("redelivery is an idempotent no-op", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.ConfirmPayment("pi_42"))
		before := o.UpdatedAt()

		err := o.ConfirmPayment("pi_42")

		require.ErrorIs(t, err, order.ErrPaymentAlreadyConfirmed)
		assert.Equal(t, order.Paid, o.Status())
		assert.Equal(t, "pi_42", o.PaymentIntentID())
		assert.Equal(t, before, o.UpdatedAt())
	})

	t.Run("confirmation conflicts once accepted", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Accept(kernel.NewUUID()))

		err := o.ConfirmPayment("pi_42")

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrInvalidTransition))
		assert.Equal(t, order.PaymentUnpaid, o.PaymentStatus())
	})
}

func TestOrder_FailPayment(t *testing.T) {
	t.Run("marks payment failed without touching status", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.FailPayment())

		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentFailed, o.PaymentStatus())
	})

	t.Run("cannot fail a confirmed payment", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.ConfirmPayment("pi_1"))

		require.Error(t, o.FailPayment())
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("constructed order is valid", func(t *testing.T) {
		require.NoError(t, newPendingOrder(t).Validate())
	})

	t.Run("zero value and nil fail", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

		var nilOrder *order.Order
		require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
	})
}
