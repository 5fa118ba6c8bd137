package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// CreateOrderCommand represents a request to place a new water delivery order.
// The delivery location is optional at intake: an unconstructed point means
// the caller did not send coordinates and the owner's registered location
// substitutes during matching. The payment session reference may be empty
// when no checkout session was opened yet.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID, 3, location, "cs_abc123")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, dispatcher, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	customerID       kernel.UUID
	quantity         int
	location         kernel.GeoPoint
	paymentSessionID string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that both identifiers are valid and the quantity is positive.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	quantity int,
	location kernel.GeoPoint,
	paymentSessionID string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		location:         location,
		paymentSessionID: paymentSessionID,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setQuantity(quantity),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identifier of the ordering user.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Quantity returns the ordered quantity.
func (c CreateOrderCommand) Quantity() int {
	return c.quantity
}

// Location returns the delivery location as sent by the caller. It may be an
// unconstructed point when no coordinates were provided.
func (c CreateOrderCommand) Location() kernel.GeoPoint {
	return c.location
}

// PaymentSessionID returns the external checkout session reference, if any.
func (c CreateOrderCommand) PaymentSessionID() string {
	return c.paymentSessionID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
