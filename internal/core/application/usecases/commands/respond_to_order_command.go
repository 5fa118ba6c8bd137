package commands

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var (
	ErrRespondToOrderCommandIsNotConstructed = errors.New(
		"RespondToOrderCommand must be created via NewRespondToOrderCommand constructor",
	)
	ErrResponseActionIsInvalid = errors.New("response action must be accept or reject")
)

// ResponseAction is what a supplier does with an offered order.
type ResponseAction int

const (
	ResponseActionUnknown ResponseAction = iota
	ResponseAccept
	ResponseReject
)

// ResponseActionFromString parses a wire-level action value.
func ResponseActionFromString(s string) (ResponseAction, error) {
	switch s {
	case "accept":
		return ResponseAccept, nil
	case "reject":
		return ResponseReject, nil
	default:
		return ResponseActionUnknown, ErrResponseActionIsInvalid
	}
}

// Validate checks the action is one of the known values.
func (a ResponseAction) Validate() error {
	if a != ResponseAccept && a != ResponseReject {
		return ErrResponseActionIsInvalid
	}

	return nil
}

// String returns the wire-level representation of the action.
func (a ResponseAction) String() string {
	switch a {
	case ResponseAccept:
		return "accept"
	case ResponseReject:
		return "reject"
	default:
		return "unknown"
	}
}

// RespondToOrderCommand represents a supplier's answer to an offered order:
// either a commitment to fulfil it or a refusal with an optional reason.
// The reason is only meaningful for rejections and may be empty.
type RespondToOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	supplierID kernel.UUID
	action     ResponseAction
	reason     string

	guard guard.ConstructorGuard
}

// NewRespondToOrderCommand creates a command carrying a supplier's response.
func NewRespondToOrderCommand(
	orderID kernel.UUID,
	supplierID kernel.UUID,
	action ResponseAction,
	reason string,
) (RespondToOrderCommand, error) {
	cmd := RespondToOrderCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSupplierID(supplierID),
		cmd.setAction(action),
	); err != nil {
		return RespondToOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RespondToOrderCommand) Validate() error {
	return c.guard.Validate(ErrRespondToOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being answered.
func (c RespondToOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SupplierID returns the identifier of the responding supplier.
func (c RespondToOrderCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

// Action returns the supplier's response action.
func (c RespondToOrderCommand) Action() ResponseAction {
	return c.action
}

// Reason returns the rejection reason, if any was given.
func (c RespondToOrderCommand) Reason() string {
	return c.reason
}

func (c *RespondToOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RespondToOrderCommand) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	c.supplierID = supplierID
	return nil
}

func (c *RespondToOrderCommand) setAction(action ResponseAction) error {
	if err := action.Validate(); err != nil {
		return err
	}

	c.action = action
	return nil
}
