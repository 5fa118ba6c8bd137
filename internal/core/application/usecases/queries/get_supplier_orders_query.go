package queries

import (
	"errors"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/guard"
)

var ErrGetSupplierOrdersQueryIsNotConstructed = errors.New(
	"GetSupplierOrdersQuery must be created via NewGetSupplierOrdersQuery constructor",
)

// GetSupplierOrdersQuery retrieves the orders a supplier should see: paid
// orders that are still up for grabs plus every order already assigned to the
// caller. Offline suppliers use this on reconnect to catch up on work they
// missed while disconnected.
//
// Example:
//
//	query, err := NewGetSupplierOrdersQuery(supplierID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetSupplierOrdersQueryHandler(db)
//	orders, err := handler.Handle(ctx, query)
type GetSupplierOrdersQuery struct { //nolint:recvcheck //using for validation
	supplierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSupplierOrdersQuery creates a query for a supplier's order worklist.
func NewGetSupplierOrdersQuery(supplierID kernel.UUID) (GetSupplierOrdersQuery, error) {
	query := GetSupplierOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setSupplierID(supplierID); err != nil {
		return GetSupplierOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSupplierOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetSupplierOrdersQueryIsNotConstructed)
}

// SupplierID returns the identifier of the calling supplier.
func (q GetSupplierOrdersQuery) SupplierID() kernel.UUID {
	return q.supplierID
}

func (q *GetSupplierOrdersQuery) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}

	q.supplierID = supplierID
	return nil
}
