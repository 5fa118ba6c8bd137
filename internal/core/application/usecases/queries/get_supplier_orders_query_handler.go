package queries

import (
	"context"

	"waterdelivery/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetSupplierOrdersQueryHandler reads a supplier's worklist from the store.
// The contract is: only paid orders, and either unassigned ones still in
// Pending or Paid status, or orders currently assigned to the caller. Other
// suppliers' assignments never leak into the result.
type GetSupplierOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetSupplierOrdersQueryHandler creates a handler for supplier worklist queries.
func NewGetSupplierOrdersQueryHandler(db *gorm.DB) GetSupplierOrdersQueryHandler {
	return GetSupplierOrdersQueryHandler{db: db}
}

// Handle executes the worklist query, newest orders first.
func (h GetSupplierOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetSupplierOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]OrderResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE payment_status = ?
		  AND (
		    (supplier_id IS NULL AND status IN (?, ?))
		    OR supplier_id = ?
		  )
		ORDER BY created_at DESC
	`, int(order.PaymentPaid), int(order.Pending), int(order.Paid), query.SupplierID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		resp, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
