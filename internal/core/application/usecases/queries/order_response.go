// Package queries contains read operations in the CQRS architecture.
// Query handlers bypass the domain aggregates and read projections straight
// from the store with raw SQL, so listing endpoints never pay the aggregate
// reconstruction cost.
package queries

import (
	"database/sql"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderResponse is the read-side projection of an order row shared by the
// listing queries.
type OrderResponse struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	SupplierID      *kernel.UUID
	Quantity        int
	Location        kernel.GeoPoint
	Status          order.Status
	PaymentStatus   order.PaymentStatus
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// orderColumns is the select list every order listing query shares. Its
// order must match scanOrderRow.
const orderColumns = `
	id,
	customer_id,
	supplier_id,
	quantity,
	lon,
	lat,
	status,
	payment_status,
	rejection_reason,
	created_at,
	updated_at
`

// scanOrderRow reads one row of orderColumns into an OrderResponse.
func scanOrderRow(rows *sql.Rows) (OrderResponse, error) {
	var (
		resp       OrderResponse
		id         uuid.UUID
		customerID uuid.UUID
		supplierID uuid.NullUUID
		lon, lat   float64
		status     int
		payment    int
	)

	err := rows.Scan(
		&id,
		&customerID,
		&supplierID,
		&resp.Quantity,
		&lon,
		&lat,
		&status,
		&payment,
		&resp.RejectionReason,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return OrderResponse{}, err
	}
	if supplierID.Valid {
		sID, sErr := kernel.UUIDFromBytes(supplierID.UUID[:])
		if sErr != nil {
			return OrderResponse{}, sErr
		}
		resp.SupplierID = &sID
	}

	if resp.Location, err = kernel.NewGeoPoint(lon, lat); err != nil {
		return OrderResponse{}, err
	}

	resp.Status = order.Status(status)
	resp.PaymentStatus = order.PaymentStatus(payment)

	return resp, nil
}
