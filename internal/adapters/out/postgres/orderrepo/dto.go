// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order domain aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The payment session reference is nullable and unique: several orders may
// exist without a checkout session, but a session can only ever belong to one
// order.
type OrderDTO struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID   `gorm:"type:uuid;index"`
	SupplierID       *uuid.UUID  `gorm:"type:uuid;index"`
	Quantity         int         `gorm:""`
	Location         GeoPointDTO `gorm:"embedded"`
	Status           int         `gorm:"index"`
	PaymentStatus    int         `gorm:""`
	RejectionReason  string      `gorm:""`
	PaymentSessionID *string     `gorm:"uniqueIndex"`
	PaymentIntentID  string      `gorm:""`
	CreatedAt        time.Time   `gorm:"index"`
	UpdatedAt        time.Time   `gorm:""`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// GeoPointDTO represents the embedded delivery coordinates within the order
// table.
type GeoPointDTO struct {
	Lon float64 `gorm:"column:lon"`
	Lat float64 `gorm:"column:lat"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var supplierID *uuid.UUID
	if id := aggregate.SupplierID(); id != nil {
		raw := id.Bytes()
		supplierID = &raw
	}

	var sessionID *string
	if s := aggregate.PaymentSessionID(); s != "" {
		sessionID = &s
	}

	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		SupplierID: supplierID,
		Quantity:   aggregate.Quantity(),
		Location: GeoPointDTO{
			Lon: aggregate.Location().Lon(),
			Lat: aggregate.Location().Lat(),
		},
		Status:           int(aggregate.Status()),
		PaymentStatus:    int(aggregate.PaymentStatus()),
		RejectionReason:  aggregate.RejectionReason(),
		PaymentSessionID: sessionID,
		PaymentIntentID:  aggregate.PaymentIntentID(),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate through RestoreOrder so invariants are
// re-checked on the way out of the store.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var supplierID *kernel.UUID
	if dto.SupplierID != nil {
		sID, supplierErr := kernel.UUIDFromBytes((*dto.SupplierID)[:])
		if supplierErr != nil {
			return nil, supplierErr
		}

		supplierID = &sID
	}

	location, err := kernel.NewGeoPoint(dto.Location.Lon, dto.Location.Lat)
	if err != nil {
		return nil, err
	}

	var sessionID string
	if dto.PaymentSessionID != nil {
		sessionID = *dto.PaymentSessionID
	}

	return order.RestoreOrder(
		id,
		customerID,
		supplierID,
		dto.Quantity,
		location,
		order.Status(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		dto.RejectionReason,
		sessionID,
		dto.PaymentIntentID,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
