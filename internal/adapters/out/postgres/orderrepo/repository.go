package orderrepo

import (
	"context"
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// mutableColumns are the columns a transition or update may touch. Listing
// them explicitly makes GORM write cleared values too, which matters when a
// rejection resets supplier_id back to NULL.
var mutableColumns = []string{
	"supplier_id",
	"status",
	"payment_status",
	"rejection_reason",
	"payment_session_id",
	"payment_intent_id",
	"updated_at",
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order unconditionally. Reserved for mutations that
// are not lifecycle transitions; transitions go through UpdateGuarded.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select(mutableColumns).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateGuarded saves a state transition conditionally. The write carries the
// status and supplier assignment the transition was computed from in its
// WHERE clause, so a row that moved on since the read is simply not matched.
// Zero affected rows means another caller transitioned the order first.
func (r *GormOrderRepository) UpdateGuarded(
	ctx context.Context,
	aggregate *order.Order,
	guard ports.TransitionGuard,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	query := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(guard.Status))
	if guard.SupplierID != nil {
		query = query.Where("supplier_id = ?", guard.SupplierID.Bytes())
	} else {
		query = query.Where("supplier_id IS NULL")
	}

	result := query.Select(mutableColumns).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrStaleOrderState
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByPaymentSession retrieves the order carrying the given checkout session
// reference.
func (r *GormOrderRepository) GetByPaymentSession(ctx context.Context, sessionID string) (*order.Order, error) {
	if sessionID == "" {
		return nil, errs.NewValueIsRequiredError("sessionID")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "payment_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", sessionID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetCreatedAfter retrieves orders inserted strictly after the given instant,
// oldest first.
func (r *GormOrderRepository) GetCreatedAfter(ctx context.Context, after time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("created_at > ?", after).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}
