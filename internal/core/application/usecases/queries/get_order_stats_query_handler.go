package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GetOrderStatsQueryHandler counts orders for the operator dashboard.
// "Today" is measured from UTC midnight.
type GetOrderStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatsQueryHandler creates a handler for order count queries.
func NewGetOrderStatsQueryHandler(db *gorm.DB) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{db: db}
}

// Handle executes the count query.
func (h GetOrderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatsQuery,
) (GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var resp GetOrderStatsQueryResponse
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COUNT(*) FILTER (WHERE created_at >= ?) AS today_orders
		FROM orders
	`, midnight).Row()

	if err := row.Scan(&resp.TotalOrders, &resp.TodayOrders); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	return resp, nil
}
