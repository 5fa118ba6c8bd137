package http

import (
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/notify"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the order intake payload. Coordinates are optional;
// without them the order is matched against the customer's registered
// location.
type CreateOrderRequest struct {
	Quantity         int      `json:"quantity"`
	Lng              *float64 `json:"lng"`
	Lat              *float64 `json:"lat"`
	PaymentSessionID string   `json:"paymentSessionId"`
}

// CreateOrderResponse returns the identifier of the accepted order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// RespondRequest carries a supplier's answer to an offered order.
type RespondRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

// OrderStatsResponse carries operator dashboard counts.
type OrderStatsResponse struct {
	TotalOrders int64 `json:"totalOrders"`
	TodayOrders int64 `json:"todayOrders"`
}

// WebhookEvent mirrors the payment gateway's event envelope. Only the event
// type, the checkout session id and the payment intent reference are read.
type WebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string `json:"id"`
			PaymentIntent string `json:"payment_intent"`
		} `json:"object"`
	} `json:"data"`
}

// WebhookAck tells the gateway the event was received and will not be
// redelivered.
type WebhookAck struct {
	Received bool `json:"received"`
}

// viewFromResponse projects a read-side row into the wire representation
// shared with push payloads.
func viewFromResponse(resp queries.OrderResponse) notify.OrderView {
	view := notify.OrderView{
		ID:              resp.ID.String(),
		CustomerID:      resp.CustomerID.String(),
		Quantity:        resp.Quantity,
		Longitude:       resp.Location.Lon(),
		Latitude:        resp.Location.Lat(),
		Status:          resp.Status.String(),
		PaymentStatus:   resp.PaymentStatus.String(),
		RejectionReason: resp.RejectionReason,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
	if resp.SupplierID != nil {
		view.SupplierID = resp.SupplierID.String()
	}
	return view
}

func viewsFromResponses(resps []queries.OrderResponse) []notify.OrderView {
	views := make([]notify.OrderView, len(resps))
	for i, resp := range resps {
		views[i] = viewFromResponse(resp)
	}
	return views
}
