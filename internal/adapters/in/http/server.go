// Package http is the inbound REST and WebSocket adapter. It translates
// authenticated requests into application commands and queries and maps
// domain errors onto status codes.
package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"waterdelivery/internal/auth"
	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/party"
	"waterdelivery/internal/notify"
	"waterdelivery/internal/pkg/errs"
)

const principalKey = "principal"

// Gateway event types that carry a payment outcome for a checkout session.
const (
	webhookSessionCompleted     = "checkout.session.completed"
	webhookAsyncPaymentSucceded = "checkout.session.async_payment_succeeded"
	webhookAsyncPaymentFailed   = "checkout.session.async_payment_failed"
	webhookSessionExpired       = "checkout.session.expired"
)

// CreateOrderHandler places a new order.
type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
}

// RespondToOrderHandler applies a supplier's accept or reject.
type RespondToOrderHandler interface {
	Handle(ctx context.Context, cmd commands.RespondToOrderCommand) error
}

// MarkDeliveredHandler completes an assigned order.
type MarkDeliveredHandler interface {
	Handle(ctx context.Context, cmd commands.MarkDeliveredCommand) error
}

// CancelOrderHandler withdraws an order on behalf of its owner.
type CancelOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CancelOrderCommand) error
}

// ConfirmPaymentHandler reconciles a payment outcome from the gateway.
type ConfirmPaymentHandler interface {
	Handle(ctx context.Context, cmd commands.ConfirmPaymentCommand) error
}

// SupplierOrdersHandler returns the pull worklist for a supplier.
type SupplierOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetSupplierOrdersQuery) ([]queries.OrderResponse, error)
}

// CustomerOrdersHandler returns a customer's order history.
type CustomerOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetCustomerOrdersQuery) ([]queries.OrderResponse, error)
}

// OrderStatsHandler returns operator dashboard counts.
type OrderStatsHandler interface {
	Handle(ctx context.Context, query queries.GetOrderStatsQuery) (queries.GetOrderStatsQueryResponse, error)
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler    CreateOrderHandler
	respondHandler        RespondToOrderHandler
	markDeliveredHandler  MarkDeliveredHandler
	cancelOrderHandler    CancelOrderHandler
	confirmPaymentHandler ConfirmPaymentHandler

	supplierOrdersHandler SupplierOrdersHandler
	customerOrdersHandler CustomerOrdersHandler
	orderStatsHandler     OrderStatsHandler

	registry  *notify.Registry
	jwtSecret string
	logger    *zap.Logger
}

// NewServer creates the inbound adapter with the required command and query
// handlers.
func NewServer(
	createOrderHandler CreateOrderHandler,
	respondHandler RespondToOrderHandler,
	markDeliveredHandler MarkDeliveredHandler,
	cancelOrderHandler CancelOrderHandler,
	confirmPaymentHandler ConfirmPaymentHandler,
	supplierOrdersHandler SupplierOrdersHandler,
	customerOrdersHandler CustomerOrdersHandler,
	orderStatsHandler OrderStatsHandler,
	registry *notify.Registry,
	jwtSecret string,
	logger *zap.Logger,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		respondHandler:        respondHandler,
		markDeliveredHandler:  markDeliveredHandler,
		cancelOrderHandler:    cancelOrderHandler,
		confirmPaymentHandler: confirmPaymentHandler,
		supplierOrdersHandler: supplierOrdersHandler,
		customerOrdersHandler: customerOrdersHandler,
		orderStatsHandler:     orderStatsHandler,
		registry:              registry,
		jwtSecret:             jwtSecret,
		logger:                logger.Named("http"),
	}
}

// RegisterRoutes wires all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/v1/payments/webhook", s.PaymentWebhook)

	api := e.Group("/api/v1", s.Authenticate)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetCustomerOrders)
	api.POST("/orders/:id/respond", s.RespondToOrder)
	api.POST("/orders/:id/deliver", s.MarkDelivered)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/supplier/orders", s.GetSupplierOrders)
	api.GET("/admin/stats", s.GetOrderStats)

	e.GET("/ws", s.ServeWS, s.Authenticate)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Authenticate resolves the caller's identity from a bearer token. WebSocket
// clients cannot set headers from the browser, so a token query parameter is
// accepted as a fallback.
func (s *Server) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var (
			principal *auth.Principal
			err       error
		)

		if header := ctx.Request().Header.Get(echo.HeaderAuthorization); header != "" {
			principal, err = auth.ParseBearer(header, s.jwtSecret)
		} else if token := ctx.QueryParam("token"); token != "" {
			principal, err = auth.ParseToken(token, s.jwtSecret)
		} else {
			err = auth.ErrMissingAuthorization
		}

		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: err.Error(),
			})
		}

		ctx.Set(principalKey, principal)

		return next(ctx)
	}
}

func principalFrom(ctx echo.Context) *auth.Principal {
	principal, _ := ctx.Get(principalKey).(*auth.Principal)
	return principal
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal := principalFrom(ctx)

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	location := kernel.OriginGeoPoint()
	if req.Lng != nil && req.Lat != nil {
		var err error
		location, err = kernel.NewGeoPoint(*req.Lng, *req.Lat)
		if err != nil {
			return badRequest(ctx, err.Error())
		}
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(
		orderID, principal.PartyID, req.Quantity, location, req.PaymentSessionID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// RespondToOrder handles POST /api/v1/orders/:id/respond.
func (s *Server) RespondToOrder(ctx echo.Context) error {
	principal := principalFrom(ctx)
	if principal.Role != party.RoleSupplier {
		return forbidden(ctx, "only suppliers may respond to orders")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var req RespondRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	action, err := commands.ResponseActionFromString(strings.ToLower(req.Action))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRespondToOrderCommand(orderID, principal.PartyID, action, req.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.respondHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkDelivered handles POST /api/v1/orders/:id/deliver.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	principal := principalFrom(ctx)
	if principal.Role != party.RoleSupplier {
		return forbidden(ctx, "only suppliers may deliver orders")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID, principal.PartyID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.markDeliveredHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	principal := principalFrom(ctx)

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, principal.PartyID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCustomerOrders handles GET /api/v1/orders.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	principal := principalFrom(ctx)

	query, err := queries.NewGetCustomerOrdersQuery(principal.PartyID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.customerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, viewsFromResponses(orders))
}

// GetSupplierOrders handles GET /api/v1/supplier/orders.
func (s *Server) GetSupplierOrders(ctx echo.Context) error {
	principal := principalFrom(ctx)
	if principal.Role != party.RoleSupplier {
		return forbidden(ctx, "only suppliers may query the worklist")
	}

	query, err := queries.NewGetSupplierOrdersQuery(principal.PartyID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.supplierOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, viewsFromResponses(orders))
}

// GetOrderStats handles GET /api/v1/admin/stats.
func (s *Server) GetOrderStats(ctx echo.Context) error {
	principal := principalFrom(ctx)
	if principal.Role != party.RoleOperator {
		return forbidden(ctx, "only operators may view stats")
	}

	stats, err := s.orderStatsHandler.Handle(ctx.Request().Context(), queries.NewGetOrderStatsQuery())
	if err != nil {
		return s.domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, OrderStatsResponse{
		TotalOrders: stats.TotalOrders,
		TodayOrders: stats.TodayOrders,
	})
}

// PaymentWebhook handles POST /api/v1/payments/webhook. The gateway retries
// on anything but 2xx, so every event that was parsed and handled to a
// business conclusion is acknowledged, including outcomes for sessions the
// store never saw.
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	var event WebhookEvent
	if err := ctx.Bind(&event); err != nil {
		return badRequest(ctx, "invalid event payload")
	}

	var succeeded bool
	switch event.Type {
	case webhookSessionCompleted, webhookAsyncPaymentSucceded:
		succeeded = true
	case webhookAsyncPaymentFailed, webhookSessionExpired:
		succeeded = false
	default:
		// Unhandled event kinds are acknowledged so the gateway stops
		// redelivering them.
		return ctx.JSON(http.StatusOK, WebhookAck{Received: true})
	}

	cmd, err := commands.NewConfirmPaymentCommand(
		event.Data.Object.ID, event.Data.Object.PaymentIntent, succeeded)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			s.logger.Warn("payment event for unknown session",
				zap.String("session_id", event.Data.Object.ID))
			return ctx.JSON(http.StatusOK, WebhookAck{Received: true})
		}

		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "failed to process payment event",
		})
	}

	return ctx.JSON(http.StatusOK, WebhookAck{Received: true})
}

func (s *Server) domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidTransition):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	default:
		s.logger.Error("request failed", zap.Error(err))
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func forbidden(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusForbidden, ErrorResponse{
		Code:    http.StatusForbidden,
		Message: message,
	})
}
