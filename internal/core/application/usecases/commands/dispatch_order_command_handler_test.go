package commands_test

import (
	"testing"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/domain/model/party"
	"waterdelivery/internal/core/domain/services"
	"waterdelivery/internal/notify"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSupplier(t *testing.T, id kernel.UUID, location kernel.GeoPoint) *party.Party {
	t.Helper()
	p, err := party.NewParty(id, "Test Supplier", "supplier@example.com", party.RoleSupplier, location)
	require.NoError(t, err)
	return p
}

func TestDispatchOrderCommandHandler_Handle_NotifiesNearbySuppliersOnly(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	testOrder := newPendingOrder(t, customerID) // delivery point (77.59, 12.97)
	cmd, err := commands.NewDispatchOrderCommand(testOrder.ID())
	require.NoError(t, err)

	nearID, farID := kernel.NewUUID(), kernel.NewUUID()
	near := newSupplier(t, nearID, mustGeoPoint(t, 77.60, 12.98))  // within 5 km
	far := newSupplier(t, farID, mustGeoPoint(t, 77.59, 13.10))    // ~14 km away
	customer, err := party.NewParty(customerID, "Test Customer", "customer@example.com",
		party.RoleCustomer, mustGeoPoint(t, 77.59, 12.97))
	require.NoError(t, err)

	staleID := kernel.NewUUID() // connected but no longer registered

	registry := notify.NewRegistry()
	hub := notify.NewHub(registry, zap.NewNop())
	nearSession, farSession, customerSession := &recordingSession{}, &recordingSession{}, &recordingSession{}
	registry.Register(nearID, nearSession)
	registry.Register(farID, farSession)
	registry.Register(customerID, customerSession)
	registry.Register(staleID, &recordingSession{})

	orderRepo := new(MockOrderRepository)
	partyRepo := new(MockPartyRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("PartyRepository").Return(partyRepo).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	partyRepo.On("Get", ctx, nearID).Return(near, nil).Once()
	partyRepo.On("Get", ctx, farID).Return(far, nil).Once()
	partyRepo.On("Get", ctx, customerID).Return(customer, nil).Once()
	partyRepo.On("Get", ctx, staleID).
		Return(nil, errs.NewObjectNotFoundError("partyID", staleID)).
		Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrderCommandHandler(
		factory, registry, hub, services.NewGeoMatcher(), services.DefaultDispatchRadiusKm, zap.NewNop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	sent := nearSession.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, notify.EventNewOrder, sent[0].Type)
	assert.Equal(t, "New order placed nearby", sent[0].Message)
	assert.Equal(t, testOrder.ID().String(), sent[0].Order.ID)

	assert.Empty(t, farSession.sent())
	assert.Empty(t, customerSession.sent())

	orderRepo.AssertExpectations(t)
	partyRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_Handle_FallsBackToOwnerLocation(t *testing.T) {
	ctx := t.Context()
	customerID := kernel.NewUUID()
	testOrder, err := order.NewOrder(
		kernel.NewUUID(), customerID, 2, kernel.OriginGeoPoint(), "")
	require.NoError(t, err)
	cmd, err := commands.NewDispatchOrderCommand(testOrder.ID())
	require.NoError(t, err)

	ownerPoint := mustGeoPoint(t, 77.59, 12.97)
	owner, err := party.NewParty(customerID, "Test Customer", "customer@example.com",
		party.RoleCustomer, ownerPoint)
	require.NoError(t, err)

	supplierID := kernel.NewUUID()
	supplier := newSupplier(t, supplierID, mustGeoPoint(t, 77.60, 12.98))

	registry := notify.NewRegistry()
	hub := notify.NewHub(registry, zap.NewNop())
	supplierSession := &recordingSession{}
	registry.Register(supplierID, supplierSession)

	orderRepo := new(MockOrderRepository)
	partyRepo := new(MockPartyRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("PartyRepository").Return(partyRepo).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	partyRepo.On("Get", ctx, customerID).Return(owner, nil).Once()
	partyRepo.On("Get", ctx, supplierID).Return(supplier, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrderCommandHandler(
		factory, registry, hub, services.NewGeoMatcher(), services.DefaultDispatchRadiusKm, zap.NewNop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, supplierSession.sent(), 1)
}

func TestDispatchOrderCommandHandler_Handle_NobodyConnected(t *testing.T) {
	ctx := t.Context()
	testOrder := newPendingOrder(t, kernel.NewUUID())
	cmd, err := commands.NewDispatchOrderCommand(testOrder.ID())
	require.NoError(t, err)

	registry := notify.NewRegistry()
	hub := notify.NewHub(registry, zap.NewNop())

	orderRepo := new(MockOrderRepository)
	partyRepo := new(MockPartyRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("PartyRepository").Return(partyRepo).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrderCommandHandler(
		factory, registry, hub, services.NewGeoMatcher(), services.DefaultDispatchRadiusKm, zap.NewNop())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	partyRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestDispatchOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewDispatchOrderCommand(orderID)
	require.NoError(t, err)

	registry := notify.NewRegistry()
	hub := notify.NewHub(registry, zap.NewNop())

	orderRepo := new(MockOrderRepository)
	partyRepo := new(MockPartyRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("PartyRepository").Return(partyRepo).Once()
	orderRepo.On("Get", ctx, orderID).
		Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).
		Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchOrderCommandHandler(
		factory, registry, hub, services.NewGeoMatcher(), services.DefaultDispatchRadiusKm, zap.NewNop())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
