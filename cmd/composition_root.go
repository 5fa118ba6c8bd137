package cmd

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	httpadapter "waterdelivery/internal/adapters/in/http"
	"waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/services"
	"waterdelivery/internal/jobs"
	"waterdelivery/internal/notify"
)

// CompositionRoot wires adapters, use cases and shared infrastructure
// together. All factory methods hand out fully constructed handlers.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	registry   *notify.Registry
	hub        *notify.Hub
	logger     *zap.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) CompositionRoot {
	registry := notify.NewRegistry()

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		hub:        notify.NewHub(registry, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) Registry() *notify.Registry {
	return c.registry
}

func (c *CompositionRoot) createOrderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(
		c.createUoWFactory(),
		c.registry,
		c.hub,
		services.NewGeoMatcher(),
		c.config.DispatchRadiusKm,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	dispatcher := c.CreateDispatchOrderCommandHandler()
	return commands.NewCreateOrderCommandHandler(c.createOrderUoWFactory(), dispatcher, c.logger)
}

func (c *CompositionRoot) CreateRespondToOrderCommandHandler() commands.RespondToOrderCommandHandler {
	return commands.NewRespondToOrderCommandHandler(c.createOrderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.createOrderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.createOrderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.createOrderUoWFactory(), c.hub, c.logger)
}

func (c *CompositionRoot) CreateGetSupplierOrdersQueryHandler() queries.GetSupplierOrdersQueryHandler {
	return queries.NewGetSupplierOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.gormDB)
}

// CreateServer builds the inbound HTTP and WebSocket adapter.
func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateRespondToOrderCommandHandler(),
		c.CreateMarkDeliveredCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateConfirmPaymentCommandHandler(),
		c.CreateGetSupplierOrdersQueryHandler(),
		c.CreateGetCustomerOrdersQueryHandler(),
		c.CreateGetOrderStatsQueryHandler(),
		c.registry,
		c.config.JWTSecret,
		c.logger,
	)
}

// CreateJobManager builds the background job coordinator.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	dispatcher := c.CreateDispatchOrderCommandHandler()
	return jobs.NewJobManager(c.createOrderUoWFactory(), dispatcher, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
