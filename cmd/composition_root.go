package cmd

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	httpin "chatorder/internal/adapters/in/http"
	"chatorder/internal/adapters/out/postgres/catalogrepo"
	"chatorder/internal/adapters/out/postgres/orderrepo"
	"chatorder/internal/core/application/notify"
	"chatorder/internal/core/application/router"
	"chatorder/internal/core/application/usecases/commands"
	"chatorder/internal/core/application/usecases/queries"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/ports"
	"chatorder/internal/jobs"
)

// CompositionRoot wires adapters, handlers and jobs. All shared singletons
// (session store, dispatcher, repositories) are created once here.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	gormDB    *gorm.DB
	orders    *orderrepo.GormOrderRepository
	catalog   *catalogrepo.GormCatalogRepository
	directory ports.VendorDirectory
	roles     ports.RoleResolver
	publisher ports.OrderEventPublisher

	dispatcher *notify.Dispatcher
	sessions   *router.Store
	admin      kernel.Phone
}

// NewCompositionRoot creates the root. The notifier, publisher and directory
// are dialed or built by the caller; everything else is derived here. The
// admin phone receives manual follow-up notices (rejections, stuck orders).
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	notifier ports.Notifier,
	publisher ports.OrderEventPublisher,
	roles ports.RoleResolver,
	directory ports.VendorDirectory,
	admin kernel.Phone,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		logger:     logger,
		gormDB:     gormDB,
		orders:     orderrepo.NewGormOrderRepository(gormDB),
		catalog:    catalogrepo.NewGormCatalogRepository(gormDB),
		directory:  directory,
		roles:      roles,
		publisher:  publisher,
		dispatcher: notify.NewDispatcher(notifier, logger),
		sessions:   router.NewStore(),
		admin:      admin,
	}
}

// Sessions returns the shared conversation session store.
func (c *CompositionRoot) Sessions() *router.Store {
	return c.sessions
}

// SeedCatalog upserts the default menu so catalog lookups resolve on a fresh
// database.
func (c *CompositionRoot) SeedCatalog(ctx context.Context) error {
	return c.catalog.Seed(ctx, defaultMenu())
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(
		c.orders, c.directory, c.publisher, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateAdvanceConversationCommandHandler() commands.AdvanceConversationCommandHandler {
	return commands.NewAdvanceConversationCommandHandler(
		c.sessions, c.catalog, c.orders, c.dispatcher,
		c.CreateSubmitOrderCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateApplyOperatorActionCommandHandler() commands.ApplyOperatorActionCommandHandler {
	return commands.NewApplyOperatorActionCommandHandler(
		c.orders, c.directory, c.publisher, c.dispatcher, c.sessions, c.admin, c.logger)
}

func (c *CompositionRoot) CreateRemindPendingOrdersCommandHandler() commands.RemindPendingOrdersCommandHandler {
	return commands.NewRemindPendingOrdersCommandHandler(c.orders, c.dispatcher, c.admin, c.logger)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateRouter() *router.Router {
	conversation := c.CreateAdvanceConversationCommandHandler()
	operator := c.CreateApplyOperatorActionCommandHandler()
	return router.NewRouter(c.roles, conversation, operator, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.config.VerifyToken,
		c.CreateRouter(),
		c.CreateGetOpenOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.sessions,
		c.config.SessionTTL,
		c.CreateRemindPendingOrdersCommandHandler(),
		c.config.ReminderThreshold,
		c.logger,
	)
}

// defaultMenu is the catalog applied on startup. Product ids match the
// retailer ids configured in the WhatsApp catalog.
func defaultMenu() []ports.Product {
	return []ports.Product{
		{ID: "veg-burger", Name: "Veg Burger", Price: mustMoney(7000)},
		{ID: "chicken-burger", Name: "Chicken Burger", Price: mustMoney(12000)},
		{ID: "masala-dosa", Name: "Masala Dosa", Price: mustMoney(8000)},
		{ID: "french-fries", Name: "French Fries", Price: mustMoney(6000)},
		{ID: "cold-coffee", Name: "Cold Coffee", Price: mustMoney(9000)},
	}
}

func mustMoney(minorUnits int64) kernel.Money {
	money, err := kernel.NewMoney(minorUnits)
	if err != nil {
		panic(err)
	}
	return money
}
