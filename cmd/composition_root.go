package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "gasfill/internal/adapters/in/http"
	"gasfill/internal/adapters/out/events"
	"gasfill/internal/adapters/out/postgres"
	"gasfill/internal/adapters/out/redislock"
	"gasfill/internal/core/application/usecases/commands"
	"gasfill/internal/core/application/usecases/queries"
	"gasfill/internal/core/domain/services"
	"gasfill/internal/core/ports"
	"gasfill/internal/jobs"
	"gasfill/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CompositionRoot wires adapters and use cases for one process.
type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	publisher  ports.EventPublisher
	locker     *redislock.Locker
	uowFactory *postgres.GormUnitOfWorkFactory
	closers    []func() error
}

// OpenDatabase connects gorm to PostgreSQL. TranslateError makes unique
// violations surface as gorm.ErrDuplicatedKey.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	c := &CompositionRoot{
		cfg:      cfg,
		logger:   logger,
		gormDB:   gormDB,
		registry: registry,
		metrics:  m,
	}

	var publisher ports.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafka := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderChangedTopic)
		c.closers = append(c.closers, kafka.Close)
		publisher = kafka
		logger.Info("publishing order events to kafka",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.String("topic", cfg.KafkaOrderChangedTopic),
		)
	} else {
		publisher = events.NewLogPublisher(logger)
	}
	c.publisher = events.NewInstrumentedPublisher(publisher, m)

	if cfg.RedisAddr != "" {
		c.locker = redislock.New(cfg.RedisAddr, cfg.RedisPassword)
		c.closers = append(c.closers, c.locker.Close)
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, c.publisher, logger.With("component", "unit_of_work"))
	return c
}

// Close releases the event writer and the redis client.
func (c *CompositionRoot) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

// Ping checks the database and, when configured, the lock store.
func (c *CompositionRoot) Ping(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	if c.locker != nil {
		if err := c.locker.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
	}
	return nil
}

func (c *CompositionRoot) Registry() *prometheus.Registry { return c.registry }
func (c *CompositionRoot) Metrics() *metrics.Metrics      { return c.metrics }

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderUoWFactory() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	station, err := c.cfg.Station()
	if err != nil {
		station = services.DefaultStation()
	}
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), services.NewFeeCalculator(station))
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	dispatcher := services.NewRiderDispatcher(c.cfg.AssignmentTimeout, c.cfg.AssignmentMaxDistanceKm)
	return commands.NewAssignRiderCommandHandler(c.fullUoWFactory(), dispatcher)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	return commands.NewAcceptAssignmentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRejectAssignmentCommandHandler() commands.RejectAssignmentCommandHandler {
	return commands.NewRejectAssignmentCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(c.fullUoWFactory(), c.cfg.RiderCommissionRate)
}

func (c *CompositionRoot) CreateExpireAssignmentsCommandHandler() commands.ExpireAssignmentsCommandHandler {
	return commands.NewExpireAssignmentsCommandHandler(c.fullUoWFactory(), c.logger.With("component", "assignment_expiry"))
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	return commands.NewRateOrderCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateRegisterRiderCommandHandler() commands.RegisterRiderCommandHandler {
	return commands.NewRegisterRiderCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateRiderStatusCommandHandler() commands.UpdateRiderStatusCommandHandler {
	return commands.NewUpdateRiderStatusCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateModerateRiderCommandHandler() commands.ModerateRiderCommandHandler {
	return commands.NewModerateRiderCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingAssignmentsQueryHandler() queries.GetPendingAssignmentsQueryHandler {
	return queries.NewGetPendingAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderEarningsQueryHandler() queries.GetRiderEarningsQueryHandler {
	return queries.NewGetRiderEarningsQueryHandler(c.gormDB)
}

// CreateAssignmentExpiryJob schedules the sweep. With Redis configured only one
// replica sweeps per tick.
func (c *CompositionRoot) CreateAssignmentExpiryJob() *jobs.AssignmentExpiryJob {
	var lock jobs.SweepLock
	if c.locker != nil {
		lock = c.locker
	}
	return jobs.NewAssignmentExpiryJob(
		c.CreateExpireAssignmentsCommandHandler(),
		lock,
		c.metrics,
		c.cfg.ExpirySweepSchedule,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAssignmentExpiryJob())
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		AssignRider:           c.CreateAssignRiderCommandHandler(),
		AcceptAssignment:      c.CreateAcceptAssignmentCommandHandler(),
		RejectAssignment:      c.CreateRejectAssignmentCommandHandler(),
		UpdateDeliveryStatus:  c.CreateUpdateDeliveryStatusCommandHandler(),
		CancelOrder:           c.CreateCancelOrderCommandHandler(),
		RateOrder:             c.CreateRateOrderCommandHandler(),
		ExpireAssignments:     c.CreateExpireAssignmentsCommandHandler(),
		RegisterRider:         c.CreateRegisterRiderCommandHandler(),
		UpdateRiderStatus:     c.CreateUpdateRiderStatusCommandHandler(),
		ModerateRider:         c.CreateModerateRiderCommandHandler(),
		GetOrder:              c.CreateGetOrderQueryHandler(),
		GetPendingAssignments: c.CreateGetPendingAssignmentsQueryHandler(),
		GetRiderEarnings:      c.CreateGetRiderEarningsQueryHandler(),
	}, httpin.NewAuthenticator(c.cfg.JWTSecret), c.metrics)
}

func (c *CompositionRoot) CreateEcho(ctx context.Context) (*echo.Echo, error) {
	return httpin.NewEcho(ctx, c.CreateHTTPServer(), httpin.Options{
		Logger:   c.logger.With("component", "http"),
		Gatherer: c.registry,
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
