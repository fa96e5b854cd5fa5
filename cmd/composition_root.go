package cmd

import (
	"context"
	"log/slog"
	"time"

	missionhttp "missions/internal/adapters/in/http"
	"missions/internal/adapters/out/postgres"
	"missions/internal/adapters/out/pricing"
	"missions/internal/adapters/out/redisstore"
	"missions/internal/core/application/usecases/commands"
	"missions/internal/core/application/usecases/queries"
	"missions/internal/core/domain/model/courier"
	"missions/internal/core/domain/model/kernel"
	"missions/internal/core/domain/model/mission"
	"missions/internal/core/domain/services"
	"missions/internal/core/ports"
	"missions/internal/jobs"
	"missions/internal/notifications"
	"missions/internal/pkg/keyedmutex"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use cases. Shared
// state (the courier pool, the locker, the emitter) is created once here
// and handed to every handler that needs it.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	pool          *courier.Pool
	locker        *keyedmutex.KeyedMutex
	positionStore ports.PositionStore
	dispatcher    services.MissionDispatcher
	estimator     pricing.TariffEstimator
	emitter       *notifications.Emitter
}

// NewCompositionRoot builds the object graph. transport delivers
// notifications; pass a different implementation in tests.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	transport ports.NotificationTransport,
	logger *slog.Logger,
) *CompositionRoot {
	root := &CompositionRoot{
		config:        config,
		logger:        logger,
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		pool:          courier.NewPool(),
		locker:        keyedmutex.New(),
		positionStore: redisstore.NewPositionStore(redisClient, config.PositionTTL),
		dispatcher:    services.NewMissionDispatcher(),
		estimator:     pricing.NewTariffEstimator(),
	}

	root.emitter = notifications.NewEmitter(
		notifications.NewMissionPartiesResolver(missionGetter{root}),
		transport,
		config.NotificationQueueSize,
		logger,
	)

	return root
}

// Emitter returns the notification emitter; the caller owns its Run loop.
func (c *CompositionRoot) Emitter() *notifications.Emitter {
	return c.emitter
}

// Pool returns the shared courier availability pool.
func (c *CompositionRoot) Pool() *courier.Pool {
	return c.pool
}

func (c *CompositionRoot) missionUoWFactory() commands.MissionUoWFactory {
	return FuncMissionUoWFactory(func() commands.MissionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateMissionCommandHandler() commands.CreateMissionCommandHandler {
	return commands.NewCreateMissionCommandHandler(c.missionUoWFactory(), c.estimator)
}

func (c *CompositionRoot) CreateDispatchMissionCommandHandler() commands.DispatchMissionCommandHandler {
	return commands.NewDispatchMissionCommandHandler(
		c.missionUoWFactory(), c.locker, c.pool, c.dispatcher, c.emitter)
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() commands.RequestTransitionCommandHandler {
	return commands.NewRequestTransitionCommandHandler(
		c.missionUoWFactory(), c.locker, c.pool, c.positionStore, c.emitter)
}

func (c *CompositionRoot) CreateReportPositionCommandHandler() commands.ReportPositionCommandHandler {
	return commands.NewReportPositionCommandHandler(
		c.missionUoWFactory(), c.locker, c.pool, c.positionStore, c.emitter,
		c.config.ArrivalThresholdKm, c.logger)
}

func (c *CompositionRoot) CreateSignOnCourierCommandHandler() commands.SignOnCourierCommandHandler {
	return commands.NewSignOnCourierCommandHandler(c.pool)
}

func (c *CompositionRoot) CreateSignOffCourierCommandHandler() commands.SignOffCourierCommandHandler {
	return commands.NewSignOffCourierCommandHandler(c.pool)
}

func (c *CompositionRoot) CreateHeartbeatCourierCommandHandler() commands.HeartbeatCourierCommandHandler {
	return commands.NewHeartbeatCourierCommandHandler(c.pool)
}

func (c *CompositionRoot) CreateGetMissionByIDQueryHandler() queries.GetMissionByIDQueryHandler {
	return queries.NewGetMissionByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveMissionsQueryHandler() queries.GetActiveMissionsQueryHandler {
	return queries.NewGetActiveMissionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierDistanceQueryHandler() queries.GetCourierDistanceQueryHandler {
	return queries.NewGetCourierDistanceQueryHandler(c.gormDB, c.positionStore)
}

// CreateHTTPServer builds the REST adapter over all handlers.
func (c *CompositionRoot) CreateHTTPServer() *missionhttp.Server {
	return missionhttp.NewServer(
		c.CreateCreateMissionCommandHandler(),
		c.CreateDispatchMissionCommandHandler(),
		c.CreateRequestTransitionCommandHandler(),
		c.CreateReportPositionCommandHandler(),
		c.CreateSignOnCourierCommandHandler(),
		c.CreateSignOffCourierCommandHandler(),
		c.CreateHeartbeatCourierCommandHandler(),
		c.CreateGetMissionByIDQueryHandler(),
		c.CreateGetActiveMissionsQueryHandler(),
		c.CreateGetCourierDistanceQueryHandler(),
	)
}

// CreateMissionDispatchJob builds the periodic dispatcher.
func (c *CompositionRoot) CreateMissionDispatchJob() *jobs.MissionDispatchJob {
	return jobs.NewMissionDispatchJob(
		c.missionUoWFactory(),
		c.CreateDispatchMissionCommandHandler(),
		c.config.DispatchCronSpec,
		c.logger,
	)
}

// CreateCourierSweepJob builds the stale-courier sweeper.
func (c *CompositionRoot) CreateCourierSweepJob() *jobs.CourierSweepJob {
	return jobs.NewCourierSweepJob(
		c.pool,
		c.config.CourierStaleAfter,
		c.config.SweepCronSpec,
		c.logger,
	)
}

// FuncMissionUoWFactory adapts a closure to commands.MissionUoWFactory.
type FuncMissionUoWFactory func() commands.MissionUoW

func (f FuncMissionUoWFactory) Create() commands.MissionUoW {
	return f()
}

// missionGetter adapts a fresh unit of work per lookup for the
// notification resolver.
type missionGetter struct {
	root *CompositionRoot
}

func (g missionGetter) Get(ctx context.Context, id kernel.UUID) (*mission.Mission, error) {
	uow := g.root.uowFactory.Create()
	return uow.MissionRepository().Get(ctx, id)
}

// NewRedisClient builds the client for the hot position store.
func NewRedisClient(config Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         config.RedisAddr,
		Password:     config.RedisPassword,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})
}
