package cmd

import (
	"fmt"

	"lots/internal/adapters/out/eventlog"
	"lots/internal/adapters/out/postgres"
	"lots/internal/adapters/out/redis"
	"lots/internal/adapters/out/systemclock"
	"lots/internal/core/application/usecases/commands"
	"lots/internal/core/application/usecases/queries"
	"lots/internal/core/domain/model/lot"
	"lots/internal/core/domain/services"
	"lots/internal/core/ports"
	"lots/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory commands.LotUoWFactory
	machine    services.LotStateMachine
	clock      ports.Clock
	publisher  ports.EventPublisher
	logger     *zap.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient goredis.Cmdable,
	logger *zap.Logger,
) (*CompositionRoot, error) {
	policy, err := lot.NewRectificationPolicy(config.RectificationPeriodDuration)
	if err != nil {
		return nil, fmt.Errorf("rectification policy: %w", err)
	}

	machine, err := services.NewLotStateMachine(policy, config.DefaultDutchSteps)
	if err != nil {
		return nil, fmt.Errorf("lot state machine: %w", err)
	}

	redisPublisher, err := redis.NewEventPublisher(redisClient, config.RedisEventsChannel)
	if err != nil {
		return nil, fmt.Errorf("redis event publisher: %w", err)
	}

	gormFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	return &CompositionRoot{
		config: config,
		gormDB: gormDB,
		uowFactory: FuncLotUoWFactory(func() commands.LotUoW {
			return gormFactory.Create()
		}),
		machine:   machine,
		clock:     systemclock.New(),
		publisher: eventlog.NewFanOut(eventlog.NewLogger(logger), redisPublisher),
		logger:    logger,
	}, nil
}

func (c *CompositionRoot) Clock() ports.Clock {
	return c.clock
}

func (c *CompositionRoot) CreateCreateLotCommandHandler() commands.CreateLotCommandHandler {
	return commands.NewCreateLotCommandHandler(c.uowFactory, c.machine, c.clock, c.publisher)
}

func (c *CompositionRoot) CreateChangeLotStatusCommandHandler() commands.ChangeLotStatusCommandHandler {
	return commands.NewChangeLotStatusCommandHandler(c.uowFactory, c.machine, c.clock, c.publisher)
}

func (c *CompositionRoot) CreateChangeAuctionStatusCommandHandler() commands.ChangeAuctionStatusCommandHandler {
	return commands.NewChangeAuctionStatusCommandHandler(c.uowFactory, c.machine, c.clock, c.publisher)
}

func (c *CompositionRoot) CreateUpdateAuctionCommandHandler() commands.UpdateAuctionCommandHandler {
	return commands.NewUpdateAuctionCommandHandler(c.uowFactory, c.machine, c.clock, c.publisher)
}

func (c *CompositionRoot) CreateAddLotDocumentCommandHandler() commands.AddLotDocumentCommandHandler {
	return commands.NewAddLotDocumentCommandHandler(c.uowFactory, c.machine, c.clock, c.publisher)
}

func (c *CompositionRoot) CreateAddLotContractCommandHandler() commands.AddLotContractCommandHandler {
	return commands.NewAddLotContractCommandHandler(c.uowFactory, c.machine, c.clock, c.publisher)
}

func (c *CompositionRoot) CreatePatchLotContractCommandHandler() commands.PatchLotContractCommandHandler {
	return commands.NewPatchLotContractCommandHandler(c.uowFactory, c.machine, c.clock, c.publisher)
}

func (c *CompositionRoot) CreateAddRelatedProcessCommandHandler() commands.AddRelatedProcessCommandHandler {
	return commands.NewAddRelatedProcessCommandHandler(c.uowFactory, c.machine, c.clock, c.publisher)
}

func (c *CompositionRoot) CreatePatchRelatedProcessCommandHandler() commands.PatchRelatedProcessCommandHandler {
	return commands.NewPatchRelatedProcessCommandHandler(c.uowFactory, c.machine, c.clock, c.publisher)
}

func (c *CompositionRoot) CreateDeleteRelatedProcessCommandHandler() commands.DeleteRelatedProcessCommandHandler {
	return commands.NewDeleteRelatedProcessCommandHandler(c.uowFactory, c.machine, c.clock, c.publisher)
}

func (c *CompositionRoot) CreateCheckLotStatusesCommandHandler() commands.CheckLotStatusesCommandHandler {
	return commands.NewCheckLotStatusesCommandHandler(c.uowFactory, c.machine, c.clock, c.publisher)
}

func (c *CompositionRoot) CreateGetLotQueryHandler() queries.GetLotQueryHandler {
	return queries.NewGetLotQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLotsByStatusQueryHandler() queries.GetLotsByStatusQueryHandler {
	return queries.NewGetLotsByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	handler := c.CreateCheckLotStatusesCommandHandler()
	return jobs.NewJobManager(&handler, c.config.ChronographSchedule, c.config.ChronographBatchSize, c.logger)
}

type FuncLotUoWFactory func() commands.LotUoW

func (f FuncLotUoWFactory) Create() commands.LotUoW {
	return f()
}
