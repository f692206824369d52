package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lots/cmd"
	httpin "lots/internal/adapters/in/http"
	"lots/internal/adapters/out/postgres/migrations"
	"lots/internal/adapters/out/redis"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := cmd.NewLogger(configs.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = migrations.Up(configs.DSN()); err != nil {
		return err
	}
	logger.Info("Database schema is up to date")

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	redisClient := goredis.NewClient(&goredis.Options{Addr: configs.RedisAddr})
	defer func() { _ = redisClient.Close() }()
	if err = redis.Ping(ctx, redisClient, 5*time.Second); err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)
	if err != nil {
		return err
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := newWebServer(app, httpin.Credentials(configs.AuthUsers), logger)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server started", zap.String("addr", configs.HTTPAddr()))
		if err := e.Start(configs.HTTPAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err = <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newWebServer(app *cmd.CompositionRoot, users httpin.Credentials, logger *zap.Logger) *echo.Echo {
	createLot := app.CreateCreateLotCommandHandler()
	changeLotStatus := app.CreateChangeLotStatusCommandHandler()
	changeAuctionStatus := app.CreateChangeAuctionStatusCommandHandler()
	updateAuction := app.CreateUpdateAuctionCommandHandler()
	addLotDocument := app.CreateAddLotDocumentCommandHandler()
	addLotContract := app.CreateAddLotContractCommandHandler()
	patchLotContract := app.CreatePatchLotContractCommandHandler()
	addRelatedProcess := app.CreateAddRelatedProcessCommandHandler()
	patchRelatedProcess := app.CreatePatchRelatedProcessCommandHandler()
	deleteRelatedProcess := app.CreateDeleteRelatedProcessCommandHandler()

	server := httpin.NewServer(httpin.Handlers{
		CreateLot:            &createLot,
		ChangeLotStatus:      &changeLotStatus,
		ChangeAuctionStatus:  &changeAuctionStatus,
		UpdateAuction:        &updateAuction,
		AddLotDocument:       &addLotDocument,
		AddLotContract:       &addLotContract,
		PatchLotContract:     &patchLotContract,
		AddRelatedProcess:    &addRelatedProcess,
		PatchRelatedProcess:  &patchRelatedProcess,
		DeleteRelatedProcess: &deleteRelatedProcess,
		GetLot:               app.CreateGetLotQueryHandler(),
		GetLotsByStatus:      app.CreateGetLotsByStatusQueryHandler(),
	}, app.Clock(), logger)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.WARN)
	e.Validator = httpin.NewRequestValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
			)
			return nil
		},
	}))

	httpin.RegisterHandlers(e, server, users)
	return e
}
