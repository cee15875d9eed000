package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"finance-tracker-api/config"
	"finance-tracker-api/internal/application/ports"
	"finance-tracker-api/internal/application/services"
	"finance-tracker-api/internal/infrastructure/db/postgres"
	attachmentRepo "finance-tracker-api/internal/infrastructure/db/postgres/attachment"
	bulkimportRepo "finance-tracker-api/internal/infrastructure/db/postgres/bulkimport"
	driveauthRepo "finance-tracker-api/internal/infrastructure/db/postgres/driveauth"
	recordRepo "finance-tracker-api/internal/infrastructure/db/postgres/record"
	"finance-tracker-api/internal/infrastructure/googleauth"
	"finance-tracker-api/internal/infrastructure/googledrive"
	"finance-tracker-api/internal/infrastructure/jwt"
	"finance-tracker-api/internal/infrastructure/metrics"
	"finance-tracker-api/internal/infrastructure/mq"
	"finance-tracker-api/internal/infrastructure/secrets"
	"finance-tracker-api/internal/interface/api/rest"
	"finance-tracker-api/internal/interface/api/rest/middleware"
	"finance-tracker-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	encryptor  *secrets.Encryptor
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer

	bulkService   ports.BulkImportService
	purgeService  *services.PurgeService
	orphanService *services.OrphanService
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Warn("no .env file loaded", zap.Error(err))
	}
	cfg := config.Load()

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// secrets: refuses to start in production without an operator key
	encryptor, err := secrets.New(logger, cfg.Secrets.EncryptionKey, cfg.IsProduction())
	if err != nil {
		logger.Fatal("failed to init secret encryption", zap.Error(err))
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}
	//rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn())
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		encryptor:  encryptor,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: rmqConsumer,
	}, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	// "errgroup" instead of "WaitGroup" because:
	// - allows return an error from gorutine
	// - group errors from multiple gorutines into one
	// - allows orchestration of parallel processes through the context.Context(gracefull shut down)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.cfg.App.Host+":"+a.cfg.App.Port))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mqConsumer.DeliveryWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.bulkService.Worker(ctx)
		return nil
	})

	g.Go(func() error {
		a.purgeService.Worker(ctx)
		return nil
	})

	g.Go(func() error {
		a.orphanService.Worker(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	attachments := attachmentRepo.NewRepository(a.db)
	jobs := bulkimportRepo.NewRepository(a.db)
	creds := driveauthRepo.NewRepository(a.db)
	records := recordRepo.NewLookup(a.db)

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	oauthClient := googleauth.New(a.cfg.Drive)
	driveAuthService := services.NewDriveAuthService(oauthClient, creds, a.encryptor, a.logger, a.mCounter)
	storage := googledrive.New(a.logger, a.cfg.Drive.RootFolderName, driveAuthService)
	limits := services.NewLimitChecker(attachments, a.cfg.Attachments.MaxPerRecord)
	attachmentService := services.NewAttachmentService(storage, limits, attachments, records, a.mq, a.mCounter, a.logger)
	a.bulkService = services.NewBulkImportService(attachmentService, jobs, a.cfg.Jobs.BulkConcurrency, a.logger, a.mCounter)
	a.orphanService = services.NewOrphanService(storage, attachments, creds, a.cfg.Jobs.OrphanScanInterval, a.logger)
	a.purgeService = services.NewPurgeService(storage, attachments, a.cfg.Jobs.PurgeInterval, a.logger, a.mCounter)

	// controllers
	rest.NewAttachmentController(a.router, attachmentService, a.orphanService, a.logger, jwtService, a.cfg.Attachments.MaxUploadBytes)
	rest.NewBulkImportController(a.router, a.bulkService, a.logger, jwtService, a.cfg.Attachments.MaxUploadBytes)
	rest.NewDriveAuthController(a.router, driveAuthService, a.logger, jwtService)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
