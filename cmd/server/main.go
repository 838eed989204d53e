package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"

	"github.com/subcycle/subcycle/internal/api"
	croncontroller "github.com/subcycle/subcycle/internal/api/cron"
	v1 "github.com/subcycle/subcycle/internal/api/v1"
	"github.com/subcycle/subcycle/internal/config"
	"github.com/subcycle/subcycle/internal/domain/payment"
	"github.com/subcycle/subcycle/internal/gateway"
	"github.com/subcycle/subcycle/internal/kv"
	"github.com/subcycle/subcycle/internal/logger"
	"github.com/subcycle/subcycle/internal/notification"
	"github.com/subcycle/subcycle/internal/repository"
	"github.com/subcycle/subcycle/internal/service"
	"github.com/subcycle/subcycle/internal/types"
)

// @title Subcycle API
// @version 1.0
// @description Recurring billing service
// @BasePath /v1

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Entity store
			provideStore,

			// Payment gateway
			gateway.NewSimulatorFromConfig,

			// Notifications
			notification.NewEmailClient,
			provideSink,

			// Repositories
			repository.NewCustomerRepository,
			repository.NewPlanRepository,
			repository.NewInvoiceRepository,
			repository.NewPaymentRepository,
			provideRetryRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,
			service.NewPlanService,
			service.NewCustomerService,
			service.NewBillingService,
			service.NewPaymentService,
			service.NewRetrySweepService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
			startRetryScheduler,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

// provideStore selects the kv backend by deployment mode. Local mode runs
// fully in memory, everything else talks to redis.
func provideStore(cfg *config.Configuration, log *logger.Logger) (kv.Store, error) {
	if cfg.Deployment.Mode == types.ModeLocal {
		log.Info("Using in-memory entity store")
		return kv.NewInMemoryStore(), nil
	}

	client, err := kv.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	log.Infof("Connected to redis at %s", cfg.Redis.URL)
	return kv.NewRedisStore(client), nil
}

func provideSink(client *notification.EmailClient, log *logger.Logger) notification.Sink {
	return notification.NewEmailSink(client, log)
}

func provideRetryRepository(cfg *config.Configuration, store kv.Store, log *logger.Logger) payment.RetryRepository {
	return repository.NewRetryRepository(store, cfg.Retry.MarkerTTL, log)
}

func provideHandlers(
	cfg *config.Configuration,
	log *logger.Logger,
	planService service.PlanService,
	customerService service.CustomerService,
	billingService service.BillingService,
	paymentService service.PaymentService,
	sweepService service.RetrySweepService,
) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(log),
		Plan:        v1.NewPlanHandler(planService, log),
		Customer:    v1.NewCustomerHandler(customerService, log),
		Invoice:     v1.NewInvoiceHandler(billingService, log),
		Payment:     v1.NewPaymentHandler(paymentService, log),
		CronPayment: croncontroller.NewPaymentHandler(sweepService, log),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server at %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

// startRetryScheduler runs the failed payment sweep on the configured cron
// schedule for the lifetime of the process.
func startRetryScheduler(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	sweepService service.RetrySweepService,
	log *logger.Logger,
) error {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(cfg.Retry.Schedule, func() {
		if err := sweepService.ProcessDueRetries(context.Background()); err != nil {
			log.Errorw("scheduled retry sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting retry scheduler with schedule %q", cfg.Retry.Schedule)
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping retry scheduler...")
			<-scheduler.Stop().Done()
			return nil
		},
	})
	return nil
}
