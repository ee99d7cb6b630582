package main

import (
	"checkout-service/internal/app/config"
	"checkout-service/internal/app/delivery/http/controllers"
	"checkout-service/internal/app/delivery/http/middlewares"
	"checkout-service/internal/app/delivery/http/routers"
	"checkout-service/internal/app/drivers/database"
	"checkout-service/internal/app/drivers/logger"
	"checkout-service/internal/app/drivers/messaging"
	"checkout-service/internal/app/drivers/storage"
	"checkout-service/internal/app/services/core/notifications"
	"checkout-service/internal/app/services/core/orders"
	"checkout-service/internal/app/services/core/payments"
	"checkout-service/internal/app/services/core/reconciliation"
	"checkout-service/internal/app/services/core/transactions"
	webhookEvents "checkout-service/internal/app/services/core/webhook_events"
	"checkout-service/internal/app/services/shared/antifraud"
	"checkout-service/internal/app/services/shared/locker"
	"checkout-service/internal/app/services/shared/mailer"
	"checkout-service/internal/app/services/shared/metrics"
	"checkout-service/internal/app/services/shared/payment_gateway"
	"checkout-service/internal/app/services/shared/redis"
	sharedStorage "checkout-service/internal/app/services/shared/storage"
	"checkout-service/internal/app/services/shared/webhook"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	accessLog := logger.NewLogrusLogger(driverConfig, internalConfig)

	if err := internalConfig.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		PostgresDB:     database.NewPostgresDB(driverConfig),
		MongoDB:        database.NewMongoDB(driverConfig),
		Redis:          database.NewRedisClient(driverConfig),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
		Minio:          storage.NewMinio(driverConfig, internalConfig),
		Logger:         log,
		AccessLogger:   accessLog,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	stopWorkers, err := bootstrapingTheApp(workerCtx, bootstrap)
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started", zap.String("address", server.Addr), zap.String("env", internalConfig.App.Env))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	stopWorkers()

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) (stopWorkers func(), err error) {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	paymentMetrics := metrics.NewPaymentMetrics(registry)

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, log)
	storageService := sharedStorage.NewMinioStorage(bootstrap.Minio)
	paymentGateway := payment_gateway.NewPagBankService(internalConfig, paymentMetrics, log)
	antifraudService := antifraud.NewAntifraudService(internalConfig, paymentMetrics, log)

	mailerService, err := mailer.NewMailerService(bootstrap.RabbitMQ, internalConfig.RabbitMQ.MailerQueue)
	if err != nil {
		return nil, err
	}

	verifier, err := webhook.NewVerifier(internalConfig.Webhook.Secret)
	if err != nil {
		return nil, err
	}

	// Repositories
	orderRepository := orders.NewOrderPostgresRepository(bootstrap.PostgresDB)
	transactionRepository := transactions.NewTransactionPostgresRepository(bootstrap.PostgresDB)
	webhookEventRepository := webhookEvents.NewWebhookEventMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
		internalConfig.MongoDB.WebhookEventCollection,
	)

	// Usecases
	notificationUsecase := notifications.NewNotificationUsecase(mailerService, internalConfig, log)
	paymentUsecase := payments.NewPaymentUsecase(payments.PaymentUsecaseDeps{
		OrderRepository:       orderRepository,
		TransactionRepository: transactionRepository,
		PaymentGateway:        paymentGateway,
		AntifraudService:      antifraudService,
		LockerService:         lockerService,
		Storage:               storageService,
		NotificationUsecase:   notificationUsecase,
		Metrics:               paymentMetrics,
	}, internalConfig, log)
	reconcilerUsecase := reconciliation.NewReconcilerUsecase(reconciliation.ReconcilerUsecaseDeps{
		Verifier:               verifier,
		PaymentGateway:         paymentGateway,
		TransactionRepository:  transactionRepository,
		WebhookEventRepository: webhookEventRepository,
		NotificationUsecase:    notificationUsecase,
		Metrics:                paymentMetrics,
	}, log)

	// Workers
	resyncWorker := reconciliation.NewResyncWorker(log, internalConfig, lockerService, transactionRepository, reconcilerUsecase)
	stopWorkers = resyncWorker.Start(ctx)

	// Controllers
	ctrls := routers.Controllers{
		Payment: controllers.NewPaymentController(log, paymentUsecase, internalConfig),
		Webhook: controllers.NewWebhookController(log, reconcilerUsecase, internalConfig),
		Health:  controllers.NewHealthController(log, healthChecks(bootstrap)),
	}

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares.NewMiddlewares(log, internalConfig, registry),
		bootstrap.AccessLogger,
		registry,
		ctrls,
	)
	return stopWorkers, nil
}

func healthChecks(bootstrap *config.Bootstrap) map[string]controllers.HealthCheck {
	return map[string]controllers.HealthCheck{
		"postgres": bootstrap.PostgresDB.PingContext,
		"mongodb": func(ctx context.Context) error {
			return bootstrap.MongoDB.Ping(ctx, nil)
		},
		"redis": func(ctx context.Context) error {
			return bootstrap.Redis.Ping(ctx).Err()
		},
		"rabbitmq": func(ctx context.Context) error {
			if bootstrap.RabbitMQ.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		},
		"minio": func(ctx context.Context) error {
			_, err := bootstrap.Minio.BucketExists(ctx, bootstrap.InternalConfig.Minio.QRCodeBucketName)
			return err
		},
	}
}
