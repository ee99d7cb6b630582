package config

import (
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/exceptions"
	"checkout-service/internal/pkg/utils"
	"errors"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		PostgresDB: PostgresDB{
			Host:               utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:               utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username:           utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password:           utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			DBName:             utils.GetEnvString("POSTGRES_DB_NAME", "checkout"),
			SSLMode:            utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
			MaxOpenConnections: utils.GetEnvInt("POSTGRES_MAX_OPEN_CONNECTIONS", 25),
			MaxIdleConnections: utils.GetEnvInt("POSTGRES_MAX_IDLE_CONNECTIONS", 5),
		},
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "checkout"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api/v1"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 30),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
			AdminAPIKey:                utils.GetEnvString("APP_ADMIN_API_KEY", ""),
			AdminAPIKeyHash:            utils.GetEnvString("APP_ADMIN_API_KEY_HASH", ""),
			AdminMaxRequests:           utils.GetEnvInt("APP_ADMIN_MAX_REQUEST", 10),
		},
		JWT: AppJWT{
			Secret: utils.GetEnvString("JWT_SECRET", ""),
		},
		PaymentGateway: AppPaymentGateway{
			BaseUrl:                utils.GetEnvString("PAYMENT_GATEWAY_BASE_URL", "https://sandbox.api.pagseguro.com"),
			Token:                  utils.GetEnvString("PAYMENT_GATEWAY_TOKEN", ""),
			RequestTimeoutInSecond: utils.GetEnvInt("PAYMENT_GATEWAY_REQUEST_TIMEOUT_IN_SECONDS", 15),
			RequestsPerSecond:      utils.GetEnvFloat("PAYMENT_GATEWAY_REQUESTS_PER_SECOND", 10),
			Burst:                  utils.GetEnvInt("PAYMENT_GATEWAY_BURST", 5),
		},
		Antifraud: AppAntifraud{
			BaseUrl:                utils.GetEnvString("ANTIFRAUD_BASE_URL", ""),
			Token:                  utils.GetEnvString("ANTIFRAUD_TOKEN", ""),
			RequestTimeoutInSecond: utils.GetEnvInt("ANTIFRAUD_REQUEST_TIMEOUT_IN_SECONDS", 5),
			RequestsPerSecond:      utils.GetEnvFloat("ANTIFRAUD_REQUESTS_PER_SECOND", 20),
			Burst:                  utils.GetEnvInt("ANTIFRAUD_BURST", 10),
		},
		Webhook: AppWebhook{
			Secret:             utils.GetEnvString("PAYMENT_WEBHOOK_SECRET", ""),
			MaxRequests:        utils.GetEnvInt("PAYMENT_WEBHOOK_MAX_REQUEST", 50),
			BlockTimeInSeconds: utils.GetEnvInt("PAYMENT_WEBHOOK_BLOCK_TIME_IN_SECONDS", 60),
		},
		Payment: AppPayment{
			CallbackBaseUrl:              utils.GetEnvString("PAYMENT_CALLBACK_BASE_URL", ""),
			RedirectBaseUrl:              utils.GetEnvString("PAYMENT_REDIRECT_BASE_URL", ""),
			PixExpirationInMinutes:       utils.GetEnvInt("PAYMENT_PIX_EXPIRATION_IN_MINUTES", 30),
			InitiationLockTTLInSeconds:   utils.GetEnvInt("PAYMENT_INITIATION_LOCK_TTL_IN_SECONDS", 30),
			NotificationTimeoutInSeconds: utils.GetEnvInt("PAYMENT_NOTIFICATION_TIMEOUT_IN_SECONDS", 5),
		},
		Reconciliation: AppReconciliation{
			ResyncCronSpec:         utils.GetEnvString("RECONCILIATION_RESYNC_CRON_SPEC", constvars.DefaultResyncCronSpec),
			ResyncLockTTLInSeconds: utils.GetEnvInt("RECONCILIATION_RESYNC_LOCK_TTL_IN_SECONDS", 240),
			StaleAfterInMinutes:    utils.GetEnvInt("RECONCILIATION_STALE_AFTER_IN_MINUTES", 15),
			MaxAgeInHours:          utils.GetEnvInt("RECONCILIATION_MAX_AGE_IN_HOURS", 48),
			BatchSize:              utils.GetEnvInt("RECONCILIATION_BATCH_SIZE", 50),
		},
		Mailer: AppMailer{
			EmailSender: utils.GetEnvString("MAILER_EMAIL_SENDER", "no-reply@checkout.local"),
		},
		Minio: AppMinio{
			QRCodeBucketName: utils.GetEnvString("MINIO_QR_CODE_BUCKET_NAME", "payment-qrcodes"),
		},
		RabbitMQ: AppRabbitMQ{
			MailerQueue: utils.GetEnvString("RABBITMQ_MAILER_QUEUE", "mailer"),
		},
		MongoDB: AppMongoDB{
			WebhookEventCollection: utils.GetEnvString("MONGODB_WEBHOOK_EVENT_COLLECTION", "payment_webhook_events"),
		},
	}
}

// Validate reports every missing mandatory setting at once.
func (c *InternalConfig) Validate() error {
	var errs []error
	if c.PaymentGateway.Token == "" {
		errs = append(errs, exceptions.ErrMissingConfiguration("PAYMENT_GATEWAY_TOKEN"))
	}
	if c.PaymentGateway.BaseUrl == "" {
		errs = append(errs, exceptions.ErrMissingConfiguration("PAYMENT_GATEWAY_BASE_URL"))
	}
	if c.Webhook.Secret == "" {
		errs = append(errs, exceptions.ErrMissingConfiguration("PAYMENT_WEBHOOK_SECRET"))
	}
	if c.Payment.CallbackBaseUrl == "" {
		errs = append(errs, exceptions.ErrMissingConfiguration("PAYMENT_CALLBACK_BASE_URL"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, exceptions.ErrMissingConfiguration("JWT_SECRET"))
	}
	return errors.Join(errs...)
}
