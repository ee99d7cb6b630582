package config

type (
	DriverConfig struct {
		PostgresDB PostgresDB
		MongoDB    MongoDB
		Redis      Redis
		RabbitMQ   RabbitMQ
		Minio      Minio
		Logger     Logger
	}

	PostgresDB struct {
		Host               string
		Port               string
		Username           string
		Password           string
		DBName             string
		SSLMode            string
		MaxOpenConnections int
		MaxIdleConnections int
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}

	Redis struct {
		Host     string
		Port     string
		Password string
	}

	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}

	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)

type (
	InternalConfig struct {
		App            App
		JWT            AppJWT
		PaymentGateway AppPaymentGateway
		Antifraud      AppAntifraud
		Webhook        AppWebhook
		Payment        AppPayment
		Reconciliation AppReconciliation
		Mailer         AppMailer
		Minio          AppMinio
		RabbitMQ       AppRabbitMQ
		MongoDB        AppMongoDB
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		EndpointPrefix             string
		MaxRequests                int
		MaxTimeRequestsPerSeconds  int
		ShutdownTimeoutInSeconds   int
		RequestTimeoutInSeconds    int
		RequestBodyLimitInMegabyte int
		AdminAPIKey                string
		AdminAPIKeyHash            string
		AdminMaxRequests           int
	}

	AppJWT struct {
		Secret string
	}

	AppPaymentGateway struct {
		BaseUrl                string
		Token                  string
		RequestTimeoutInSecond int
		RequestsPerSecond      float64
		Burst                  int
	}

	AppAntifraud struct {
		BaseUrl                string
		Token                  string
		RequestTimeoutInSecond int
		RequestsPerSecond      float64
		Burst                  int
	}

	AppWebhook struct {
		Secret             string
		MaxRequests        int
		BlockTimeInSeconds int
	}

	AppPayment struct {
		CallbackBaseUrl              string
		RedirectBaseUrl              string
		PixExpirationInMinutes       int
		InitiationLockTTLInSeconds   int
		NotificationTimeoutInSeconds int
	}

	AppReconciliation struct {
		ResyncCronSpec         string
		ResyncLockTTLInSeconds int
		StaleAfterInMinutes    int
		MaxAgeInHours          int
		BatchSize              int
	}

	AppMailer struct {
		EmailSender string
	}

	AppMinio struct {
		QRCodeBucketName string
	}

	AppRabbitMQ struct {
		MailerQueue string
	}

	AppMongoDB struct {
		WebhookEventCollection string
	}
)
