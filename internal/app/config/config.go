package config

import (
	"sepsis-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "sepsis"),
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
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
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
			Env:             utils.GetEnvString("APP_ENV", "development"),
			Port:            utils.GetEnvString("APP_PORT", ":8080"),
			Version:         utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:        utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:  utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:     utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
		},
		FHIR: FHIR{
			BaseUrl: utils.GetEnvString("FHIR_BASE_URL", "http://localhost:5555/fhir"),
		},
		Scoring: Scoring{
			LabLookbackHours:           utils.GetEnvInt("SCORING_LAB_LOOKBACK_HOURS", 24),
			VitalLookbackHours:         utils.GetEnvInt("SCORING_VITAL_LOOKBACK_HOURS", 4),
			LastKnownLookbackHours:     utils.GetEnvInt("SCORING_LAST_KNOWN_LOOKBACK_HOURS", 24),
			ObservationMaxCount:        utils.GetEnvInt("SCORING_OBSERVATION_MAX_COUNT", 10),
			BatchMaxConcurrency:        utils.GetEnvInt("SCORING_BATCH_MAX_CONCURRENCY", 8),
			LatestAssessmentTTLMinutes: utils.GetEnvInt("SCORING_LATEST_ASSESSMENT_TTL_MINUTES", 60),
			LastKnownCacheTTLHours:     utils.GetEnvInt("SCORING_LAST_KNOWN_CACHE_TTL_HOURS", 24),
			AlertQueueName:             utils.GetEnvString("SCORING_ALERT_QUEUE_NAME", "sepsis_high_risk_alert_queue"),
			ReportBucketName:           utils.GetEnvString("SCORING_REPORT_BUCKET_NAME", "sepsis-batch-reports"),
		},
	}
}
