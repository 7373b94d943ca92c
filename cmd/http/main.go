package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sepsis-service/internal/app/config"
	"sepsis-service/internal/app/delivery/http/controllers"
	"sepsis-service/internal/app/delivery/http/middlewares"
	"sepsis-service/internal/app/delivery/http/routers"
	"sepsis-service/internal/app/drivers/database"
	"sepsis-service/internal/app/drivers/logger"
	"sepsis-service/internal/app/drivers/messaging"
	"sepsis-service/internal/app/drivers/storage"
	"sepsis-service/internal/app/services/assessments"
	"sepsis-service/internal/app/services/fhir/medications"
	"sepsis-service/internal/app/services/fhir/observations"
	"sepsis-service/internal/app/services/parameters"
	"sepsis-service/internal/app/services/scores/news2"
	"sepsis-service/internal/app/services/shared/alertqueue"
	"sepsis-service/internal/app/services/shared/redis"
	"sepsis-service/internal/app/services/shared/reportstorage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	defer log.Sync()

	bootLog := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig, bootLog)
	redisClient := database.NewRedisClient(driverConfig, bootLog)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig, bootLog)
	minioClient := storage.NewMinio(driverConfig, bootLog)
	chiRouter := chi.NewRouter()

	bootstrapingTheApp(config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests already received by the server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// FHIR clients
	observationFhirClient := observations.NewObservationFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl)
	medicationFhirClient := medications.NewMedicationFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl)

	// Parameter pipeline
	collector := parameters.NewCollector(observationFhirClient, medicationFhirClient, bootstrap.InternalConfig.Scoring.ObservationMaxCount)
	resolver := parameters.NewResolver(collector, redisRepository, bootstrap.InternalConfig.Scoring, bootstrap.Logger)
	bridge := news2.NewBridge(resolver)

	// Collaborators
	assessmentMongoRepository := assessments.NewAssessmentMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	alertQueueService, err := alertqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.Scoring.AlertQueueName)
	if err != nil {
		bootstrap.Logger.Fatal("Failed to initialize alert queue", zap.Error(err))
	}
	reportStorage := reportstorage.NewMinioReportStorage(bootstrap.Minio, bootstrap.Logger, bootstrap.InternalConfig.Scoring.ReportBucketName)

	// Assessment
	assessmentUsecase := assessments.NewAssessmentUsecase(
		resolver,
		bridge,
		assessmentMongoRepository,
		redisRepository,
		alertQueueService,
		reportStorage,
		bootstrap.InternalConfig.Scoring,
		bootstrap.Logger,
	)
	assessmentController := controllers.NewAssessmentController(bootstrap.Logger, assessmentUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, assessmentController)
}
