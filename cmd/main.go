package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"drone-survey-service/internal/config"
	"drone-survey-service/internal/database/mongo"
	"drone-survey-service/internal/database/redis"
	"drone-survey-service/internal/event"
	"drone-survey-service/internal/handlers"
	"drone-survey-service/internal/repository"
	"drone-survey-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func setupLogging() (*os.File, error) {
	logDir := filepath.Join("log", "drone_survey_service")
	err := os.MkdirAll(logDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	// Setup logging
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Error setting up logging: %v", err)
	}
	defer logFile.Close()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, reading configuration from environment")
	}

	// Load configuration
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// db connection
	db, err := mongo.Connect(cfg.MongoCfg)
	if err != nil {
		log.Fatalf("Error connecting to MongoDB: %v", err)
	}
	defer db.Close(context.Background())

	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureIndexes(indexCtx); err != nil {
		cancel()
		log.Fatalf("Error creating MongoDB indexes: %v", err)
	}
	cancel()

	redisClient, err := redis.NewClient(cfg.RedisCfg)
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// Mission lifecycle events are best effort. The API serves without a
	// broker, so a failed connection downgrades to a no-op publisher.
	var publisher event.Publisher = event.NopPublisher{}
	rabbitConn, err := event.Connect(cfg.RabbitMQCfg)
	if err != nil {
		log.Printf("Error connecting to RabbitMQ, mission events disabled: %v", err)
	} else {
		defer rabbitConn.Close()
		publisher = event.NewMissionEventPublisher(rabbitConn)
	}

	r := gin.Default()

	//repositories
	userRepository := repository.NewUserRepository(db)
	droneRepository := repository.NewDroneRepository(db)
	facilityRepository := repository.NewFacilityRepository(db)
	missionRepository := repository.NewMissionRepository(db)
	surveyRepository := repository.NewSurveyRepository(db)
	sessionRepository := repository.NewSessionRepository(redisClient)

	//services
	tokenService, err := services.NewTokenService(cfg.AuthCfg)
	if err != nil {
		log.Fatalf("Error creating token service: %v", err)
	}
	userService := services.NewUserService(userRepository, sessionRepository, tokenService)
	droneService := services.NewDroneService(droneRepository)
	facilityService := services.NewFacilityService(facilityRepository, missionRepository, droneRepository)
	missionService := services.NewMissionService(missionRepository, surveyRepository, publisher)
	surveyService := services.NewSurveyService(surveyRepository)
	telemetryService := services.NewTelemetryService(redisClient)

	// handlers
	middleware := handlers.NewMiddleware(tokenService)
	authHandler := handlers.NewAuthHandler(userService)
	droneHandler := handlers.NewDroneHandler(droneService, missionService, telemetryService)
	facilityHandler := handlers.NewFacilityHandler(facilityService, missionService)
	missionHandler := handlers.NewMissionHandler(missionService, telemetryService)
	surveyHandler := handlers.NewSurveyHandler(surveyService, telemetryService)

	// Register routes
	authHandler.RegisterRoutes(r, middleware)
	droneHandler.RegisterRoutes(r, middleware)
	facilityHandler.RegisterRoutes(r, middleware)
	missionHandler.RegisterRoutes(r, middleware)
	surveyHandler.RegisterRoutes(r, middleware)

	log.Printf("Starting drone-survey-service on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
