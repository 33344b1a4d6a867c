package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/hotelops/housekeeping-inventory/docs"
	"github.com/hotelops/housekeeping-inventory/internal/inventory"
	inventoryHTTP "github.com/hotelops/housekeeping-inventory/internal/inventory/delivery/http"
	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
	"github.com/hotelops/housekeeping-inventory/internal/user"
	userHTTP "github.com/hotelops/housekeeping-inventory/internal/user/delivery/http"
	userdomain "github.com/hotelops/housekeeping-inventory/internal/user/domain"
	"github.com/hotelops/housekeeping-inventory/kafka"
	"github.com/hotelops/housekeeping-inventory/pkg/database"
	"github.com/hotelops/housekeeping-inventory/pkg/logger"
	"github.com/hotelops/housekeeping-inventory/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "housekeeping-inventory")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting housekeeping inventory service")

	// Initialize tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
		}
	}()

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "housekeepingdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&domain.Item{},
		&domain.Transaction{},
		&domain.Depreciation{},
		&domain.Supplier{},
		&domain.Category{},
		&domain.Location{},
		&userdomain.User{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka publisher is optional: without brokers the service runs
	// with stock eventing disabled.
	var events inventoryHTTP.EventPublisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Str("brokers", brokers).Msg("Failed to connect to Kafka, stock events disabled")
		} else {
			defer publisher.Close()
			events = publisher
			logger.Logger.Info().Str("brokers", brokers).Msg("Kafka publisher initialized")
		}
	} else {
		logger.Logger.Info().Msg("KAFKA_BROKERS not set, stock events disabled")
	}

	// Initialize handlers with Wire DI
	inventoryHandler := inventory.InitializeInventoryHandler(db, events)
	catalogHandler := inventory.InitializeCatalogHandler(db)
	userHandler := user.InitializeHTTPHandler(db)

	logger.Logger.Info().Msg("Handlers initialized")

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8080")
	go startHTTPServer(inventoryHandler, catalogHandler, userHandler, sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(inventoryHandler *inventoryHTTP.InventoryHandler, catalogHandler *inventoryHTTP.CatalogHandler, userHandler *userHTTP.UserHandler, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	// Register middlewares
	inventoryHTTP.RegisterMiddlewares(router, inventoryHTTP.DefaultMiddlewareConfig())

	// Register routes
	inventoryHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router)

	// Health check endpoint
	inventoryHandler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	inventoryHTTP.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// CORS middleware
	c := inventoryHTTP.SetupCORS(inventoryHTTP.DefaultMiddlewareConfig())

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Str("swagger_endpoint", "/swagger/index.html").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, c(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
