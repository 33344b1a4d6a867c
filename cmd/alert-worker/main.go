package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hotelops/housekeeping-inventory/kafka"
	"github.com/hotelops/housekeeping-inventory/pkg/logger"
)

var lowStockAlerts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "alert_worker_low_stock_alerts_total",
		Help: "Total number of low stock alerts processed",
	},
	[]string{"item_code"},
)

func init() {
	prometheus.MustRegister(lowStockAlerts)
}

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "housekeeping-alert-worker")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "alert-worker")

	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicStockLow})
	if err != nil {
		logger.Logger.Fatal().Err(err).Strs("brokers", brokers).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeStockLow, handleLowStock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	// Metrics endpoint
	metricsPort := getEnv("METRICS_PORT", "8090")
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":"+metricsPort, nil); err != nil {
			logger.Logger.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Str("topic", kafka.TopicStockLow).
		Str("metrics_port", metricsPort).
		Msg("Alert worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down alert worker...")
}

func handleLowStock(ctx context.Context, payload []byte) error {
	var event kafka.LowStockEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	lowStockAlerts.WithLabelValues(event.ItemCode).Inc()

	logger.Warn(ctx).
		Str("event_id", event.EventID).
		Uint("item_id", event.ItemID).
		Str("item_code", event.ItemCode).
		Int("current_stock", event.CurrentStock).
		Int("min_stock", event.MinStock).
		Msg("LOW STOCK ALERT: item at or below minimum stock level")

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
