package config

import (
	"os"
	"strings"
	"time"
)

// ServiceConfig holds configuration for a backend service
type ServiceConfig struct {
	Name        string
	BaseURL     string
	Instances   []string
	Timeout     time.Duration
	HealthCheck string
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port     string
	Services map[string]ServiceConfig
}

// LoadConfig loads the gateway configuration
func LoadConfig() *GatewayConfig {
	return &GatewayConfig{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Services: map[string]ServiceConfig{
			"inventory": {
				Name:        "inventory-service",
				BaseURL:     getEnv("INVENTORY_SERVICE_URL", "http://localhost:8080"),
				Instances:   getEnvList("INVENTORY_SERVICE_INSTANCES", getEnv("INVENTORY_SERVICE_URL", "http://localhost:8080")),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
			"user": {
				Name:        "user-service",
				BaseURL:     getEnv("USER_SERVICE_URL", "http://localhost:8080"),
				Instances:   getEnvList("USER_SERVICE_INSTANCES", getEnv("USER_SERVICE_URL", "http://localhost:8080")),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList reads a comma separated list from the environment
func getEnvList(key, defaultValue string) []string {
	value := getEnv(key, defaultValue)

	var instances []string
	for _, instance := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(instance); trimmed != "" {
			instances = append(instances, trimmed)
		}
	}
	return instances
}
