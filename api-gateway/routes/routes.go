package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/hotelops/housekeeping-inventory/api-gateway/config"
	"github.com/hotelops/housekeeping-inventory/api-gateway/health"
	"github.com/hotelops/housekeeping-inventory/api-gateway/middleware"
	"github.com/hotelops/housekeeping-inventory/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix       string
	ServiceName  string
	Description  string
	RequireAuth  bool // Requires authentication
	RequireAdmin bool // Requires admin role
	WriteLimited bool // Stricter rate limit for stock mutations
}

// Routes holds all route definitions
var Routes = []RouteDefinition{
	// Public routes (no auth required)
	{
		Prefix:      "/auth",
		ServiceName: "user",
		Description: "Authentication endpoints (login, register)",
	},

	// Item and catalog routes: reads are public, writes enforced by the
	// backend, so the gateway only forwards identity when present
	{
		Prefix:      "/api/items",
		ServiceName: "inventory",
		Description: "Housekeeping item management",
	},
	{
		Prefix:      "/api/suppliers",
		ServiceName: "inventory",
		Description: "Supplier catalog",
	},
	{
		Prefix:      "/api/categories",
		ServiceName: "inventory",
		Description: "Category catalog",
	},
	{
		Prefix:      "/api/locations",
		ServiceName: "inventory",
		Description: "Storage location catalog",
	},

	// Stock ledger routes (auth required, write rate limited)
	{
		Prefix:       "/api/transactions",
		ServiceName:  "inventory",
		Description:  "Stock transactions",
		RequireAuth:  true,
		WriteLimited: true,
	},
	{
		Prefix:       "/api/depreciations",
		ServiceName:  "inventory",
		Description:  "Depreciation records",
		RequireAuth:  true,
		WriteLimited: true,
	},

	// User service routes
	{
		Prefix:      "/users",
		ServiceName: "user",
		Description: "User profile endpoints",
		RequireAuth: true,
	},
	{
		Prefix:       "/admin",
		ServiceName:  "user",
		Description:  "User administration endpoints",
		RequireAuth:  true,
		RequireAdmin: true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager, redisClient *redis.Client) {
	// Create reverse proxy
	reverseProxy := proxy.NewReverseProxy(cfg)

	// Create health checker
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe (for Kubernetes)
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks downstream services)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Detailed service health checks
	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)
		return c.JSON(healthStatus)
	})

	// Circuit breaker stats
	app.Get("/gateway/circuits", func(c *fiber.Ctx) error {
		return c.JSON(cbManager.GetAllStats())
	})

	// Load balancer stats
	app.Get("/gateway/loadbalancers", func(c *fiber.Ctx) error {
		stats := make(map[string]interface{})
		for name, lb := range reverseProxy.GetLoadBalancers() {
			stats[name] = lb.GetStats()
		}
		return c.JSON(stats)
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Housekeeping Inventory Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	// Register all service routes
	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy, redisClient)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy, redisClient *redis.Client) {
	// Create handler function
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	// Apply middleware based on route requirements
	var middlewares []fiber.Handler

	if route.RequireAdmin {
		// Admin routes need both auth and admin check
		middlewares = append(middlewares, middleware.AuthMiddleware(), middleware.AdminMiddleware())
	} else if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	} else {
		// Public routes still forward identity when a token is present
		middlewares = append(middlewares, middleware.OptionalAuthMiddleware())
	}

	if route.WriteLimited && redisClient != nil {
		middlewares = append(middlewares, middleware.WriteRateLimiter(redisClient))
	}

	// Create a route group for this service
	group := app.Group(route.Prefix, middlewares...)

	// Handle all HTTP methods with wildcard path
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	app.All(route.Prefix, append(middlewares, handler)...)
}
