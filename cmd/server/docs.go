package main

// @title Housekeeping Inventory API
// @version 1.0
// @description Hotel housekeeping inventory management API with stock ledger, depreciation tracking and full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/hotelops/housekeeping-inventory
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/hotelops/housekeeping-inventory/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Items
// @tag.description Housekeeping item management endpoints

// @tag.name Transactions
// @tag.description Stock transaction endpoints

// @tag.name Depreciations
// @tag.description Depreciation record endpoints

// @tag.name Catalog
// @tag.description Supplier, category and location endpoints

// @tag.name Auth
// @tag.description Authentication endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
