//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/delivery/http"
)

// InitializeInventoryHandler initializes the inventory HTTP handler with all dependencies
func InitializeInventoryHandler(db *gorm.DB, events http.EventPublisher) *http.InventoryHandler {
	wire.Build(
		RepositorySet,
		http.NewInventoryHandler,
	)
	return nil
}

// InitializeCatalogHandler initializes the catalog HTTP handler with all dependencies
func InitializeCatalogHandler(db *gorm.DB) *http.CatalogHandler {
	wire.Build(
		RepositorySet,
		http.NewCatalogHandler,
	)
	return nil
}
