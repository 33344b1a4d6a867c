package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
	"github.com/hotelops/housekeeping-inventory/internal/inventory/repository"
)

// ProvideItemRepository provides the item repository with tracing
func ProvideItemRepository(db *gorm.DB) domain.ItemRepository {
	return repository.NewItemRepositoryWithTracing(repository.NewGormItemRepository(db))
}

// ProvideTransactionRepository provides the transaction repository
func ProvideTransactionRepository(db *gorm.DB) domain.TransactionRepository {
	return repository.NewGormTransactionRepository(db)
}

// ProvideDepreciationRepository provides the depreciation repository
func ProvideDepreciationRepository(db *gorm.DB) domain.DepreciationRepository {
	return repository.NewGormDepreciationRepository(db)
}

// ProvideSupplierRepository provides the supplier repository
func ProvideSupplierRepository(db *gorm.DB) domain.SupplierRepository {
	return repository.NewGormSupplierRepository(db)
}

// ProvideCategoryRepository provides the category repository
func ProvideCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return repository.NewGormCategoryRepository(db)
}

// ProvideLocationRepository provides the location repository
func ProvideLocationRepository(db *gorm.DB) domain.LocationRepository {
	return repository.NewGormLocationRepository(db)
}

// RepositorySet bundles all inventory repositories
var RepositorySet = wire.NewSet(
	ProvideItemRepository,
	ProvideTransactionRepository,
	ProvideDepreciationRepository,
	ProvideSupplierRepository,
	ProvideCategoryRepository,
	ProvideLocationRepository,
)
