package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/hotelops/housekeeping-inventory/internal/user/domain"
	"github.com/hotelops/housekeeping-inventory/internal/user/repository"
)

// ProvideUserRepository provides the user repository with tracing
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewUserRepositoryWithTracing(repository.NewGormUserRepository(db))
}

// RepositorySet bundles the user repository
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
)
