//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/hotelops/housekeeping-inventory/internal/user/delivery/http"
)

// InitializeHTTPHandler initializes the user HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) *http.UserHandler {
	wire.Build(
		RepositorySet,
		http.NewUserHandler,
	)
	return nil
}
