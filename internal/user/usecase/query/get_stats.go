package query

import (
	"fmt"

	"github.com/hotelops/housekeeping-inventory/internal/user/domain"
)

// GetStatsQuery represents the query to get user statistics (admin only)
type GetStatsQuery struct{}

// UserStats represents user statistics
type UserStats struct {
	TotalUsers   int64 `json:"total_users"`
	AdminCount   int64 `json:"admin_count"`
	ManagerCount int64 `json:"manager_count"`
	StaffCount   int64 `json:"staff_count"`
	ActiveUsers  int64 `json:"active_users"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.UserRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.UserRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(query GetStatsQuery) (*UserStats, error) {
	totalUsers, err := h.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	adminCount, err := h.repo.CountByRole(domain.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to count admins: %w", err)
	}

	managerCount, err := h.repo.CountByRole(domain.RoleManager)
	if err != nil {
		return nil, fmt.Errorf("failed to count managers: %w", err)
	}

	staffCount, err := h.repo.CountByRole(domain.RoleStaff)
	if err != nil {
		return nil, fmt.Errorf("failed to count staff: %w", err)
	}

	users, err := h.repo.FindAll(10000, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var activeUsers int64
	for _, user := range users {
		if user.IsActive {
			activeUsers++
		}
	}

	return &UserStats{
		TotalUsers:   totalUsers,
		AdminCount:   adminCount,
		ManagerCount: managerCount,
		StaffCount:   staffCount,
		ActiveUsers:  activeUsers,
	}, nil
}
