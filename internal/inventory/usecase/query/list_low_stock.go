package query

import (
	"fmt"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
)

// ListLowStockQuery represents the query to list items at or below their
// minimum stock level
type ListLowStockQuery struct{}

// ListLowStockHandler handles list low stock query
type ListLowStockHandler struct {
	repo domain.ItemRepository
}

// NewListLowStockHandler creates a new list low stock handler
func NewListLowStockHandler(repo domain.ItemRepository) *ListLowStockHandler {
	return &ListLowStockHandler{repo: repo}
}

// Handle executes the list low stock query
func (h *ListLowStockHandler) Handle(query ListLowStockQuery) ([]domain.Item, error) {
	items, err := h.repo.FindLowStock()
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock items: %w", err)
	}

	return items, nil
}
