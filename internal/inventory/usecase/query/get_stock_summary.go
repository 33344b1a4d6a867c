package query

import (
	"fmt"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
)

// GetStockSummaryQuery represents the query to get stock statistics
type GetStockSummaryQuery struct{}

// StockSummary represents aggregate stock statistics for the dashboard
type StockSummary struct {
	TotalItems    int64 `json:"total_items"`
	TotalStock    int64 `json:"total_stock"`
	LowStockItems int64 `json:"low_stock_items"`
}

// GetStockSummaryHandler handles get stock summary query
type GetStockSummaryHandler struct {
	repo domain.ItemRepository
}

// NewGetStockSummaryHandler creates a new get stock summary handler
func NewGetStockSummaryHandler(repo domain.ItemRepository) *GetStockSummaryHandler {
	return &GetStockSummaryHandler{repo: repo}
}

// Handle executes the get stock summary query
func (h *GetStockSummaryHandler) Handle(query GetStockSummaryQuery) (*StockSummary, error) {
	totalItems, err := h.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	totalStock, err := h.repo.TotalStock()
	if err != nil {
		return nil, fmt.Errorf("failed to sum stock: %w", err)
	}

	lowStock, err := h.repo.CountLowStock()
	if err != nil {
		return nil, fmt.Errorf("failed to count low stock items: %w", err)
	}

	return &StockSummary{
		TotalItems:    totalItems,
		TotalStock:    totalStock,
		LowStockItems: lowStock,
	}, nil
}
