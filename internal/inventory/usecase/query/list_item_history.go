package query

import (
	"fmt"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
)

// ListItemHistoryQuery represents the query to list all stock movements
// and write-offs recorded against a single item
type ListItemHistoryQuery struct {
	ItemID uint
	Limit  int
	Offset int
}

// ItemHistory bundles the movement and write-off records of one item
type ItemHistory struct {
	Item          *domain.Item          `json:"item"`
	Transactions  []domain.Transaction  `json:"transactions"`
	Depreciations []domain.Depreciation `json:"depreciations"`
}

// ListItemHistoryHandler handles list item history query
type ListItemHistoryHandler struct {
	items         domain.ItemRepository
	transactions  domain.TransactionRepository
	depreciations domain.DepreciationRepository
}

// NewListItemHistoryHandler creates a new list item history handler
func NewListItemHistoryHandler(items domain.ItemRepository, transactions domain.TransactionRepository, depreciations domain.DepreciationRepository) *ListItemHistoryHandler {
	return &ListItemHistoryHandler{items: items, transactions: transactions, depreciations: depreciations}
}

// Handle executes the list item history query
func (h *ListItemHistoryHandler) Handle(query ListItemHistoryQuery) (*ItemHistory, error) {
	if query.ItemID == 0 {
		return nil, fmt.Errorf("item id is required")
	}
	if query.Limit == 0 {
		query.Limit = 50
	}
	if query.Limit > 200 {
		query.Limit = 200
	}

	item, err := h.items.FindByID(query.ItemID)
	if err != nil {
		return nil, err
	}

	transactions, err := h.transactions.FindByItem(query.ItemID, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	depreciations, err := h.depreciations.FindByItem(query.ItemID, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list depreciations: %w", err)
	}

	return &ItemHistory{
		Item:          item,
		Transactions:  transactions,
		Depreciations: depreciations,
	}, nil
}
