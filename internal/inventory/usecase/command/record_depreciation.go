package command

import (
	"fmt"
	"time"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
	"github.com/hotelops/housekeeping-inventory/pkg/logger"
)

// RecordDepreciationCommand represents the command to write off stock
type RecordDepreciationCommand struct {
	ItemID   uint
	Quantity int
	Reason   string
	UserID   uint
}

// RecordDepreciationHandler handles the record depreciation command.
// Unlike transactions, a write-off larger than the current stock is
// rejected before any record is written.
type RecordDepreciationHandler struct {
	depreciations domain.DepreciationRepository
	items         domain.ItemRepository
}

// NewRecordDepreciationHandler creates a new record depreciation handler
func NewRecordDepreciationHandler(depreciations domain.DepreciationRepository, items domain.ItemRepository) *RecordDepreciationHandler {
	return &RecordDepreciationHandler{depreciations: depreciations, items: items}
}

// Handle executes the record depreciation command
func (h *RecordDepreciationHandler) Handle(cmd RecordDepreciationCommand) (*domain.Depreciation, error) {
	if cmd.ItemID == 0 {
		return nil, domain.ErrItemNotFound
	}
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}

	item, err := h.items.FindByID(cmd.ItemID)
	if err != nil {
		return nil, err
	}

	if item.CurrentStock < cmd.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	depreciation := &domain.Depreciation{
		ItemID:   cmd.ItemID,
		Quantity: cmd.Quantity,
		Reason:   cmd.Reason,
		UserID:   cmd.UserID,
		Status:   domain.DepreciationCompleted,
		Date:     time.Now(),
	}

	if err := h.depreciations.Create(depreciation); err != nil {
		return nil, fmt.Errorf("failed to create depreciation: %w", err)
	}

	if err := h.items.AdjustStock(cmd.ItemID, depreciation.StockDelta()); err != nil {
		if delErr := h.depreciations.Delete(depreciation.ID); delErr != nil {
			logger.Logger.Warn().
				Err(delErr).
				Uint("depreciation_id", depreciation.ID).
				Uint("item_id", cmd.ItemID).
				Msg("Rollback delete failed, depreciation record orphaned")
		}
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	return depreciation, nil
}
