package command

import (
	"fmt"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
	"github.com/hotelops/housekeeping-inventory/pkg/logger"
)

// DeleteDepreciationCommand represents the command to delete a write-off
type DeleteDepreciationCommand struct {
	ID uint
}

// DeleteDepreciationHandler handles the delete depreciation command.
// Deleting a write-off puts its quantity back into stock, then removes
// the record; a failed revert aborts, a failed delete re-reverts.
type DeleteDepreciationHandler struct {
	depreciations domain.DepreciationRepository
	items         domain.ItemRepository
}

// NewDeleteDepreciationHandler creates a new delete depreciation handler
func NewDeleteDepreciationHandler(depreciations domain.DepreciationRepository, items domain.ItemRepository) *DeleteDepreciationHandler {
	return &DeleteDepreciationHandler{depreciations: depreciations, items: items}
}

// Handle executes the delete depreciation command
func (h *DeleteDepreciationHandler) Handle(cmd DeleteDepreciationCommand) error {
	depreciation, err := h.depreciations.FindByID(cmd.ID)
	if err != nil {
		return err
	}

	delta := depreciation.StockDelta()

	if err := h.items.AdjustStock(depreciation.ItemID, -delta); err != nil {
		return fmt.Errorf("failed to revert stock: %w", err)
	}

	if err := h.depreciations.Delete(cmd.ID); err != nil {
		if adjErr := h.items.AdjustStock(depreciation.ItemID, delta); adjErr != nil {
			logger.Logger.Warn().
				Err(adjErr).
				Uint("depreciation_id", cmd.ID).
				Uint("item_id", depreciation.ItemID).
				Msg("Failed to restore stock after delete failure, item stock inconsistent")
		}
		return fmt.Errorf("failed to delete depreciation: %w", err)
	}

	return nil
}
