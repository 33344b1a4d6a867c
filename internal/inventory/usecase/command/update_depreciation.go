package command

import (
	"fmt"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
	"github.com/hotelops/housekeeping-inventory/pkg/logger"
)

// UpdateDepreciationCommand represents the command to update a write-off
type UpdateDepreciationCommand struct {
	ID       uint
	ItemID   uint
	Quantity int
	Reason   string
	Status   string
}

// UpdateDepreciationHandler handles the update depreciation command,
// following the same revert-then-reapply protocol as transactions with
// an always-negative delta.
type UpdateDepreciationHandler struct {
	depreciations domain.DepreciationRepository
	items         domain.ItemRepository
}

// NewUpdateDepreciationHandler creates a new update depreciation handler
func NewUpdateDepreciationHandler(depreciations domain.DepreciationRepository, items domain.ItemRepository) *UpdateDepreciationHandler {
	return &UpdateDepreciationHandler{depreciations: depreciations, items: items}
}

// Handle executes the update depreciation command
func (h *UpdateDepreciationHandler) Handle(cmd UpdateDepreciationCommand) (*domain.Depreciation, error) {
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	depreciation, err := h.depreciations.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if _, err := h.items.FindByID(cmd.ItemID); err != nil {
		return nil, err
	}

	old := *depreciation
	oldItemID := old.ItemID
	oldDelta := old.StockDelta()

	if err := h.items.AdjustStock(oldItemID, -oldDelta); err != nil {
		return nil, fmt.Errorf("failed to revert stock: %w", err)
	}

	depreciation.ItemID = cmd.ItemID
	depreciation.Quantity = cmd.Quantity
	depreciation.Reason = cmd.Reason
	if cmd.Status != "" {
		depreciation.Status = cmd.Status
	}

	if err := h.depreciations.Update(depreciation); err != nil {
		h.reapply(oldItemID, oldDelta, cmd.ID)
		return nil, fmt.Errorf("failed to update depreciation: %w", err)
	}

	if err := h.items.AdjustStock(cmd.ItemID, depreciation.StockDelta()); err != nil {
		if restoreErr := h.depreciations.Update(&old); restoreErr != nil {
			logger.Logger.Warn().
				Err(restoreErr).
				Uint("depreciation_id", cmd.ID).
				Msg("Failed to restore depreciation record after stock failure")
		}
		h.reapply(oldItemID, oldDelta, cmd.ID)
		return nil, fmt.Errorf("failed to apply stock change: %w", err)
	}

	return depreciation, nil
}

func (h *UpdateDepreciationHandler) reapply(itemID uint, delta int, depreciationID uint) {
	if err := h.items.AdjustStock(itemID, delta); err != nil {
		logger.Logger.Warn().
			Err(err).
			Uint("depreciation_id", depreciationID).
			Uint("item_id", itemID).
			Int("delta", delta).
			Msg("Failed to restore reverted stock, item stock inconsistent")
	}
}
