package command

import (
	"fmt"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
	"github.com/hotelops/housekeeping-inventory/pkg/logger"
)

// DeleteTransactionCommand represents the command to delete a stock movement
type DeleteTransactionCommand struct {
	ID uint
}

// DeleteTransactionHandler handles the delete transaction command.
// Protocol: revert the movement's stock effect, then remove the record.
// A failed revert aborts the whole operation, leaving record and stock
// untouched; a failed record delete re-applies the reverted delta.
type DeleteTransactionHandler struct {
	transactions domain.TransactionRepository
	items        domain.ItemRepository
}

// NewDeleteTransactionHandler creates a new delete transaction handler
func NewDeleteTransactionHandler(transactions domain.TransactionRepository, items domain.ItemRepository) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{transactions: transactions, items: items}
}

// Handle executes the delete transaction command
func (h *DeleteTransactionHandler) Handle(cmd DeleteTransactionCommand) error {
	transaction, err := h.transactions.FindByID(cmd.ID)
	if err != nil {
		return err
	}

	delta := transaction.StockDelta()

	if err := h.items.AdjustStock(transaction.ItemID, -delta); err != nil {
		return fmt.Errorf("failed to revert stock: %w", err)
	}

	if err := h.transactions.Delete(cmd.ID); err != nil {
		if adjErr := h.items.AdjustStock(transaction.ItemID, delta); adjErr != nil {
			logger.Logger.Warn().
				Err(adjErr).
				Uint("transaction_id", cmd.ID).
				Uint("item_id", transaction.ItemID).
				Msg("Failed to restore stock after delete failure, item stock inconsistent")
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}
