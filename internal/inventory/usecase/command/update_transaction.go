package command

import (
	"fmt"
	"time"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
	"github.com/hotelops/housekeeping-inventory/pkg/logger"
)

// UpdateTransactionCommand represents the command to update a stock movement
type UpdateTransactionCommand struct {
	ID         uint
	Type       string
	ItemID     uint
	Quantity   int
	SupplierID *uint
	BorrowerID string
	Notes      string
	Status     string
	DueDate    *time.Time
	ReturnDate *time.Time
}

// UpdateTransactionHandler handles the update transaction command.
// Protocol: revert the old delta against the old item, persist the new
// field values, then apply the new delta against the new item (the
// movement's stock effect can move between items across an edit). Any
// failure after the revert re-applies the reverted delta so stock is
// never left reverted without reapplication.
type UpdateTransactionHandler struct {
	transactions domain.TransactionRepository
	items        domain.ItemRepository
}

// NewUpdateTransactionHandler creates a new update transaction handler
func NewUpdateTransactionHandler(transactions domain.TransactionRepository, items domain.ItemRepository) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{transactions: transactions, items: items}
}

// Handle executes the update transaction command
func (h *UpdateTransactionHandler) Handle(cmd UpdateTransactionCommand) (*domain.Transaction, error) {
	if !domain.ValidType(cmd.Type) {
		return nil, domain.ErrUnknownTransactionType
	}
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	transaction, err := h.transactions.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if _, err := h.items.FindByID(cmd.ItemID); err != nil {
		return nil, err
	}

	old := *transaction
	oldItemID := old.ItemID
	oldDelta := old.StockDelta()

	// Step 1: revert the old effect. Nothing has changed yet if this fails.
	if err := h.items.AdjustStock(oldItemID, -oldDelta); err != nil {
		return nil, fmt.Errorf("failed to revert stock: %w", err)
	}

	transaction.Type = cmd.Type
	transaction.ItemID = cmd.ItemID
	transaction.Quantity = cmd.Quantity
	transaction.SupplierID = cmd.SupplierID
	transaction.BorrowerID = cmd.BorrowerID
	transaction.Notes = cmd.Notes
	if cmd.Status != "" {
		transaction.Status = cmd.Status
	}
	transaction.DueDate = cmd.DueDate
	transaction.ReturnDate = cmd.ReturnDate

	// Step 2: persist the mutation, restoring the reverted delta on failure.
	if err := h.transactions.Update(transaction); err != nil {
		h.reapply(oldItemID, oldDelta, cmd.ID)
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	// Step 3: apply the new effect against the (possibly different) item.
	// On failure the record is restored to its old values so record and
	// stock stay consistent.
	if err := h.items.AdjustStock(cmd.ItemID, transaction.StockDelta()); err != nil {
		if restoreErr := h.transactions.Update(&old); restoreErr != nil {
			logger.Logger.Warn().
				Err(restoreErr).
				Uint("transaction_id", cmd.ID).
				Msg("Failed to restore transaction record after stock failure")
		}
		h.reapply(oldItemID, oldDelta, cmd.ID)
		return nil, fmt.Errorf("failed to apply stock change: %w", err)
	}

	return transaction, nil
}

// reapply restores a reverted delta after a later step failed
func (h *UpdateTransactionHandler) reapply(itemID uint, delta int, transactionID uint) {
	if err := h.items.AdjustStock(itemID, delta); err != nil {
		logger.Logger.Warn().
			Err(err).
			Uint("transaction_id", transactionID).
			Uint("item_id", itemID).
			Int("delta", delta).
			Msg("Failed to restore reverted stock, item stock inconsistent")
	}
}
