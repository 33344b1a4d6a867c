package command

import (
	"fmt"
	"time"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
	"github.com/hotelops/housekeeping-inventory/pkg/logger"
)

// RecordTransactionCommand represents the command to record a stock movement
type RecordTransactionCommand struct {
	Type       string
	ItemID     uint
	Quantity   int
	UserID     uint
	SupplierID *uint
	BorrowerID string
	Notes      string
	DueDate    *time.Time
}

// RecordTransactionHandler handles the record transaction command.
// Protocol: persist the movement first, then apply its stock delta. If
// the adjustment fails the freshly created record is deleted again, so
// a failed call leaves neither a record nor a stock change behind.
type RecordTransactionHandler struct {
	transactions domain.TransactionRepository
	items        domain.ItemRepository
}

// NewRecordTransactionHandler creates a new record transaction handler
func NewRecordTransactionHandler(transactions domain.TransactionRepository, items domain.ItemRepository) *RecordTransactionHandler {
	return &RecordTransactionHandler{transactions: transactions, items: items}
}

// Handle executes the record transaction command
func (h *RecordTransactionHandler) Handle(cmd RecordTransactionCommand) (*domain.Transaction, error) {
	if !domain.ValidType(cmd.Type) {
		return nil, domain.ErrUnknownTransactionType
	}
	if cmd.ItemID == 0 {
		return nil, domain.ErrItemNotFound
	}
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}

	if _, err := h.items.FindByID(cmd.ItemID); err != nil {
		return nil, err
	}

	transaction := &domain.Transaction{
		Type:       cmd.Type,
		ItemID:     cmd.ItemID,
		Quantity:   cmd.Quantity,
		UserID:     cmd.UserID,
		SupplierID: cmd.SupplierID,
		BorrowerID: cmd.BorrowerID,
		Notes:      cmd.Notes,
		Status:     domain.StatusCompleted,
		Date:       time.Now(),
		DueDate:    cmd.DueDate,
	}

	if err := h.transactions.Create(transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := h.items.AdjustStock(cmd.ItemID, transaction.StockDelta()); err != nil {
		// Compensating rollback: the record must not survive a failed
		// stock adjustment.
		if delErr := h.transactions.Delete(transaction.ID); delErr != nil {
			logger.Logger.Warn().
				Err(delErr).
				Uint("transaction_id", transaction.ID).
				Uint("item_id", cmd.ItemID).
				Msg("Rollback delete failed, transaction record orphaned")
		}
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	return transaction, nil
}
