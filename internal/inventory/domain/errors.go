package domain

import "errors"

// Ledger error taxonomy. Validation and not-found errors carry no side
// effects; adjustment errors mean the record write was compensated.
var (
	ErrItemNotFound           = errors.New("item not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrDepreciationNotFound   = errors.New("depreciation not found")
	ErrInvalidQuantity        = errors.New("quantity must be a positive integer")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrCategoryInUse          = errors.New("category is still referenced by items")
)
