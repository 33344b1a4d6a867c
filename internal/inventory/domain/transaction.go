package domain

import (
	"time"
)

// Transaction types
const (
	TypeIn     = "in"
	TypeOut    = "out"
	TypeBorrow = "borrow"
	TypeReturn = "return"
)

// Transaction statuses. Status is workflow metadata only: stock moves
// on create/update/delete regardless of status, so current stock always
// reflects the physical movement of goods.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Transaction represents a stock movement: goods received (in),
// issued (out), lent to a borrower (borrow) or returned (return).
type Transaction struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Type       string     `json:"type" gorm:"not null;index"`
	ItemID     uint       `json:"item_id" gorm:"not null;index"`
	Quantity   int        `json:"quantity" gorm:"not null"`
	UserID     uint       `json:"user_id" gorm:"not null"`
	SupplierID *uint      `json:"supplier_id,omitempty"`
	BorrowerID string     `json:"borrower_id,omitempty"`
	Notes      string     `json:"notes"`
	Status     string     `json:"status" gorm:"not null;default:'completed'"`
	Date       time.Time  `json:"date" gorm:"index"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (Transaction) TableName() string {
	return "transactions"
}

// ValidType reports whether t is one of the four known movement types
func ValidType(t string) bool {
	switch t {
	case TypeIn, TypeOut, TypeBorrow, TypeReturn:
		return true
	}
	return false
}

// StockDelta returns the signed stock effect of the transaction:
// in and return increase stock, out and borrow decrease it.
func (t *Transaction) StockDelta() int {
	return DeltaFor(t.Type, t.Quantity)
}

// DeltaFor computes the signed stock delta for a movement type and quantity
func DeltaFor(transactionType string, quantity int) int {
	if transactionType == TypeIn || transactionType == TypeReturn {
		return quantity
	}
	return -quantity
}

// TransactionRepository defines the contract for transaction data access
type TransactionRepository interface {
	Create(transaction *Transaction) error
	FindByID(id uint) (*Transaction, error)
	FindAll(limit, offset int) ([]Transaction, error)
	FindByItem(itemID uint, limit, offset int) ([]Transaction, error)
	FindByType(transactionType string, limit, offset int) ([]Transaction, error)
	Update(transaction *Transaction) error
	Delete(id uint) error
}
