package domain

import (
	"time"
)

// Depreciation statuses
const (
	DepreciationCompleted = "completed"
	DepreciationPending   = "pending"
)

// Depreciation represents a write-off of damaged or lost stock.
// Its stock effect is always negative.
type Depreciation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ItemID    uint      `json:"item_id" gorm:"not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Reason    string    `json:"reason"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	Status    string    `json:"status" gorm:"not null;default:'completed'"`
	Date      time.Time `json:"date" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Depreciation) TableName() string {
	return "depreciations"
}

// StockDelta returns the signed stock effect of the depreciation
func (d *Depreciation) StockDelta() int {
	return -d.Quantity
}

// DepreciationRepository defines the contract for depreciation data access
type DepreciationRepository interface {
	Create(depreciation *Depreciation) error
	FindByID(id uint) (*Depreciation, error)
	FindAll(limit, offset int) ([]Depreciation, error)
	FindByItem(itemID uint, limit, offset int) ([]Depreciation, error)
	Update(depreciation *Depreciation) error
	Delete(id uint) error
}
