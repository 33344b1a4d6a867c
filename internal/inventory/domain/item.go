package domain

import (
	"time"
)

// Item statuses
const (
	ItemStatusActive   = "active"
	ItemStatusInactive = "inactive"
)

// Item represents a housekeeping inventory item. CurrentStock is only
// ever mutated through ItemRepository.AdjustStock so concurrent
// movements never clobber each other.
type Item struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Code         string    `json:"code" gorm:"uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"not null"`
	CategoryID   uint      `json:"category_id" gorm:"index"`
	Description  string    `json:"description"`
	Unit         string    `json:"unit" gorm:"not null"`
	MinStock     int       `json:"min_stock" gorm:"not null;default:0"`
	CurrentStock int       `json:"current_stock" gorm:"not null;default:0"`
	Location     string    `json:"location"`
	SupplierID   uint      `json:"supplier_id" gorm:"index"`
	Price        float64   `json:"price"`
	Status       string    `json:"status" gorm:"not null;default:'active'"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Item) TableName() string {
	return "items"
}

// IsLowStock reports whether the item is at or below its minimum stock
func (i *Item) IsLowStock() bool {
	return i.CurrentStock <= i.MinStock
}

// ItemRepository defines the contract for item data access.
// AdjustStock must be atomic at the store level: a single UPDATE that
// adds the delta to current_stock, never a read-modify-write.
type ItemRepository interface {
	Create(item *Item) error
	FindByID(id uint) (*Item, error)
	FindByCode(code string) (*Item, error)
	FindAll(limit, offset int) ([]Item, error)
	Update(item *Item) error
	Delete(id uint) error
	AdjustStock(itemID uint, delta int) error
	FindLowStock() ([]Item, error)
	Count() (int64, error)
	TotalStock() (int64, error)
	CountLowStock() (int64, error)
}
