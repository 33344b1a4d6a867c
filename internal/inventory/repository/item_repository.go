package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GORM item repository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Item{})
}

func (r *GormItemRepository) Create(item *domain.Item) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

func (r *GormItemRepository) FindByID(id uint) (*domain.Item, error) {
	var item domain.Item
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return &item, nil
}

func (r *GormItemRepository) FindByCode(code string) (*domain.Item, error) {
	var item domain.Item
	if err := r.db.Where("code = ?", code).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item by code: %w", err)
	}
	return &item, nil
}

func (r *GormItemRepository) FindAll(limit, offset int) ([]domain.Item, error) {
	var items []domain.Item
	query := r.db.Order("id ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find items: %w", err)
	}
	return items, nil
}

func (r *GormItemRepository) Update(item *domain.Item) error {
	if err := r.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

func (r *GormItemRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Item{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// AdjustStock adds delta to the item's current stock in a single UPDATE.
// The increment happens inside the database, so concurrent adjustments
// against the same item never lose updates.
func (r *GormItemRepository) AdjustStock(itemID uint, delta int) error {
	result := r.db.Model(&domain.Item{}).
		Where("id = ?", itemID).
		Update("current_stock", gorm.Expr("current_stock + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *GormItemRepository) FindLowStock() ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.Where("current_stock <= min_stock AND status = ?", domain.ItemStatusActive).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find low stock items: %w", err)
	}
	return items, nil
}

func (r *GormItemRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Item{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

func (r *GormItemRepository) TotalStock() (int64, error) {
	var total int64
	err := r.db.Model(&domain.Item{}).
		Select("COALESCE(SUM(current_stock), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum stock: %w", err)
	}
	return total, nil
}

func (r *GormItemRepository) CountLowStock() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Item{}).
		Where("current_stock <= min_stock AND status = ?", domain.ItemStatusActive).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count low stock items: %w", err)
	}
	return count, nil
}
