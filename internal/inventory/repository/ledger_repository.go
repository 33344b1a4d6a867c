package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hotelops/housekeeping-inventory/internal/inventory/domain"
)

// GormTransactionRepository implements TransactionRepository using GORM.
// Transactions are hard-deleted: a removed movement must fully vanish
// once its stock effect has been reverted.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GORM transaction repository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Transaction{})
}

func (r *GormTransactionRepository) Create(transaction *domain.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *GormTransactionRepository) FindByID(id uint) (*domain.Transaction, error) {
	var transaction domain.Transaction
	if err := r.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return &transaction, nil
}

func (r *GormTransactionRepository) FindAll(limit, offset int) ([]domain.Transaction, error) {
	return r.findWhere(r.db, limit, offset)
}

func (r *GormTransactionRepository) FindByItem(itemID uint, limit, offset int) ([]domain.Transaction, error) {
	return r.findWhere(r.db.Where("item_id = ?", itemID), limit, offset)
}

func (r *GormTransactionRepository) FindByType(transactionType string, limit, offset int) ([]domain.Transaction, error) {
	return r.findWhere(r.db.Where("type = ?", transactionType), limit, offset)
}

func (r *GormTransactionRepository) findWhere(query *gorm.DB, limit, offset int) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	query = query.Order("date DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}
	return transactions, nil
}

func (r *GormTransactionRepository) Update(transaction *domain.Transaction) error {
	if err := r.db.Save(transaction).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

func (r *GormTransactionRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Transaction{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// GormDepreciationRepository implements DepreciationRepository using GORM
type GormDepreciationRepository struct {
	db *gorm.DB
}

// NewGormDepreciationRepository creates a new GORM depreciation repository
func NewGormDepreciationRepository(db *gorm.DB) *GormDepreciationRepository {
	return &GormDepreciationRepository{db: db}
}

func (r *GormDepreciationRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Depreciation{})
}

func (r *GormDepreciationRepository) Create(depreciation *domain.Depreciation) error {
	if err := r.db.Create(depreciation).Error; err != nil {
		return fmt.Errorf("failed to create depreciation: %w", err)
	}
	return nil
}

func (r *GormDepreciationRepository) FindByID(id uint) (*domain.Depreciation, error) {
	var depreciation domain.Depreciation
	if err := r.db.First(&depreciation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDepreciationNotFound
		}
		return nil, fmt.Errorf("failed to find depreciation: %w", err)
	}
	return &depreciation, nil
}

func (r *GormDepreciationRepository) FindAll(limit, offset int) ([]domain.Depreciation, error) {
	return r.findWhere(r.db, limit, offset)
}

func (r *GormDepreciationRepository) FindByItem(itemID uint, limit, offset int) ([]domain.Depreciation, error) {
	return r.findWhere(r.db.Where("item_id = ?", itemID), limit, offset)
}

func (r *GormDepreciationRepository) findWhere(query *gorm.DB, limit, offset int) ([]domain.Depreciation, error) {
	var depreciations []domain.Depreciation
	query = query.Order("date DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&depreciations).Error; err != nil {
		return nil, fmt.Errorf("failed to find depreciations: %w", err)
	}
	return depreciations, nil
}

func (r *GormDepreciationRepository) Update(depreciation *domain.Depreciation) error {
	if err := r.db.Save(depreciation).Error; err != nil {
		return fmt.Errorf("failed to update depreciation: %w", err)
	}
	return nil
}

func (r *GormDepreciationRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Depreciation{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete depreciation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrDepreciationNotFound
	}
	return nil
}
