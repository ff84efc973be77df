package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCashTransactionRepository implements CashTransactionRepository using GORM
type GormCashTransactionRepository struct {
	db *gorm.DB
}

// NewGormCashTransactionRepository creates a new GormCashTransactionRepository
func NewGormCashTransactionRepository(db *gorm.DB) *GormCashTransactionRepository {
	return &GormCashTransactionRepository{db: db}
}

// FindByID finds a cash transaction by its ID
func (r *GormCashTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CashTransaction, error) {
	var model models.CashTransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds cash transactions matching the filter
func (r *GormCashTransactionRepository) FindAll(ctx context.Context, filter finance.CashTransactionFilter) ([]finance.CashTransaction, error) {
	var transactionModels []models.CashTransactionModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CashTransactionModel{}), filter)

	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]finance.CashTransaction, len(transactionModels))
	for i, model := range transactionModels {
		transactions[i] = *model.ToDomain()
	}
	return transactions, nil
}

// Save appends a cash transaction to the log
func (r *GormCashTransactionRepository) Save(ctx context.Context, transaction *finance.CashTransaction) error {
	model := models.CashTransactionModelFromDomain(transaction)
	return r.db.WithContext(ctx).Save(model).Error
}

// Count counts cash transactions matching the filter
func (r *GormCashTransactionRepository) Count(ctx context.Context, filter finance.CashTransactionFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CashTransactionModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByType calculates the total amount for a transaction type
func (r *GormCashTransactionRepository) SumByType(ctx context.Context, transactionType finance.CashTransactionType) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.CashTransactionModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("type = ?", string(transactionType)).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// applyFilter applies filter options to the query
func (r *GormCashTransactionRepository) applyFilter(query *gorm.DB, filter finance.CashTransactionFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, CashTransactionSortFields, "transaction_date")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("transaction_date DESC, created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCashTransactionRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.CashTransactionFilter) *gorm.DB {
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.FromDate != nil {
		query = query.Where("transaction_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("transaction_date <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("description LIKE ? OR reference LIKE ?", searchPattern, searchPattern)
	}

	return query
}
