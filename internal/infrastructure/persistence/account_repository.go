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

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds an account by its chart code
func (r *GormAccountRepository) FindByCode(ctx context.Context, code finance.AccountCode) (*finance.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", string(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all accounts matching the filter
func (r *GormAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Account, error) {
	var accountModels []models.AccountModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AccountModel{}), filter)

	if err := query.Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]finance.Account, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// FindActive finds all active accounts ordered by code
func (r *GormAccountRepository) FindActive(ctx context.Context) ([]finance.Account, error) {
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("code ASC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]finance.Account, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// ResolveChart loads the seeded accounts that invoice posting writes to.
// A missing account surfaces as MISSING_ACCOUNT so a partially seeded
// database fails the transaction instead of posting an incomplete entry.
func (r *GormAccountRepository) ResolveChart(ctx context.Context) (finance.Chart, error) {
	codes := []string{
		string(finance.AccountCodeCash),
		string(finance.AccountCodeReceivables),
		string(finance.AccountCodePayables),
		string(finance.AccountCodeSales),
		string(finance.AccountCodePurchases),
	}

	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("code IN ?", codes).
		Find(&accountModels).Error; err != nil {
		return finance.Chart{}, err
	}

	var chart finance.Chart
	for i := range accountModels {
		account := accountModels[i].ToDomain()
		switch account.Code {
		case finance.AccountCodeCash:
			chart.Cash = account
		case finance.AccountCodeReceivables:
			chart.Receivables = account
		case finance.AccountCodePayables:
			chart.Payables = account
		case finance.AccountCodeSales:
			chart.Sales = account
		case finance.AccountCodePurchases:
			chart.Purchases = account
		}
	}

	if chart.Cash == nil || chart.Receivables == nil || chart.Payables == nil ||
		chart.Sales == nil || chart.Purchases == nil {
		return finance.Chart{}, shared.ErrMissingAccount
	}
	return chart, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *finance.Account) error {
	model := models.AccountModelFromDomain(account)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves an account with optimistic locking (version check)
// Returns CONCURRENCY_CONFLICT if the version has changed underneath us
func (r *GormAccountRepository) SaveWithLock(ctx context.Context, account *finance.Account) error {
	model := models.AccountModelFromDomain(account)
	// Map form so a balance crossing back through zero still writes.
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", account.ID, account.Version-1).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"balance":    model.Balance,
			"is_active":  model.IsActive,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts accounts matching the filter
func (r *GormAccountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.AccountModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumBalanceByType calculates the total balance across accounts of a type
func (r *GormAccountRepository) SumBalanceByType(ctx context.Context, accountType finance.AccountType) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Select("COALESCE(SUM(balance), 0) as total").
		Where("type = ? AND is_active = ?", string(accountType), true).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// applyFilter applies filter options to the query
func (r *GormAccountRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, AccountSortFields, "code")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("code ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAccountRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}

	return query
}
