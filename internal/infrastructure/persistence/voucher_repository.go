package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVoucherRepository implements VoucherRepository using GORM
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewGormVoucherRepository creates a new GormVoucherRepository
func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// FindByID finds a voucher by its ID
func (r *GormVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Voucher, error) {
	var model models.VoucherModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a voucher by its document number
func (r *GormVoucherRepository) FindByNumber(ctx context.Context, voucherNumber string) (*finance.Voucher, error) {
	var model models.VoucherModel
	if err := r.db.WithContext(ctx).
		Where("voucher_number = ?", voucherNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds vouchers matching the filter
func (r *GormVoucherRepository) FindAll(ctx context.Context, filter finance.VoucherFilter) ([]finance.Voucher, error) {
	var voucherModels []models.VoucherModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.VoucherModel{}), filter)

	if err := query.Find(&voucherModels).Error; err != nil {
		return nil, err
	}

	vouchers := make([]finance.Voucher, len(voucherModels))
	for i, model := range voucherModels {
		vouchers[i] = *model.ToDomain()
	}
	return vouchers, nil
}

// Save creates or updates a voucher. A duplicate document number surfaces
// as NUMBER_CONFLICT so the caller can regenerate and retry.
func (r *GormVoucherRepository) Save(ctx context.Context, voucher *finance.Voucher) error {
	model := models.VoucherModelFromDomain(voucher)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isDuplicateKey(err) {
			return shared.ErrNumberConflict
		}
		return err
	}
	return nil
}

// Count counts vouchers matching the filter
func (r *GormVoucherRepository) Count(ctx context.Context, filter finance.VoucherFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.VoucherModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateVoucherNumber generates the next document number for a voucher type.
// Format: RCV-YYYYMMDD-NNNN / PAY-YYYYMMDD-NNNN. The number is derived from a
// count, so two concurrent transactions can draw the same one; the unique
// index on voucher_number rejects the loser and the caller retries.
func (r *GormVoucherRepository) GenerateVoucherNumber(ctx context.Context, voucherType finance.VoucherType) (string, error) {
	prefix := "RCV"
	if voucherType == finance.VoucherTypePayment {
		prefix = "PAY"
	}
	today := time.Now().Format("20060102")

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.VoucherModel{}).
		Where("voucher_number LIKE ?", fmt.Sprintf("%s-%s-%%", prefix, today)).
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%04d", prefix, today, count+1), nil
}

// applyFilter applies filter options to the query
func (r *GormVoucherRepository) applyFilter(query *gorm.DB, filter finance.VoucherFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, VoucherSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormVoucherRepository) applyFilterWithoutPagination(query *gorm.DB, filter finance.VoucherFilter) *gorm.DB {
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("voucher_number LIKE ? OR description LIKE ?", searchPattern, searchPattern)
	}

	return query
}
