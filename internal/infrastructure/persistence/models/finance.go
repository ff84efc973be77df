package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for the Account domain entity.
type AccountModel struct {
	AggregateModel
	Code     string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name     string          `gorm:"type:varchar(100);not null"`
	Type     string          `gorm:"type:varchar(20);not null"`
	Balance  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ParentID *uuid.UUID      `gorm:"type:uuid;index"`
	IsActive bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *finance.Account {
	return &finance.Account{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              finance.AccountCode(m.Code),
		Name:              m.Name,
		Type:              finance.AccountType(m.Type),
		Balance:           m.Balance,
		ParentID:          m.ParentID,
		IsActive:          m.IsActive,
	}
}

// AccountModelFromDomain builds a persistence model from a domain Account.
func AccountModelFromDomain(a *finance.Account) *AccountModel {
	m := &AccountModel{
		Code:     string(a.Code),
		Name:     a.Name,
		Type:     string(a.Type),
		Balance:  a.Balance,
		ParentID: a.ParentID,
		IsActive: a.IsActive,
	}
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	return m
}

// JournalEntryModel is the persistence model for the JournalEntry domain entity.
type JournalEntryModel struct {
	AggregateModel
	EntryDate   time.Time          `gorm:"not null;index"`
	Description string             `gorm:"type:text"`
	Reference   string             `gorm:"type:varchar(50);not null;index"`
	Items       []JournalItemModel `gorm:"foreignKey:JournalEntryID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (JournalEntryModel) TableName() string {
	return "journal_entries"
}

// JournalItemModel is the persistence model for a journal entry line.
type JournalItemModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	JournalEntryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	DebitAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreditAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (JournalItemModel) TableName() string {
	return "journal_items"
}

// ToDomain converts the persistence model to a domain JournalEntry entity.
func (m *JournalEntryModel) ToDomain() *finance.JournalEntry {
	items := make([]finance.JournalItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = finance.JournalItem{
			ID:             item.ID,
			JournalEntryID: item.JournalEntryID,
			AccountID:      item.AccountID,
			DebitAmount:    item.DebitAmount,
			CreditAmount:   item.CreditAmount,
		}
	}
	return &finance.JournalEntry{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		EntryDate:         m.EntryDate,
		Description:       m.Description,
		Reference:         m.Reference,
		Items:             items,
	}
}

// JournalEntryModelFromDomain builds a persistence model from a domain JournalEntry.
func JournalEntryModelFromDomain(e *finance.JournalEntry) *JournalEntryModel {
	items := make([]JournalItemModel, len(e.Items))
	for i, item := range e.Items {
		items[i] = JournalItemModel{
			ID:             item.ID,
			JournalEntryID: item.JournalEntryID,
			AccountID:      item.AccountID,
			DebitAmount:    item.DebitAmount,
			CreditAmount:   item.CreditAmount,
		}
	}
	m := &JournalEntryModel{
		EntryDate:   e.EntryDate,
		Description: e.Description,
		Reference:   e.Reference,
		Items:       items,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}

// CashTransactionModel is the persistence model for the cash audit log.
type CashTransactionModel struct {
	BaseModel
	TransactionDate time.Time       `gorm:"not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Type            string          `gorm:"type:varchar(10);not null;index"`
	Description     string          `gorm:"type:text"`
	Reference       string          `gorm:"type:varchar(50);index"`
}

// TableName returns the table name for GORM
func (CashTransactionModel) TableName() string {
	return "cash_transactions"
}

// ToDomain converts the persistence model to a domain CashTransaction entity.
func (m *CashTransactionModel) ToDomain() *finance.CashTransaction {
	return &finance.CashTransaction{
		BaseEntity:      m.BaseModel.ToDomain(),
		TransactionDate: m.TransactionDate,
		Amount:          m.Amount,
		Type:            finance.CashTransactionType(m.Type),
		Description:     m.Description,
		Reference:       m.Reference,
	}
}

// CashTransactionModelFromDomain builds a persistence model from a domain CashTransaction.
func CashTransactionModelFromDomain(t *finance.CashTransaction) *CashTransactionModel {
	m := &CashTransactionModel{
		TransactionDate: t.TransactionDate,
		Amount:          t.Amount,
		Type:            string(t.Type),
		Description:     t.Description,
		Reference:       t.Reference,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}

// VoucherModel is the persistence model for the Voucher domain entity.
// The unique index on VoucherNumber is what turns a numbering race between
// concurrent transactions into a retryable conflict.
type VoucherModel struct {
	AggregateModel
	VoucherNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type          string          `gorm:"type:varchar(10);not null;index"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description   string          `gorm:"type:text"`
	Status        string          `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (VoucherModel) TableName() string {
	return "vouchers"
}

// ToDomain converts the persistence model to a domain Voucher entity.
func (m *VoucherModel) ToDomain() *finance.Voucher {
	return &finance.Voucher{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		VoucherNumber:     m.VoucherNumber,
		Type:              finance.VoucherType(m.Type),
		AccountID:         m.AccountID,
		Amount:            m.Amount,
		Description:       m.Description,
		Status:            finance.VoucherStatus(m.Status),
	}
}

// VoucherModelFromDomain builds a persistence model from a domain Voucher.
func VoucherModelFromDomain(v *finance.Voucher) *VoucherModel {
	m := &VoucherModel{
		VoucherNumber: v.VoucherNumber,
		Type:          string(v.Type),
		AccountID:     v.AccountID,
		Amount:        v.Amount,
		Description:   v.Description,
		Status:        string(v.Status),
	}
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	return m
}
