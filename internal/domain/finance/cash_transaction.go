package finance

import (
	"time"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CashTransactionType classifies a cash movement
type CashTransactionType string

const (
	CashTransactionIncome  CashTransactionType = "INCOME"
	CashTransactionExpense CashTransactionType = "EXPENSE"
)

// IsValid checks if the cash transaction type is valid
func (t CashTransactionType) IsValid() bool {
	return t == CashTransactionIncome || t == CashTransactionExpense
}

// String returns the string representation of CashTransactionType
func (t CashTransactionType) String() string {
	return string(t)
}

// CashTransaction is one row of the append-only cash audit trail. Every
// mutation of the cash account records one. Rows are never updated or
// deleted.
type CashTransaction struct {
	shared.BaseEntity
	TransactionDate time.Time           `json:"transaction_date"`
	Amount          decimal.Decimal     `json:"amount"`
	Type            CashTransactionType `json:"type"`
	Description     string              `json:"description"`
	Reference       string              `json:"reference"`
}

// NewCashTransaction creates a new cash transaction record
func NewCashTransaction(amount decimal.Decimal, txType CashTransactionType, description, reference string) (*CashTransaction, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Cash transaction amount must be positive")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CASH_TYPE", "Cash transaction type is not valid")
	}

	return &CashTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		TransactionDate: time.Now(),
		Amount:          amount,
		Type:            txType,
		Description:     description,
		Reference:       reference,
	}, nil
}

// SignedAmount returns the amount with income positive and expense negative
func (t *CashTransaction) SignedAmount() decimal.Decimal {
	if t.Type == CashTransactionExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
