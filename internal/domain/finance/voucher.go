package finance

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// VoucherType classifies a manual cash-affecting document
type VoucherType string

const (
	VoucherTypeReceipt VoucherType = "RECEIPT"
	VoucherTypePayment VoucherType = "PAYMENT"
)

// IsValid checks if the voucher type is valid
func (t VoucherType) IsValid() bool {
	return t == VoucherTypeReceipt || t == VoucherTypePayment
}

// String returns the string representation of VoucherType
func (t VoucherType) String() string {
	return string(t)
}

// VoucherStatus represents the status of a voucher
type VoucherStatus string

const (
	VoucherStatusPending   VoucherStatus = "PENDING"
	VoucherStatusCompleted VoucherStatus = "COMPLETED"
)

// Voucher is a manual cash-affecting document, structurally parallel to an
// invoice but without line items. Posting it adjusts the target account and,
// when the target is the cash account, records a cash transaction.
type Voucher struct {
	shared.BaseAggregateRoot
	VoucherNumber string          `json:"voucher_number"`
	Type          VoucherType     `json:"voucher_type"`
	AccountID     uuid.UUID       `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Status        VoucherStatus   `json:"status"`
}

// NewVoucher creates a new completed voucher
func NewVoucher(voucherNumber string, voucherType VoucherType, accountID uuid.UUID, amount valueobject.Money, description string) (*Voucher, error) {
	if voucherNumber == "" {
		return nil, shared.NewDomainError("INVALID_VOUCHER_NUMBER", "Voucher number cannot be empty")
	}
	if !voucherType.IsValid() {
		return nil, shared.NewDomainError("INVALID_VOUCHER_TYPE", "Voucher type must be RECEIPT or PAYMENT")
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Voucher account ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Voucher amount must be positive")
	}

	return &Voucher{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VoucherNumber:     voucherNumber,
		Type:              voucherType,
		AccountID:         accountID,
		Amount:            amount.Amount(),
		Description:       description,
		Status:            VoucherStatusCompleted,
	}, nil
}

// GetAmountMoney returns the amount as Money value object
func (v *Voucher) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEGP(v.Amount)
}

// CashEffect returns the cash transaction type this voucher causes when its
// target is the cash account: receipts bring cash in, payments pay cash out.
func (v *Voucher) CashEffect() CashTransactionType {
	if v.Type == VoucherTypeReceipt {
		return CashTransactionIncome
	}
	return CashTransactionExpense
}
