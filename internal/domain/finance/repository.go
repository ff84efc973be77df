package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for ledger account persistence
type AccountRepository interface {
	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByCode finds an account by its unique chart code
	FindByCode(ctx context.Context, code AccountCode) (*Account, error)

	// FindAll finds all accounts with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Account, error)

	// FindActive finds all active accounts
	FindActive(ctx context.Context) ([]Account, error)

	// ResolveChart resolves the seeded accounts used by invoice posting
	ResolveChart(ctx context.Context) (Chart, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *Account) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, account *Account) error

	// Count counts accounts with optional filters
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SumBalanceByType calculates the total balance across accounts of a type
	SumBalanceByType(ctx context.Context, accountType AccountType) (decimal.Decimal, error)
}

// JournalEntryFilter defines filtering options for journal queries
type JournalEntryFilter struct {
	shared.Filter
	Reference *string    // Filter by source document reference
	FromDate  *time.Time // Filter by entry date range start
	ToDate    *time.Time // Filter by entry date range end
	AccountID *uuid.UUID // Filter entries touching an account
}

// JournalEntryRepository defines the interface for journal entry persistence
type JournalEntryRepository interface {
	// FindByID finds a journal entry with its items
	FindByID(ctx context.Context, id uuid.UUID) (*JournalEntry, error)

	// FindByReference finds journal entries for a source document
	FindByReference(ctx context.Context, reference string) ([]JournalEntry, error)

	// FindAll finds journal entries with filtering
	FindAll(ctx context.Context, filter JournalEntryFilter) ([]JournalEntry, error)

	// Save persists a journal entry together with its items
	Save(ctx context.Context, entry *JournalEntry) error

	// Count counts journal entries with optional filters
	Count(ctx context.Context, filter JournalEntryFilter) (int64, error)

	// SumByAccount calculates net debits minus credits posted to an account
	SumByAccount(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
}

// CashTransactionFilter defines filtering options for cash log queries
type CashTransactionFilter struct {
	shared.Filter
	Type     *CashTransactionType // Filter by income or expense
	FromDate *time.Time           // Filter by transaction date range start
	ToDate   *time.Time           // Filter by transaction date range end
}

// CashTransactionRepository defines the interface for the cash audit log
type CashTransactionRepository interface {
	// FindByID finds a cash transaction by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CashTransaction, error)

	// FindAll finds cash transactions with filtering
	FindAll(ctx context.Context, filter CashTransactionFilter) ([]CashTransaction, error)

	// Save appends a cash transaction to the log
	Save(ctx context.Context, transaction *CashTransaction) error

	// Count counts cash transactions with optional filters
	Count(ctx context.Context, filter CashTransactionFilter) (int64, error)

	// SumByType calculates the total amount for a transaction type
	SumByType(ctx context.Context, transactionType CashTransactionType) (decimal.Decimal, error)
}

// VoucherFilter defines filtering options for voucher queries
type VoucherFilter struct {
	shared.Filter
	Type      *VoucherType   // Filter by receipt or payment
	Status    *VoucherStatus // Filter by status
	AccountID *uuid.UUID     // Filter by target account
	FromDate  *time.Time     // Filter by creation date range start
	ToDate    *time.Time     // Filter by creation date range end
}

// VoucherRepository defines the interface for voucher persistence
type VoucherRepository interface {
	// FindByID finds a voucher by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Voucher, error)

	// FindByNumber finds a voucher by its document number
	FindByNumber(ctx context.Context, voucherNumber string) (*Voucher, error)

	// FindAll finds vouchers with filtering
	FindAll(ctx context.Context, filter VoucherFilter) ([]Voucher, error)

	// Save creates or updates a voucher
	Save(ctx context.Context, voucher *Voucher) error

	// Count counts vouchers with optional filters
	Count(ctx context.Context, filter VoucherFilter) (int64, error)

	// GenerateVoucherNumber generates the next document number for a voucher
	// type. Uniqueness is enforced by the storage layer; a clash surfaces as
	// NUMBER_CONFLICT when the voucher is saved.
	GenerateVoucherNumber(ctx context.Context, voucherType VoucherType) (string, error)
}
