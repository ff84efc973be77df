package ledger

import (
	"context"

	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a ledger
// operation touches. When a function is executed within a transaction scope,
// all repository operations are part of the same database transaction and are
// committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a
// transaction. All repositories returned share the same underlying database
// transaction, so an invoice, its stock deltas, balance deltas, cash row and
// journal entry either all land or none do.
type TransactionalRepositories interface {
	// Invoices returns the invoice repository scoped to the current transaction
	Invoices() trade.InvoiceRepository
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Accounts returns the account repository scoped to the current transaction
	Accounts() finance.AccountRepository
	// Journal returns the journal entry repository scoped to the current transaction
	Journal() finance.JournalEntryRepository
	// Cash returns the cash transaction repository scoped to the current transaction
	Cash() finance.CashTransactionRepository
	// Vouchers returns the voucher repository scoped to the current transaction
	Vouchers() finance.VoucherRepository
	// Customers returns the customer repository scoped to the current transaction
	Customers() partner.CustomerRepository
	// Suppliers returns the supplier repository scoped to the current transaction
	Suppliers() partner.SupplierRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with mock repositories.
type NoOpTransactionScope struct {
	InvoiceRepo  trade.InvoiceRepository
	ProductRepo  catalog.ProductRepository
	AccountRepo  finance.AccountRepository
	JournalRepo  finance.JournalEntryRepository
	CashRepo     finance.CashTransactionRepository
	VoucherRepo  finance.VoucherRepository
	CustomerRepo partner.CustomerRepository
	SupplierRepo partner.SupplierRepository
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Invoices returns the invoice repository.
func (s *NoOpTransactionScope) Invoices() trade.InvoiceRepository { return s.InvoiceRepo }

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository { return s.ProductRepo }

// Accounts returns the account repository.
func (s *NoOpTransactionScope) Accounts() finance.AccountRepository { return s.AccountRepo }

// Journal returns the journal entry repository.
func (s *NoOpTransactionScope) Journal() finance.JournalEntryRepository { return s.JournalRepo }

// Cash returns the cash transaction repository.
func (s *NoOpTransactionScope) Cash() finance.CashTransactionRepository { return s.CashRepo }

// Vouchers returns the voucher repository.
func (s *NoOpTransactionScope) Vouchers() finance.VoucherRepository { return s.VoucherRepo }

// Customers returns the customer repository.
func (s *NoOpTransactionScope) Customers() partner.CustomerRepository { return s.CustomerRepo }

// Suppliers returns the supplier repository.
func (s *NoOpTransactionScope) Suppliers() partner.SupplierRepository { return s.SupplierRepo }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
