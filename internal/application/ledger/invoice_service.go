package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/pos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxNumberAttempts bounds how often a unit of work is replayed after a
// document number collision before the conflict surfaces to the caller.
const maxNumberAttempts = 3

// InvoiceServiceConfig holds policy knobs for invoice capture
type InvoiceServiceConfig struct {
	// AllowNegativeStock permits sales to drive product stock below zero.
	// When false such sales are rejected with INSUFFICIENT_STOCK.
	AllowNegativeStock bool

	// Idempotency controls the fast-path replay guard
	Idempotency shared.IdempotencyConfig
}

// DefaultInvoiceServiceConfig returns the default capture policy
func DefaultInvoiceServiceConfig() InvoiceServiceConfig {
	return InvoiceServiceConfig{
		AllowNegativeStock: false,
		Idempotency:        shared.DefaultIdempotencyConfig(),
	}
}

// InvoiceService captures sales and purchases. Each capture runs as a single
// unit of work: invoice header and items, stock deltas, counterparty balance
// delta, cash transaction row, journal entry and account balances all commit
// together or not at all.
type InvoiceService struct {
	scope       TransactionScope
	poster      *finance.JournalPoster
	idempotency shared.IdempotencyStore
	config      InvoiceServiceConfig
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(scope TransactionScope, config InvoiceServiceConfig, logger *zap.Logger) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		scope:  scope,
		poster: finance.NewJournalPoster(),
		config: config,
		logger: logger,
	}
}

// SetIdempotencyStore sets the fast-path store for replay detection
func (s *InvoiceService) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotency = store
}

// ProcessSale captures a sales invoice: allocates the invoice number, writes
// the invoice and its items, issues stock for every line, records the cash
// received, moves any unpaid remainder onto the customer's balance and posts
// the journal entry. A NUMBER_CONFLICT from a concurrent capture replays the
// whole unit of work up to maxNumberAttempts times.
func (s *InvoiceService) ProcessSale(ctx context.Context, req ProcessInvoiceRequest) (*InvoiceResponse, error) {
	return s.process(ctx, trade.InvoiceTypeSale, req)
}

// ProcessPurchase captures a purchase invoice: symmetric to ProcessSale with
// positive stock deltas, latest-cost updates on every product, cash paid out
// and any unpaid remainder moved onto the supplier's balance.
func (s *InvoiceService) ProcessPurchase(ctx context.Context, req ProcessInvoiceRequest) (*InvoiceResponse, error) {
	return s.process(ctx, trade.InvoiceTypePurchase, req)
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	var response InvoiceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.Invoices().FindByID(ctx, id)
		if err != nil {
			return err
		}
		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByNumber retrieves an invoice by its document number
func (s *InvoiceService) GetByNumber(ctx context.Context, number string) (*InvoiceResponse, error) {
	var response InvoiceResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.Invoices().FindByNumber(ctx, number)
		if err != nil {
			return err
		}
		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, filter trade.InvoiceFilter) ([]InvoiceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	var responses []InvoiceResponse
	var total int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoices, err := repos.Invoices().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err = repos.Invoices().Count(ctx, filter)
		if err != nil {
			return err
		}
		responses = make([]InvoiceResponse, 0, len(invoices))
		for i := range invoices {
			responses = append(responses, ToInvoiceResponse(&invoices[i]))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

func (s *InvoiceService) process(ctx context.Context, invoiceType trade.InvoiceType, req ProcessInvoiceRequest) (*InvoiceResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	if replayed, err := s.replayedInvoice(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	} else if replayed != nil {
		return replayed, nil
	}

	var response InvoiceResponse
	var lastErr error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		lastErr = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
			invoice, replayed, err := s.capture(ctx, repos, invoiceType, req)
			if err != nil {
				return err
			}
			response = ToInvoiceResponse(invoice)
			response.Replayed = replayed
			return nil
		})
		if lastErr == nil {
			s.markProcessed(ctx, req.IdempotencyKey)
			return &response, nil
		}
		if !shared.IsRetryable(lastErr) {
			return nil, lastErr
		}
		s.logger.Warn("document number conflict, retrying capture",
			zap.String("invoice_type", invoiceType.String()),
			zap.Int("attempt", attempt),
		)
	}
	return nil, lastErr
}

// capture runs the full invoice sequence inside one transaction. The bool
// reports a replay: the key already belongs to a stored invoice and that
// invoice is returned instead of a new capture.
func (s *InvoiceService) capture(ctx context.Context, repos TransactionalRepositories, invoiceType trade.InvoiceType, req ProcessInvoiceRequest) (*trade.Invoice, bool, error) {
	// Authoritative replay check on the unique key column
	if req.IdempotencyKey != "" {
		existing, err := repos.Invoices().FindByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			return existing, true, nil
		}
		if !isNotFound(err) {
			return nil, false, err
		}
	}

	number, err := repos.Invoices().GenerateInvoiceNumber(ctx, invoiceType)
	if err != nil {
		return nil, false, err
	}

	invoice, err := trade.NewInvoice(number, invoiceType, req.CounterpartyID)
	if err != nil {
		return nil, false, err
	}
	if req.IdempotencyKey != "" {
		if err := invoice.SetIdempotencyKey(req.IdempotencyKey); err != nil {
			return nil, false, err
		}
	}
	if req.Notes != "" {
		invoice.SetNotes(req.Notes)
	}
	if req.InvoiceDate != nil {
		if err := invoice.SetInvoiceDate(*req.InvoiceDate); err != nil {
			return nil, false, err
		}
	}

	if err := s.applyItems(ctx, repos, invoice, req.Items); err != nil {
		return nil, false, err
	}

	if err := invoice.Settle(trade.PaymentType(req.PaymentType), req.PaidAmount); err != nil {
		return nil, false, err
	}

	if err := s.applyCounterpartyBalance(ctx, repos, invoice); err != nil {
		return nil, false, err
	}

	if err := s.postJournal(ctx, repos, invoice); err != nil {
		return nil, false, err
	}

	if err := s.recordCash(ctx, repos, invoice); err != nil {
		return nil, false, err
	}

	if err := repos.Invoices().Save(ctx, invoice); err != nil {
		return nil, false, err
	}

	s.logger.Info("invoice captured",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("type", invoice.Type.String()),
		zap.String("total", invoice.TotalAmount.String()),
		zap.String("status", invoice.Status.String()),
	)

	return invoice, false, nil
}

// applyItems adds every request line to the invoice and moves stock.
// Sales issue stock and price lines from the product's sale price when the
// request carries none. Purchases receive stock and record the observed unit
// cost as the product's latest purchase price.
func (s *InvoiceService) applyItems(ctx context.Context, repos TransactionalRepositories, invoice *trade.Invoice, items []InvoiceItemInput) error {
	for _, line := range items {
		product, err := repos.Products().FindByID(ctx, line.ProductID)
		if err != nil {
			return err
		}

		unitPrice := s.lineUnitPrice(invoice.Type, product, line.UnitPrice)
		if _, err := invoice.AddItem(product.ID, product.Name, line.Quantity, unitPrice); err != nil {
			return err
		}

		delta := line.Quantity
		if invoice.IsSale() {
			delta = delta.Neg()
		}
		if err := product.AdjustStock(delta, s.config.AllowNegativeStock || !invoice.IsSale()); err != nil {
			return err
		}

		if !invoice.IsSale() {
			if err := product.UpdatePurchasePrice(unitPrice); err != nil {
				return err
			}
		}

		if err := repos.Products().SaveWithLock(ctx, product); err != nil {
			return err
		}
	}
	return nil
}

func (s *InvoiceService) lineUnitPrice(invoiceType trade.InvoiceType, product *catalog.Product, override *decimal.Decimal) valueobject.Money {
	if override != nil {
		return valueobject.NewMoneyEGP(*override)
	}
	if invoiceType == trade.InvoiceTypeSale {
		return product.GetSalePriceMoney()
	}
	return product.GetPurchasePriceMoney()
}

// applyCounterpartyBalance moves any unpaid remainder onto the counterparty's
// running balance: customers owe more after a credit sale, the business owes
// suppliers more after a credit purchase.
func (s *InvoiceService) applyCounterpartyBalance(ctx context.Context, repos TransactionalRepositories, invoice *trade.Invoice) error {
	if !invoice.RemainingAmount.IsPositive() {
		return nil
	}

	if invoice.IsSale() {
		customer, err := repos.Customers().FindByID(ctx, *invoice.CounterpartyID)
		if err != nil {
			return err
		}
		if err := customer.AdjustBalance(invoice.RemainingAmount); err != nil {
			return err
		}
		return repos.Customers().SaveWithLock(ctx, customer)
	}

	supplier, err := repos.Suppliers().FindByID(ctx, *invoice.CounterpartyID)
	if err != nil {
		return err
	}
	if err := supplier.AdjustBalance(invoice.RemainingAmount); err != nil {
		return err
	}
	return repos.Suppliers().SaveWithLock(ctx, supplier)
}

// postJournal derives and persists the journal entry for the invoice and
// saves every account whose balance the posting moved.
func (s *InvoiceService) postJournal(ctx context.Context, repos TransactionalRepositories, invoice *trade.Invoice) error {
	chart, err := repos.Accounts().ResolveChart(ctx)
	if err != nil {
		return err
	}

	kind := finance.PostingKindSale
	if !invoice.IsSale() {
		kind = finance.PostingKindPurchase
	}

	entry, err := s.poster.Post(finance.PostingEvent{
		Kind:            kind,
		TotalAmount:     invoice.TotalAmount,
		PaidAmount:      invoice.PaidAmount,
		RemainingAmount: invoice.RemainingAmount,
		Reference:       invoice.InvoiceNumber,
		Description:     invoice.Type.String() + " invoice " + invoice.InvoiceNumber,
		EntryDate:       invoice.InvoiceDate,
	}, chart)
	if err != nil {
		return err
	}

	if err := repos.Journal().Save(ctx, entry); err != nil {
		return err
	}

	return saveTouchedAccounts(ctx, repos, entry, chart, nil)
}

// recordCash appends the cash audit row for the paid portion of the invoice.
// The cash account balance itself was already moved by the journal posting.
func (s *InvoiceService) recordCash(ctx context.Context, repos TransactionalRepositories, invoice *trade.Invoice) error {
	if !invoice.PaidAmount.IsPositive() {
		return nil
	}

	txType := finance.CashTransactionIncome
	description := "Sale invoice " + invoice.InvoiceNumber
	if !invoice.IsSale() {
		txType = finance.CashTransactionExpense
		description = "Purchase invoice " + invoice.InvoiceNumber
	}

	cashTx, err := finance.NewCashTransaction(invoice.PaidAmount, txType, description, invoice.InvoiceNumber)
	if err != nil {
		return err
	}
	return repos.Cash().Save(ctx, cashTx)
}

func (s *InvoiceService) validateRequest(req ProcessInvoiceRequest) error {
	if len(req.Items) == 0 {
		return shared.NewDomainError("EMPTY_INVOICE", "Invoice must have at least one item")
	}
	if !trade.PaymentType(req.PaymentType).IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type must be CASH or CREDIT")
	}
	if req.PaidAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot be negative")
	}
	return nil
}

// replayedInvoice is the fast-path idempotency check. A hit means the key
// was already committed, so the stored invoice is returned without opening a
// write transaction. The database key column remains the authoritative guard.
func (s *InvoiceService) replayedInvoice(ctx context.Context, key string) (*InvoiceResponse, error) {
	if key == "" || s.idempotency == nil || !s.config.Idempotency.Enabled {
		return nil, nil
	}

	processed, err := s.idempotency.IsProcessed(ctx, key)
	if err != nil {
		// Fast path only; fall through to the database check
		s.logger.Warn("idempotency store lookup failed", zap.Error(err))
		return nil, nil
	}
	if !processed {
		return nil, nil
	}

	var response InvoiceResponse
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.Invoices().FindByIdempotencyKey(ctx, key)
		if err != nil {
			return err
		}
		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			// Stale fast-path entry; capture normally
			return nil, nil
		}
		return nil, err
	}
	response.Replayed = true
	return &response, nil
}

func (s *InvoiceService) markProcessed(ctx context.Context, key string) {
	if key == "" || s.idempotency == nil || !s.config.Idempotency.Enabled {
		return
	}
	if _, err := s.idempotency.MarkProcessed(ctx, key, s.config.Idempotency.TTL); err != nil {
		s.logger.Warn("idempotency store mark failed", zap.Error(err))
	}
}

func isNotFound(err error) bool {
	de, ok := err.(*shared.DomainError)
	return ok && de.Code == shared.ErrNotFound.Code
}

// saveTouchedAccounts persists every account a journal entry posted to,
// exactly once each. target carries the voucher account when the entry did
// not come from the seeded chart.
func saveTouchedAccounts(ctx context.Context, repos TransactionalRepositories, entry *finance.JournalEntry, chart finance.Chart, target *finance.Account) error {
	byID := map[uuid.UUID]*finance.Account{}
	for _, account := range []*finance.Account{chart.Cash, chart.Receivables, chart.Payables, chart.Sales, chart.Purchases, target} {
		if account != nil {
			byID[account.ID] = account
		}
	}

	saved := map[uuid.UUID]bool{}
	for _, item := range entry.Items {
		account, ok := byID[item.AccountID]
		if !ok || saved[item.AccountID] {
			continue
		}
		if err := repos.Accounts().SaveWithLock(ctx, account); err != nil {
			return err
		}
		saved[item.AccountID] = true
	}
	return nil
}
