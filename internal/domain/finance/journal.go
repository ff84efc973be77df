package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// JournalItem is one debit or credit line of a journal entry. Exactly one of
// DebitAmount and CreditAmount is non-zero.
type JournalItem struct {
	ID             uuid.UUID       `json:"id"`
	JournalEntryID uuid.UUID       `json:"journal_entry_id"`
	AccountID      uuid.UUID       `json:"account_id"`
	DebitAmount    decimal.Decimal `json:"debit_amount"`
	CreditAmount   decimal.Decimal `json:"credit_amount"`
}

// IsDebit reports whether the line is a debit line
func (i *JournalItem) IsDebit() bool {
	return i.DebitAmount.IsPositive()
}

// JournalEntry is an aggregate root representing one immutable double-entry
// record. It is created once, together with the invoice or voucher that
// caused it, and never mutated afterwards.
type JournalEntry struct {
	shared.BaseAggregateRoot
	EntryDate   time.Time     `json:"entry_date"`
	Description string        `json:"description"`
	Reference   string        `json:"reference"`
	Items       []JournalItem `json:"items"`
}

// NewJournalEntry creates a new empty journal entry
func NewJournalEntry(entryDate time.Time, description, reference string) (*JournalEntry, error) {
	if entryDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_ENTRY_DATE", "Entry date is required")
	}
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Journal reference cannot be empty")
	}

	return &JournalEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EntryDate:         entryDate,
		Description:       description,
		Reference:         reference,
		Items:             make([]JournalItem, 0),
	}, nil
}

// AddDebit appends a debit line for the given account
func (e *JournalEntry) AddDebit(accountID uuid.UUID, amount decimal.Decimal) error {
	return e.addItem(accountID, amount, decimal.Zero)
}

// AddCredit appends a credit line for the given account
func (e *JournalEntry) AddCredit(accountID uuid.UUID, amount decimal.Decimal) error {
	return e.addItem(accountID, decimal.Zero, amount)
}

func (e *JournalEntry) addItem(accountID uuid.UUID, debit, credit decimal.Decimal) error {
	if accountID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACCOUNT", "Journal item account ID cannot be empty")
	}
	amount := debit.Add(credit)
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Journal item amount must be positive")
	}

	e.Items = append(e.Items, JournalItem{
		ID:             uuid.New(),
		JournalEntryID: e.ID,
		AccountID:      accountID,
		DebitAmount:    debit,
		CreditAmount:   credit,
	})
	return nil
}

// TotalDebits returns the sum of all debit amounts
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.DebitAmount)
	}
	return total
}

// TotalCredits returns the sum of all credit amounts
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.CreditAmount)
	}
	return total
}

// IsBalanced reports whether total debits equal total credits
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebits().Equal(e.TotalCredits())
}

// AssertBalanced fails with an invariant-violation error if the entry is not
// balanced. Unreachable when the posting rules are applied correctly.
func (e *JournalEntry) AssertBalanced() error {
	if len(e.Items) == 0 {
		return shared.NewDomainError("EMPTY_ENTRY", "Journal entry has no items")
	}
	if !e.IsBalanced() {
		return shared.ErrImbalancedEntry
	}
	return nil
}
