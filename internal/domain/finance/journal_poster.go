package finance

import (
	"fmt"
	"time"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PostingKind classifies the economic event being posted to the ledger
type PostingKind string

const (
	PostingKindSale     PostingKind = "SALE"
	PostingKindPurchase PostingKind = "PURCHASE"
	PostingKindReceipt  PostingKind = "RECEIPT"
	PostingKindPayment  PostingKind = "PAYMENT"
)

// IsValid checks if the posting kind is valid
func (k PostingKind) IsValid() bool {
	switch k {
	case PostingKindSale, PostingKindPurchase, PostingKindReceipt, PostingKindPayment:
		return true
	}
	return false
}

// PostingEvent is a classified economic event handed to the journal poster.
// Invoice kinds carry total/paid/remaining; voucher kinds carry the total
// amount and the target account.
type PostingEvent struct {
	Kind            PostingKind
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
	TargetAccount   *Account // vouchers only
	Reference       string
	Description     string
	EntryDate       time.Time
}

// Chart bundles the seeded accounts needed to post invoice events. Resolved
// by code from the account repository at the start of each unit of work.
type Chart struct {
	Cash        *Account
	Receivables *Account
	Payables    *Account
	Sales       *Account
	Purchases   *Account
}

func (c Chart) require(name string, account *Account) (*Account, error) {
	if account == nil {
		return nil, shared.NewDomainError(shared.ErrMissingAccount.Code,
			fmt.Sprintf("Seeded %s account is missing from the chart of accounts", name))
	}
	return account, nil
}

// JournalPoster derives the balanced set of debit/credit lines for an event
// and applies each line to the running balance of its account. Applying the
// balance here, once per line, keeps every account balance equal to the net
// of journal items ever posted to it.
type JournalPoster struct{}

// NewJournalPoster creates a new JournalPoster
func NewJournalPoster() *JournalPoster {
	return &JournalPoster{}
}

// Post derives and returns the journal entry for the event. The entry and
// the mutated accounts must be persisted by the caller within the same unit
// of work.
//
// Posting rules:
//   - sale:     Dr Cash(paid>0), Dr Receivables(remaining>0) / Cr Sales(total)
//   - purchase: Dr Purchases(total) / Cr Cash(paid>0), Cr Payables(remaining>0)
//   - receipt:  Dr target account(total)
//   - payment:  Cr target account(total)
//
// Voucher kinds post a single leg; the offsetting movement is implicit in
// the cash transaction log rather than a second journal line.
func (p *JournalPoster) Post(event PostingEvent, chart Chart) (*JournalEntry, error) {
	if !event.Kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_POSTING_KIND", "Posting kind is not valid")
	}
	if err := p.validateAmounts(event); err != nil {
		return nil, err
	}

	entryDate := event.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}
	entry, err := NewJournalEntry(entryDate, event.Description, event.Reference)
	if err != nil {
		return nil, err
	}

	switch event.Kind {
	case PostingKindSale:
		err = p.postSale(entry, event, chart)
	case PostingKindPurchase:
		err = p.postPurchase(entry, event, chart)
	case PostingKindReceipt, PostingKindPayment:
		err = p.postVoucher(entry, event)
	}
	if err != nil {
		return nil, err
	}

	if event.Kind == PostingKindSale || event.Kind == PostingKindPurchase {
		if err := entry.AssertBalanced(); err != nil {
			return nil, err
		}
	}

	return entry, nil
}

func (p *JournalPoster) validateAmounts(event PostingEvent) error {
	if !event.TotalAmount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Posting total must be positive")
	}
	if event.PaidAmount.IsNegative() || event.RemainingAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Paid and remaining amounts cannot be negative")
	}
	if event.Kind == PostingKindSale || event.Kind == PostingKindPurchase {
		if !event.TotalAmount.Equal(event.PaidAmount.Add(event.RemainingAmount)) {
			return shared.NewDomainError("INVALID_AMOUNT", "Total amount must equal paid plus remaining")
		}
	}
	return nil
}

func (p *JournalPoster) postSale(entry *JournalEntry, event PostingEvent, chart Chart) error {
	sales, err := chart.require("sales", chart.Sales)
	if err != nil {
		return err
	}
	if event.PaidAmount.IsPositive() {
		cash, err := chart.require("cash", chart.Cash)
		if err != nil {
			return err
		}
		if err := p.debit(entry, cash, event.PaidAmount); err != nil {
			return err
		}
	}
	if event.RemainingAmount.IsPositive() {
		receivables, err := chart.require("receivables", chart.Receivables)
		if err != nil {
			return err
		}
		if err := p.debit(entry, receivables, event.RemainingAmount); err != nil {
			return err
		}
	}
	return p.credit(entry, sales, event.TotalAmount)
}

func (p *JournalPoster) postPurchase(entry *JournalEntry, event PostingEvent, chart Chart) error {
	purchases, err := chart.require("purchases", chart.Purchases)
	if err != nil {
		return err
	}
	if err := p.debit(entry, purchases, event.TotalAmount); err != nil {
		return err
	}
	if event.PaidAmount.IsPositive() {
		cash, err := chart.require("cash", chart.Cash)
		if err != nil {
			return err
		}
		if err := p.credit(entry, cash, event.PaidAmount); err != nil {
			return err
		}
	}
	if event.RemainingAmount.IsPositive() {
		payables, err := chart.require("payables", chart.Payables)
		if err != nil {
			return err
		}
		if err := p.credit(entry, payables, event.RemainingAmount); err != nil {
			return err
		}
	}
	return nil
}

func (p *JournalPoster) postVoucher(entry *JournalEntry, event PostingEvent) error {
	if event.TargetAccount == nil {
		return shared.NewDomainError("INVALID_ACCOUNT", "Voucher posting requires a target account")
	}
	if event.Kind == PostingKindReceipt {
		return p.debit(entry, event.TargetAccount, event.TotalAmount)
	}
	return p.credit(entry, event.TargetAccount, event.TotalAmount)
}

func (p *JournalPoster) debit(entry *JournalEntry, account *Account, amount decimal.Decimal) error {
	if err := entry.AddDebit(account.ID, amount); err != nil {
		return err
	}
	return account.ApplyDebit(amount)
}

func (p *JournalPoster) credit(entry *JournalEntry, account *Account, amount decimal.Decimal) error {
	if err := entry.AddCredit(account.ID, amount); err != nil {
		return err
	}
	return account.ApplyCredit(amount)
}
