package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes sales invoices from purchase invoices
type InvoiceType string

const (
	InvoiceTypeSale     InvoiceType = "SALE"
	InvoiceTypePurchase InvoiceType = "PURCHASE"
)

// IsValid checks if the type is a valid InvoiceType
func (t InvoiceType) IsValid() bool {
	return t == InvoiceTypeSale || t == InvoiceTypePurchase
}

// String returns the string representation of InvoiceType
func (t InvoiceType) String() string {
	return string(t)
}

// InvoiceStatus represents the settlement status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "PENDING"
	InvoiceStatusCompleted InvoiceStatus = "COMPLETED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusCompleted
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// PaymentType represents how an invoice is settled at capture time
type PaymentType string

const (
	PaymentTypeCash   PaymentType = "CASH"
	PaymentTypeCredit PaymentType = "CREDIT"
)

// IsValid checks if the payment type is valid
func (p PaymentType) IsValid() bool {
	return p == PaymentTypeCash || p == PaymentTypeCredit
}

// InvoiceItem represents a line item on an invoice
type InvoiceItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal // Quantity * UnitPrice
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewInvoiceItem creates a new invoice line item
func NewInvoiceItem(invoiceID, productID uuid.UUID, productName string, quantity decimal.Decimal, unitPrice valueobject.Money) (*InvoiceItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &InvoiceItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		TotalPrice:  quantity.Mul(unitPrice.Amount()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetTotalPriceMoney returns the line total as Money value object
func (i *InvoiceItem) GetTotalPriceMoney() valueobject.Money {
	return valueobject.NewMoneyEGP(i.TotalPrice)
}

// Invoice represents a captured sale or purchase transaction.
// Settlement amounts always satisfy TotalAmount = PaidAmount + RemainingAmount.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber   string
	Type            InvoiceType
	CounterpartyID  *uuid.UUID // Customer for sales, supplier for purchases
	Items           []InvoiceItem
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
	PaymentType     PaymentType
	Status          InvoiceStatus
	IdempotencyKey  *string
	Notes           string
	InvoiceDate     time.Time
}

// NewInvoice creates a new invoice shell. Items are added with AddItem and
// settlement is fixed with Settle before the invoice is persisted.
func NewInvoice(invoiceNumber string, invoiceType InvoiceType, counterpartyID *uuid.UUID) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if !invoiceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INVOICE_TYPE", "Invoice type must be SALE or PURCHASE")
	}
	if counterpartyID != nil && *counterpartyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty ID cannot be the zero UUID")
	}

	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		Type:              invoiceType,
		CounterpartyID:    counterpartyID,
		Items:             make([]InvoiceItem, 0),
		TotalAmount:       decimal.Zero,
		PaidAmount:        decimal.Zero,
		RemainingAmount:   decimal.Zero,
		PaymentType:       PaymentTypeCash,
		Status:            InvoiceStatusPending,
		InvoiceDate:       time.Now(),
	}, nil
}

// AddItem adds a line item and folds it into the total
func (inv *Invoice) AddItem(productID uuid.UUID, productName string, quantity decimal.Decimal, unitPrice valueobject.Money) (*InvoiceItem, error) {
	item, err := NewInvoiceItem(inv.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	inv.Items = append(inv.Items, *item)
	inv.TotalAmount = inv.TotalAmount.Add(item.TotalPrice)
	inv.UpdatedAt = time.Now()

	return item, nil
}

// Settle fixes the settlement split for the invoice. Cash settlement forces
// the full total to be paid immediately. Credit settlement accepts a partial
// payment and leaves the remainder on the counterparty's balance, which
// requires a counterparty to be set.
func (inv *Invoice) Settle(paymentType PaymentType, paidAmount decimal.Decimal) error {
	if len(inv.Items) == 0 {
		return shared.NewDomainError("EMPTY_INVOICE", "Invoice must have at least one item")
	}
	if !paymentType.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type must be CASH or CREDIT")
	}
	if paidAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot be negative")
	}
	if paidAmount.GreaterThan(inv.TotalAmount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot exceed the invoice total")
	}

	if paymentType == PaymentTypeCash {
		paidAmount = inv.TotalAmount
	}

	remaining := inv.TotalAmount.Sub(paidAmount)
	if remaining.IsPositive() && inv.CounterpartyID == nil {
		return shared.NewDomainError("MISSING_COUNTERPARTY", "Credit settlement with an outstanding balance requires a counterparty")
	}

	inv.PaymentType = paymentType
	inv.PaidAmount = paidAmount
	inv.RemainingAmount = remaining
	if remaining.IsZero() {
		inv.Status = InvoiceStatusCompleted
	} else {
		inv.Status = InvoiceStatusPending
	}
	inv.IncrementVersion()
	inv.UpdatedAt = time.Now()

	return nil
}

// SetIdempotencyKey attaches the client supplied replay guard key
func (inv *Invoice) SetIdempotencyKey(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_IDEMPOTENCY_KEY", "Idempotency key cannot be empty")
	}
	if len(key) > 100 {
		return shared.NewDomainError("INVALID_IDEMPOTENCY_KEY", "Idempotency key cannot exceed 100 characters")
	}
	inv.IdempotencyKey = &key
	return nil
}

// SetNotes sets free-form notes on the invoice
func (inv *Invoice) SetNotes(notes string) {
	inv.Notes = notes
	inv.UpdatedAt = time.Now()
}

// SetInvoiceDate overrides the capture timestamp
func (inv *Invoice) SetInvoiceDate(date time.Time) error {
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Invoice date cannot be zero")
	}
	inv.InvoiceDate = date
	return nil
}

// IsSale reports whether this is a sales invoice
func (inv *Invoice) IsSale() bool {
	return inv.Type == InvoiceTypeSale
}

// GetTotalMoney returns the invoice total as Money value object
func (inv *Invoice) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyEGP(inv.TotalAmount)
}

// Validate checks the settlement arithmetic before persistence
func (inv *Invoice) Validate() error {
	if len(inv.Items) == 0 {
		return shared.NewDomainError("EMPTY_INVOICE", "Invoice must have at least one item")
	}
	if !inv.TotalAmount.Equal(inv.PaidAmount.Add(inv.RemainingAmount)) {
		return shared.NewDomainError("INVALID_AMOUNT", "Total amount must equal paid plus remaining")
	}
	itemSum := decimal.Zero
	for _, item := range inv.Items {
		itemSum = itemSum.Add(item.TotalPrice)
	}
	if !itemSum.Equal(inv.TotalAmount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Invoice total must equal the sum of line totals")
	}
	return nil
}
