package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice domain entity.
// The unique index on InvoiceNumber turns the numbering race between
// concurrent captures into a retryable conflict; the unique index on
// IdempotencyKey makes replayed requests collide instead of double-posting.
type InvoiceModel struct {
	AggregateModel
	InvoiceNumber   string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type            string             `gorm:"type:varchar(10);not null;index"`
	CounterpartyID  *uuid.UUID         `gorm:"type:uuid;index"`
	TotalAmount     decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	PaidAmount      decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	RemainingAmount decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	PaymentType     string             `gorm:"type:varchar(10);not null"`
	Status          string             `gorm:"type:varchar(20);not null;index"`
	IdempotencyKey  *string            `gorm:"type:varchar(100);uniqueIndex"`
	Notes           string             `gorm:"type:text"`
	InvoiceDate     time.Time          `gorm:"not null;index"`
	Items           []InvoiceItemModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceItemModel is the persistence model for an invoice line.
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *trade.Invoice {
	items := make([]trade.InvoiceItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = trade.InvoiceItem{
			ID:          item.ID,
			InvoiceID:   item.InvoiceID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		}
	}
	return &trade.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		InvoiceNumber:     m.InvoiceNumber,
		Type:              trade.InvoiceType(m.Type),
		CounterpartyID:    m.CounterpartyID,
		Items:             items,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		RemainingAmount:   m.RemainingAmount,
		PaymentType:       trade.PaymentType(m.PaymentType),
		Status:            trade.InvoiceStatus(m.Status),
		IdempotencyKey:    m.IdempotencyKey,
		Notes:             m.Notes,
		InvoiceDate:       m.InvoiceDate,
	}
}

// InvoiceModelFromDomain builds a persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *trade.Invoice) *InvoiceModel {
	items := make([]InvoiceItemModel, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemModel{
			ID:          item.ID,
			InvoiceID:   item.InvoiceID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		}
	}
	m := &InvoiceModel{
		InvoiceNumber:   inv.InvoiceNumber,
		Type:            string(inv.Type),
		CounterpartyID:  inv.CounterpartyID,
		TotalAmount:     inv.TotalAmount,
		PaidAmount:      inv.PaidAmount,
		RemainingAmount: inv.RemainingAmount,
		PaymentType:     string(inv.PaymentType),
		Status:          string(inv.Status),
		IdempotencyKey:  inv.IdempotencyKey,
		Notes:           inv.Notes,
		InvoiceDate:     inv.InvoiceDate,
		Items:           items,
	}
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	return m
}
