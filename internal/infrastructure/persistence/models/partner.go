package models

import (
	"github.com/pos/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity.
// Balance is a denormalized mirror of the receivables ledger.
type CustomerModel struct {
	AggregateModel
	Name     string          `gorm:"type:varchar(200);not null;index"`
	Phone    string          `gorm:"type:varchar(20)"`
	Address  string          `gorm:"type:text"`
	Balance  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsActive bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Phone:             m.Phone,
		Address:           m.Address,
		Balance:           m.Balance,
		IsActive:          m.IsActive,
	}
}

// CustomerModelFromDomain builds a persistence model from a domain Customer.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{
		Name:     c.Name,
		Phone:    c.Phone,
		Address:  c.Address,
		Balance:  c.Balance,
		IsActive: c.IsActive,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// SupplierModel is the persistence model for the Supplier domain entity.
// Balance is a denormalized mirror of the payables ledger.
type SupplierModel struct {
	AggregateModel
	Name     string          `gorm:"type:varchar(200);not null;index"`
	Phone    string          `gorm:"type:varchar(20)"`
	Address  string          `gorm:"type:text"`
	Balance  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsActive bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier entity.
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Phone:             m.Phone,
		Address:           m.Address,
		Balance:           m.Balance,
		IsActive:          m.IsActive,
	}
}

// SupplierModelFromDomain builds a persistence model from a domain Supplier.
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{
		Name:     s.Name,
		Phone:    s.Phone,
		Address:  s.Address,
		Balance:  s.Balance,
		IsActive: s.IsActive,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}
