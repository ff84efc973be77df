package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared"
)

// Service handles customer and supplier maintenance. Balances move only
// through invoice capture and settlement, never through this service.
type Service struct {
	customerRepo partner.CustomerRepository
	supplierRepo partner.SupplierRepository
}

// NewService creates a new partner service
func NewService(customerRepo partner.CustomerRepository, supplierRepo partner.SupplierRepository) *Service {
	return &Service{
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
	}
}

// CreateCustomer creates a new customer
func (s *Service) CreateCustomer(ctx context.Context, req CreatePartnerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// UpdateCustomer updates an existing customer
func (s *Service) UpdateCustomer(ctx context.Context, id uuid.UUID, req UpdatePartnerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, phone, address := customer.Name, customer.Phone, customer.Address
	if req.Name != nil {
		name = *req.Name
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Address != nil {
		address = *req.Address
	}
	if err := customer.UpdateDetails(name, phone, address); err != nil {
		return nil, err
	}
	if req.IsActive != nil && !*req.IsActive {
		customer.Deactivate()
	}

	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetCustomer retrieves a customer by ID
func (s *Service) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// ListCustomers retrieves customers with filtering and pagination
func (s *Service) ListCustomers(ctx context.Context, filter partner.PartnerFilter) ([]CustomerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, ToCustomerResponse(&customers[i]))
	}
	return responses, total, nil
}

// DeleteCustomer removes a customer without outstanding balance
func (s *Service) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if customer.HasOutstandingBalance() {
		return shared.NewDomainError("OUTSTANDING_BALANCE", "Cannot delete a customer with an outstanding balance")
	}
	return s.customerRepo.Delete(ctx, id)
}

// CreateSupplier creates a new supplier
func (s *Service) CreateSupplier(ctx context.Context, req CreatePartnerRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// UpdateSupplier updates an existing supplier
func (s *Service) UpdateSupplier(ctx context.Context, id uuid.UUID, req UpdatePartnerRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, phone, address := supplier.Name, supplier.Phone, supplier.Address
	if req.Name != nil {
		name = *req.Name
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Address != nil {
		address = *req.Address
	}
	if err := supplier.UpdateDetails(name, phone, address); err != nil {
		return nil, err
	}
	if req.IsActive != nil && !*req.IsActive {
		supplier.Deactivate()
	}

	if err := s.supplierRepo.SaveWithLock(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetSupplier retrieves a supplier by ID
func (s *Service) GetSupplier(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// ListSuppliers retrieves suppliers with filtering and pagination
func (s *Service) ListSuppliers(ctx context.Context, filter partner.PartnerFilter) ([]SupplierResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	suppliers, err := s.supplierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[i]))
	}
	return responses, total, nil
}

// DeleteSupplier removes a supplier the business owes nothing to
func (s *Service) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier.Balance.IsPositive() {
		return shared.NewDomainError("OUTSTANDING_BALANCE", "Cannot delete a supplier with an outstanding balance")
	}
	return s.supplierRepo.Delete(ctx, id)
}
