package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/skillbase/skillbase-backend/internal/model"
)

// CustomerService handles storefront customer records. Plain CRUD; the
// order-driven totals are updated by the external commerce integration.
type CustomerService struct {
	customers CustomerStore
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customers CustomerStore) *CustomerService {
	return &CustomerService{customers: customers}
}

// Create inserts a new customer.
func (s *CustomerService) Create(ctx context.Context, req *model.CreateCustomerRequest) (*model.Customer, error) {
	c := &model.Customer{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Company:          req.Company,
		Email:            req.Email,
		Address:          req.Address,
		PostalCode:       req.PostalCode,
		ContactNo:        req.ContactNo,
		TotalSpent:       req.TotalSpent,
		AcceptsMarketing: req.AcceptsMarketing,
		LastOrderDate:    req.LastOrderDate,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return c, nil
}

// GetAll retrieves all customers.
func (s *CustomerService) GetAll(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.customers.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []model.Customer{}
	}
	return customers, nil
}

// FindByID retrieves a customer by ID.
func (s *CustomerService) FindByID(ctx context.Context, id int) (*model.Customer, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

// FindByEmail retrieves a customer by email.
func (s *CustomerService) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	c, err := s.customers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

// Update applies the non-nil fields of req to the customer.
func (s *CustomerService) Update(ctx context.Context, id int, req *model.UpdateCustomerRequest) (*model.Customer, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		c.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		c.LastName = *req.LastName
	}
	if req.Company != nil {
		c.Company = *req.Company
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.PostalCode != nil {
		c.PostalCode = *req.PostalCode
	}
	if req.ContactNo != nil {
		c.ContactNo = *req.ContactNo
	}
	if req.TotalSpent != nil {
		c.TotalSpent = *req.TotalSpent
	}
	if req.OrdersCount != nil {
		c.OrdersCount = *req.OrdersCount
	}
	if req.AcceptsMarketing != nil {
		c.AcceptsMarketing = *req.AcceptsMarketing
	}

	if err := s.customers.Update(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a customer.
func (s *CustomerService) Delete(ctx context.Context, id int) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCustomerNotFound
		}
		return err
	}
	return nil
}
