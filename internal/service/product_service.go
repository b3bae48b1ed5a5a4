package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/skillbase/skillbase-backend/internal/model"
)

// ProductService handles storefront product records.
type ProductService struct {
	products ProductStore
}

// NewProductService creates a new ProductService.
func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// Create inserts a new product.
func (s *ProductService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	p := &model.Product{
		SKU:          req.SKU,
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		Brand:        req.Brand,
		QtyThreshold: req.QtyThreshold,
	}
	if err := s.products.Create(ctx, p); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSKUTaken
		}
		return nil, err
	}
	return p, nil
}

// GetAll retrieves all products.
func (s *ProductService) GetAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// FindByID retrieves a product by ID.
func (s *ProductService) FindByID(ctx context.Context, id int) (*model.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// FindBySKU retrieves a product by SKU.
func (s *ProductService) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	p, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// FindByName retrieves a product by name.
func (s *ProductService) FindByName(ctx context.Context, name string) (*model.Product, error) {
	p, err := s.products.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update applies the non-nil fields of req to the product.
func (s *ProductService) Update(ctx context.Context, id int, req *model.UpdateProductRequest) (*model.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Image != nil {
		p.Image = *req.Image
	}
	if req.Brand != nil {
		p.Brand = *req.Brand
	}
	if req.QtyThreshold != nil {
		p.QtyThreshold = *req.QtyThreshold
	}

	if err := s.products.Update(ctx, p); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSKUTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id int) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
