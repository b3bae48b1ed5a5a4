package model

import "time"

// Product is a storefront catalog record, unrelated to the learning
// subject tree.
type Product struct {
	ID           int       `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Brand        string    `json:"brand"`
	QtyThreshold int       `json:"qty_threshold"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	SKU          string `json:"sku" binding:"required,min=1,max=100"`
	Name         string `json:"name" binding:"required,min=1,max=255"`
	Description  string `json:"description" binding:"omitempty,max=2000"`
	Image        string `json:"image" binding:"omitempty,max=500"`
	Brand        string `json:"brand" binding:"omitempty,max=100"`
	QtyThreshold int    `json:"qty_threshold" binding:"omitempty,min=0"`
}

// UpdateProductRequest is the payload for updating a product.
type UpdateProductRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description  *string `json:"description" binding:"omitempty,max=2000"`
	Image        *string `json:"image" binding:"omitempty,max=500"`
	Brand        *string `json:"brand" binding:"omitempty,max=100"`
	QtyThreshold *int    `json:"qty_threshold" binding:"omitempty,min=0"`
}
