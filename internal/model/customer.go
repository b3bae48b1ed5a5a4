package model

import "time"

// Customer is a plain commerce record. The catalog core never touches it;
// it lives here because the same backend serves the storefront admin.
type Customer struct {
	ID               int        `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Company          string     `json:"company"`
	Email            string     `json:"email"`
	Address          string     `json:"address"`
	PostalCode       string     `json:"postal_code"`
	ContactNo        string     `json:"contact_no"`
	TotalSpent       float64    `json:"total_spent"`
	OrdersCount      int        `json:"orders_count"`
	AcceptsMarketing bool       `json:"accepts_marketing"`
	LastOrderDate    *time.Time `json:"last_order_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CreateCustomerRequest is the payload for creating a customer.
type CreateCustomerRequest struct {
	FirstName        string     `json:"first_name" binding:"required,min=1,max=100"`
	LastName         string     `json:"last_name" binding:"omitempty,max=100"`
	Company          string     `json:"company" binding:"omitempty,max=255"`
	Email            string     `json:"email" binding:"required,email,max=255"`
	Address          string     `json:"address" binding:"omitempty,max=500"`
	PostalCode       string     `json:"postal_code" binding:"omitempty,max=20"`
	ContactNo        string     `json:"contact_no" binding:"omitempty,max=30"`
	TotalSpent       float64    `json:"total_spent" binding:"omitempty,min=0"`
	AcceptsMarketing bool       `json:"accepts_marketing"`
	LastOrderDate    *time.Time `json:"last_order_date" binding:"omitempty"`
}

// UpdateCustomerRequest is the payload for updating a customer.
type UpdateCustomerRequest struct {
	FirstName        *string  `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName         *string  `json:"last_name" binding:"omitempty,max=100"`
	Company          *string  `json:"company" binding:"omitempty,max=255"`
	Email            *string  `json:"email" binding:"omitempty,email,max=255"`
	Address          *string  `json:"address" binding:"omitempty,max=500"`
	PostalCode       *string  `json:"postal_code" binding:"omitempty,max=20"`
	ContactNo        *string  `json:"contact_no" binding:"omitempty,max=30"`
	TotalSpent       *float64 `json:"total_spent" binding:"omitempty,min=0"`
	OrdersCount      *int     `json:"orders_count" binding:"omitempty,min=0"`
	AcceptsMarketing *bool    `json:"accepts_marketing" binding:"omitempty"`
}
