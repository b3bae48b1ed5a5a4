package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillbase/skillbase-backend/internal/model"
)

// CustomerRepository handles storefront customer records.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

const customerColumns = `id, first_name, last_name, company, email, address, postal_code,
	contact_no, total_spent, orders_count, accepts_marketing, last_order_date,
	created_at, updated_at`

func scanCustomer(row pgx.Row, c *model.Customer) error {
	return row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Company, &c.Email, &c.Address,
		&c.PostalCode, &c.ContactNo, &c.TotalSpent, &c.OrdersCount, &c.AcceptsMarketing,
		&c.LastOrderDate, &c.CreatedAt, &c.UpdatedAt)
}

// Create inserts a new customer.
func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO customers (first_name, last_name, company, email, address, postal_code,
		                        contact_no, total_spent, accepts_marketing, last_order_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, orders_count, created_at, updated_at`,
		c.FirstName, c.LastName, c.Company, c.Email, c.Address, c.PostalCode,
		c.ContactNo, c.TotalSpent, c.AcceptsMarketing, c.LastOrderDate,
	).Scan(&c.ID, &c.OrdersCount, &c.CreatedAt, &c.UpdatedAt)
}

// GetAll retrieves all customers.
func (r *CustomerRepository) GetAll(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Company, &c.Email, &c.Address,
			&c.PostalCode, &c.ContactNo, &c.TotalSpent, &c.OrdersCount, &c.AcceptsMarketing,
			&c.LastOrderDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// FindByID retrieves a customer by ID.
func (r *CustomerRepository) FindByID(ctx context.Context, id int) (*model.Customer, error) {
	c := &model.Customer{}
	if err := scanCustomer(r.pool.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id), c); err != nil {
		return nil, err
	}
	return c, nil
}

// FindByEmail retrieves a customer by email.
func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	c := &model.Customer{}
	if err := scanCustomer(r.pool.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE email = $1`, email), c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update rewrites a customer's mutable fields.
func (r *CustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE customers
		 SET first_name = $1, last_name = $2, company = $3, email = $4, address = $5,
		     postal_code = $6, contact_no = $7, total_spent = $8, orders_count = $9,
		     accepts_marketing = $10, updated_at = NOW()
		 WHERE id = $11`,
		c.FirstName, c.LastName, c.Company, c.Email, c.Address,
		c.PostalCode, c.ContactNo, c.TotalSpent, c.OrdersCount,
		c.AcceptsMarketing, c.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a customer.
func (r *CustomerRepository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
