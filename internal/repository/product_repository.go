package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillbase/skillbase-backend/internal/model"
)

// ProductRepository handles storefront product records.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, sku, name, description, image, brand, qty_threshold, created_at, updated_at`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Image, &p.Brand,
		&p.QtyThreshold, &p.CreatedAt, &p.UpdatedAt)
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, p *model.Product) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO products (sku, name, description, image, brand, qty_threshold)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		p.SKU, p.Name, p.Description, p.Image, p.Brand, p.QtyThreshold,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetAll retrieves all products.
func (r *ProductRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Image, &p.Brand,
			&p.QtyThreshold, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// FindByID retrieves a product by ID.
func (r *ProductRepository) FindByID(ctx context.Context, id int) (*model.Product, error) {
	p := &model.Product{}
	if err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id), p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindBySKU retrieves a product by its unique SKU.
func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	p := &model.Product{}
	if err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku), p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindByName retrieves a product by its unique name.
func (r *ProductRepository) FindByName(ctx context.Context, name string) (*model.Product, error) {
	p := &model.Product{}
	if err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE name = $1`, name), p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update rewrites a product's mutable fields. The SKU is immutable.
func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE products
		 SET name = $1, description = $2, image = $3, brand = $4, qty_threshold = $5, updated_at = NOW()
		 WHERE id = $6`,
		p.Name, p.Description, p.Image, p.Brand, p.QtyThreshold, p.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
