package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saloncartapp/saloncart/internal/models"
)

type ProductStore struct {
	pool *pgxpool.Pool
}

func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

const productColumns = `
	id, name, price_cents, discount_type, discount_value, is_active, created_at, updated_at
`

func (s *ProductStore) Create(ctx context.Context, product *Product) error {
	const query = `
		INSERT INTO products (name, price_cents, discount_type, discount_value, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return s.pool.QueryRow(ctx, query,
		product.Name, product.PriceCents, string(product.DiscountType),
		product.DiscountValue, product.IsActive,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (s *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

// List returns products, optionally restricted to active ones for the
// customer-facing order page.
func (s *ProductStore) List(ctx context.Context, activeOnly bool) ([]*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (s *ProductStore) Update(ctx context.Context, product *Product) error {
	const query = `
		UPDATE products
		SET name = $1, price_cents = $2, discount_type = $3, discount_value = $4,
		    is_active = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`
	return s.pool.QueryRow(ctx, query,
		product.Name, product.PriceCents, string(product.DiscountType),
		product.DiscountValue, product.IsActive, product.ID,
	).Scan(&product.UpdatedAt)
}

func scanProduct(row pgx.Row) (*Product, error) {
	var (
		product      Product
		discountType string
	)
	err := row.Scan(
		&product.ID, &product.Name, &product.PriceCents, &discountType,
		&product.DiscountValue, &product.IsActive, &product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	product.DiscountType = models.DiscountType(discountType)
	return &product, nil
}
