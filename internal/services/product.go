package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saloncartapp/saloncart/internal/catalog"
	"github.com/saloncartapp/saloncart/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

type productStore interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
}

// ProductService maintains the shared product catalog.
type ProductService struct {
	products productStore
}

func NewProductService(products productStore) *ProductService {
	return &ProductService{products: products}
}

// PricedProduct is a catalog entry with its discount already applied.
type PricedProduct struct {
	*models.Product
	FinalPriceCents int64 `json:"final_price_cents"`
}

func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.DiscountType == "" {
		product.DiscountType = models.DiscountNone
	}
	if err := s.products.Create(ctx, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// ListProducts returns catalog entries with final prices. activeOnly is set
// for the customer-facing order page; the admin catalog sees everything.
func (s *ProductService) ListProducts(ctx context.Context, activeOnly bool) ([]PricedProduct, error) {
	products, err := s.products.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	priced := make([]PricedProduct, 0, len(products))
	for _, p := range products {
		priced = append(priced, PricedProduct{
			Product:         p,
			FinalPriceCents: catalog.FinalPriceCents(p),
		})
	}
	return priced, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}
