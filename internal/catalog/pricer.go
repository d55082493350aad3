package catalog

import "github.com/saloncartapp/saloncart/internal/models"

// FinalPriceCents applies the product's discount to its list price.
// Percentage discounts round down; amount discounts floor at zero.
func FinalPriceCents(p *models.Product) int64 {
	if p == nil {
		return 0
	}
	switch p.DiscountType {
	case models.DiscountPercentage:
		return p.PriceCents - (p.PriceCents*p.DiscountValue)/100
	case models.DiscountAmount:
		if p.DiscountValue >= p.PriceCents {
			return 0
		}
		return p.PriceCents - p.DiscountValue
	default:
		return p.PriceCents
	}
}
