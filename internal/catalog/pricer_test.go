package catalog

import (
	"testing"

	"github.com/saloncartapp/saloncart/internal/models"
)

func TestFinalPriceCents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		product *models.Product
		want    int64
	}{
		{name: "nil product", product: nil, want: 0},
		{
			name:    "no discount",
			product: &models.Product{PriceCents: 10000, DiscountType: models.DiscountNone},
			want:    10000,
		},
		{
			name:    "empty discount type",
			product: &models.Product{PriceCents: 10000},
			want:    10000,
		},
		{
			name:    "percentage",
			product: &models.Product{PriceCents: 10000, DiscountType: models.DiscountPercentage, DiscountValue: 25},
			want:    7500,
		},
		{
			name:    "percentage rounds down",
			product: &models.Product{PriceCents: 999, DiscountType: models.DiscountPercentage, DiscountValue: 10},
			want:    900,
		},
		{
			name:    "full percentage",
			product: &models.Product{PriceCents: 5000, DiscountType: models.DiscountPercentage, DiscountValue: 100},
			want:    0,
		},
		{
			name:    "amount",
			product: &models.Product{PriceCents: 10000, DiscountType: models.DiscountAmount, DiscountValue: 2500},
			want:    7500,
		},
		{
			name:    "amount floors at zero",
			product: &models.Product{PriceCents: 1000, DiscountType: models.DiscountAmount, DiscountValue: 5000},
			want:    0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FinalPriceCents(tc.product); got != tc.want {
				t.Fatalf("unexpected price: got=%d want=%d", got, tc.want)
			}
		})
	}
}
