// Package catalog holds product pricing rules and the seed file format
// consumed by cmd/seed.
package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/saloncartapp/saloncart/internal/models"
)

// SeedFile is the YAML document that bootstraps a fresh deployment with the
// platform admin and an initial product catalog.
type SeedFile struct {
	Admin    SeedAdmin     `yaml:"admin"`
	Products []SeedProduct `yaml:"products"`
}

type SeedAdmin struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type SeedProduct struct {
	Name          string `yaml:"name"`
	PriceCents    int64  `yaml:"price_cents"`
	DiscountType  string `yaml:"discount_type"`
	DiscountValue int64  `yaml:"discount_value"`
	Active        *bool  `yaml:"active"`
}

func ParseSeed(content []byte) (*SeedFile, error) {
	var seed SeedFile
	if err := yaml.Unmarshal(content, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := validateSeed(&seed); err != nil {
		return nil, err
	}
	return &seed, nil
}

func validateSeed(seed *SeedFile) error {
	if seed.Admin.Username != "" {
		if seed.Admin.Email == "" || seed.Admin.Password == "" {
			return fmt.Errorf("seed admin requires username, email and password")
		}
	}
	for i, p := range seed.Products {
		if p.Name == "" {
			return fmt.Errorf("seed product %d: name is required", i)
		}
		if p.PriceCents <= 0 {
			return fmt.Errorf("seed product %q: price_cents must be positive", p.Name)
		}
		switch models.DiscountType(p.DiscountType) {
		case models.DiscountNone, models.DiscountPercentage, models.DiscountAmount, "":
		default:
			return fmt.Errorf("seed product %q: unknown discount type %q", p.Name, p.DiscountType)
		}
		if models.DiscountType(p.DiscountType) == models.DiscountPercentage && (p.DiscountValue < 0 || p.DiscountValue > 100) {
			return fmt.Errorf("seed product %q: percentage discount must be 0-100", p.Name)
		}
	}
	return nil
}

// Product converts a seed entry into a catalog product.
func (p SeedProduct) Product() *models.Product {
	discountType := models.DiscountType(p.DiscountType)
	if discountType == "" {
		discountType = models.DiscountNone
	}
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return &models.Product{
		Name:          p.Name,
		PriceCents:    p.PriceCents,
		DiscountType:  discountType,
		DiscountValue: p.DiscountValue,
		IsActive:      active,
	}
}
