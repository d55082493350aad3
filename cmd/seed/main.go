package main

// seed bootstraps a fresh SalonCart deployment: it runs migrations, upserts
// the platform admin and loads an initial product catalog from a YAML file.

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/saloncartapp/saloncart/internal/catalog"
	"github.com/saloncartapp/saloncart/internal/db"
	"github.com/saloncartapp/saloncart/internal/models"
)

func main() {
	seedFile := flag.String("file", "seed.yaml", "path to the seed YAML file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(*seedFile, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(path string, logger *slog.Logger) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	seed, err := catalog.ParseSeed(content)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if seed.Admin.Username != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(seed.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin := &models.Admin{
			Username:     seed.Admin.Username,
			Email:        seed.Admin.Email,
			PasswordHash: string(passwordHash),
		}
		if err := db.NewAdminStore(pool).Create(ctx, admin); err != nil {
			return fmt.Errorf("failed to upsert admin: %w", err)
		}
		logger.Info("admin upserted", "username", admin.Username)
	}

	products := db.NewProductStore(pool)
	for _, entry := range seed.Products {
		product := entry.Product()
		if err := products.Create(ctx, product); err != nil {
			return fmt.Errorf("failed to create product %q: %w", product.Name, err)
		}
		logger.Info("product created", "name", product.Name, "price_cents", product.PriceCents)
	}

	logger.Info("seed complete", "products", len(seed.Products))
	return nil
}
