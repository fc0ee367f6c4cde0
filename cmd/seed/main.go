// Command seed loads a starter set of wallets, finance categories and
// catalog products so a fresh deployment has reference data to settle
// against.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/laquila/backend/internal/core/domain"
	"github.com/laquila/backend/internal/platform/config"
	"github.com/laquila/backend/internal/repositories/database/pgsql"
	"github.com/laquila/backend/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	repos := pgsql.NewRepositoryProvider(dbPool)
	now := time.Now().UTC()

	wallets := []domain.Wallet{
		{WalletID: uuid.NewString(), Name: "Cash", CreatedAt: now},
		{WalletID: uuid.NewString(), Name: "Bank BCA", CreatedAt: now},
		{WalletID: uuid.NewString(), Name: "Shopee Balance", CreatedAt: now},
	}
	for _, w := range wallets {
		if err := repos.WalletRepo.SaveWallet(ctx, w); err != nil {
			logger.Error("Failed to seed wallet", slog.String("name", w.Name), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	logger.Info("Seeded wallets", slog.Int("count", len(wallets)))

	categories := []domain.FinanceCategory{
		{CategoryID: uuid.NewString(), Name: "Sales", Direction: domain.CategoryIncome, CreatedAt: now},
		{CategoryID: uuid.NewString(), Name: "Other Income", Direction: domain.CategoryIncome, CreatedAt: now},
		{CategoryID: uuid.NewString(), Name: "Materials", Direction: domain.CategoryExpense, CreatedAt: now},
		{CategoryID: uuid.NewString(), Name: "Shipping", Direction: domain.CategoryExpense, CreatedAt: now},
		{CategoryID: uuid.NewString(), Name: "Marketing", Direction: domain.CategoryExpense, CreatedAt: now},
	}
	for _, cat := range categories {
		if err := repos.CategoryRepo.SaveCategory(ctx, cat); err != nil {
			logger.Error("Failed to seed category", slog.String("name", cat.Name), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	logger.Info("Seeded categories", slog.Int("count", len(categories)))

	sku := func(s string) *string { return &s }
	products := []domain.Product{
		{ProductID: uuid.NewString(), Name: "Ceramic Mug", SKU: sku("MUG-001"), UnitPrice: decimal.NewFromInt(50000), CreatedAt: now},
		{ProductID: uuid.NewString(), Name: "Wooden Coaster", SKU: sku("CST-001"), UnitPrice: decimal.NewFromInt(30000), CreatedAt: now},
		{ProductID: uuid.NewString(), Name: "Insulated Tumbler", SKU: sku("TMB-001"), UnitPrice: decimal.NewFromInt(75000), CreatedAt: now},
	}
	for _, p := range products {
		if err := repos.ProductRepo.SaveProduct(ctx, p); err != nil {
			logger.Error("Failed to seed product", slog.String("name", p.Name), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	logger.Info("Seeded products", slog.Int("count", len(products)))
}
