package products

import (
	"context"
	"testing"

	"github.com/avelara/dispatchly-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductsRepo(t *testing.T) (Repository, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}))
	return NewRepository(conn), conn
}

func TestRepositoryListFilters(t *testing.T) {
	repo, _ := setupProductsRepo(t)
	ctx := context.Background()

	fixtures := []models.Product{
		{MerchantID: 1, Name: "Sandwich jambon-beurre", Category: "sandwichs", Price: decimal.NewFromFloat(6.50), Available: true},
		{MerchantID: 1, Name: "Croque-monsieur", Category: "sandwichs", Price: decimal.NewFromFloat(7.00), Available: false},
		{MerchantID: 2, Name: "Salade niçoise", Category: "salades", Price: decimal.NewFromFloat(9.90), Available: true},
	}
	for i := range fixtures {
		require.NoError(t, repo.Create(ctx, &fixtures[i]))
	}

	all, err := repo.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	merchantID := int64(1)
	mine, err := repo.List(ctx, ListParams{MerchantID: &merchantID})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	category := "sandwichs"
	available, err := repo.List(ctx, ListParams{Category: &category, AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Sandwich jambon-beurre", available[0].Name)

	searched, err := repo.List(ctx, ListParams{Search: "JAMBON"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, "Sandwich jambon-beurre", searched[0].Name)
}

func TestRepositoryListSorting(t *testing.T) {
	repo, _ := setupProductsRepo(t)
	ctx := context.Background()

	fixtures := []models.Product{
		{MerchantID: 1, Name: "Quiche", Price: decimal.NewFromFloat(5.50), Available: true},
		{MerchantID: 1, Name: "Tartine", Price: decimal.NewFromFloat(5.50), Available: true},
		{MerchantID: 1, Name: "Bavette", Price: decimal.NewFromFloat(14.00), Available: true},
	}
	for i := range fixtures {
		require.NoError(t, repo.Create(ctx, &fixtures[i]))
	}

	byName, err := repo.List(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, byName, 3)
	assert.Equal(t, "Bavette", byName[0].Name)

	priciest, err := repo.List(ctx, ListParams{SortBy: "price", SortDesc: true})
	require.NoError(t, err)
	require.Len(t, priciest, 3)
	assert.Equal(t, "Bavette", priciest[0].Name)
	// equal prices fall back to insertion order
	assert.Equal(t, "Quiche", priciest[1].Name)
	assert.Equal(t, "Tartine", priciest[2].Name)
}

func TestRepositoryUpdateReportsRows(t *testing.T) {
	repo, _ := setupProductsRepo(t)
	ctx := context.Background()

	product := &models.Product{MerchantID: 1, Name: "Tarte au citron", Price: decimal.NewFromFloat(4.80), Available: true}
	require.NoError(t, repo.Create(ctx, product))

	rows, err := repo.Update(ctx, product.ID, map[string]any{"available": false})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.Update(ctx, product.ID, map[string]any{})
	require.NoError(t, err)
	assert.Zero(t, rows, "empty patch must not touch the row")

	rows, err = repo.Update(ctx, 9999, map[string]any{"available": true})
	require.NoError(t, err)
	assert.Zero(t, rows)

	fresh, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, fresh.Available)
}

func TestRepositoryDeleteReportsRows(t *testing.T) {
	repo, _ := setupProductsRepo(t)
	ctx := context.Background()

	product := &models.Product{MerchantID: 1, Name: "Flan", Price: decimal.NewFromFloat(3.20), Available: true}
	require.NoError(t, repo.Create(ctx, product))

	rows, err := repo.Delete(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.Delete(ctx, product.ID)
	require.NoError(t, err)
	assert.Zero(t, rows)
}
