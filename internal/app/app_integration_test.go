//go:build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/xenking/storefront-checkout/db"
	"github.com/xenking/storefront-checkout/internal/domain/auth"
	"github.com/xenking/storefront-checkout/internal/seed"
	"github.com/xenking/storefront-checkout/internal/storage/postgres"
)

// TestCheckoutFlow_Postgres runs the memory-backed flow against a real
// database seeded the way seed-db does it.
func TestCheckoutFlow_Postgres(t *testing.T) {
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:17-alpine",
		tcpostgres.WithDatabase("shop"),
		tcpostgres.WithUsername("shop"),
		tcpostgres.WithPassword("shop"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, postgres.Migrate(dsn))
	pool, err := postgres.NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	products, err := seed.ParseProducts(db.SeedProducts)
	require.NoError(t, err)
	require.NoError(t, seed.Apply(ctx, seed.Target{
		Product:  postgres.NewProductRepository(pool).Upsert,
		Discount: postgres.NewDiscountRepository(pool).Upsert,
	}, products, seed.Discounts(time.Now())))
	require.NoError(t, postgres.NewAPIKeyRepository(pool).Create(ctx, auth.APIKeyInfo{
		ID:      "test",
		KeyHash: auth.HashAPIKey(testAPIKey, []byte(testPepper)),
		Name:    "test",
		Scopes:  []string{auth.ScopeOrdersRead, auth.ScopeOrdersWrite},
	}))

	cfg := memoryConfig()
	cfg.Storage = StoragePostgres
	cfg.DatabaseURL = dsn
	checkoutFlow(t, startServer(t, cfg))
}
