package seed

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront-checkout/db"
	"github.com/xenking/storefront-checkout/internal/domain/catalog"
	"github.com/xenking/storefront-checkout/internal/domain/discount"
	"github.com/xenking/storefront-checkout/internal/storage/memory"
)

func TestParseProducts(t *testing.T) {
	products, err := ParseProducts([]byte(`[
		{"id": "tee", "name": "Tee", "price": 199000.5, "category": "Tops",
		 "image": {"thumbnail": "/t.jpg", "extra": 1}, "sizes": {"M": 3, "L": 0}, "unknown": [1, 2]}
	]`))
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "tee", p.ID)
	assert.Equal(t, "199000.5", p.Price.String())
	assert.Equal(t, "/t.jpg", p.Image.Thumbnail)
	assert.Equal(t, map[string]int{"M": 3, "L": 0}, p.Sizes)
}

func TestParseProducts_Invalid(t *testing.T) {
	_, err := ParseProducts([]byte(`[{"name": "no id"}]`))
	assert.Error(t, err)

	_, err = ParseProducts([]byte(`{"id": "x"}`))
	assert.Error(t, err)
}

func TestEmbeddedCatalog(t *testing.T) {
	products, err := ParseProducts(db.SeedProducts)
	require.NoError(t, err)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.NotEmpty(t, p.Sizes, p.ID)
		assert.False(t, p.Price.IsNegative(), p.ID)
	}
}

func TestDiscountsAreValid(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, c := range Discounts(now) {
		require.NoError(t, c.Validate(), c.Code)
		assert.NoError(t, c.Check(now, c.MinimumOrderAmount), c.Code)
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	products, err := ParseProducts(db.SeedProducts)
	require.NoError(t, err)

	target := Target{Product: store.UpsertProduct, Discount: store.UpsertDiscount}
	require.NoError(t, Apply(ctx, target, products, Discounts(time.Now())))
	// Seeding twice is harmless.
	require.NoError(t, Apply(ctx, target, products, Discounts(time.Now())))

	listed, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, len(products))

	c, err := store.FindByCode(ctx, "WELCOME10")
	require.NoError(t, err)
	assert.Equal(t, 1000, c.UsageLimit)
}

func TestApply_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	var discounts int
	err := Apply(context.Background(), Target{
		Product:  func(context.Context, catalog.Product) error { return boom },
		Discount: func(context.Context, *discount.Code) error { discounts++; return nil },
	}, []catalog.Product{{ID: "a"}}, Discounts(time.Now()))
	require.ErrorIs(t, err, boom)
	assert.Zero(t, discounts)
}
