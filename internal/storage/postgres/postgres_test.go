//go:build integration

package postgres

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/xenking/storefront-checkout/internal/domain/catalog"
	"github.com/xenking/storefront-checkout/internal/domain/discount"
	"github.com/xenking/storefront-checkout/internal/domain/ledger"
	"github.com/xenking/storefront-checkout/internal/domain/money"
	"github.com/xenking/storefront-checkout/internal/domain/order"
	"github.com/xenking/storefront-checkout/internal/domain/pricing"
)

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:17-alpine",
		tcpostgres.WithDatabase("checkout"),
		tcpostgres.WithUsername("checkout"),
		tcpostgres.WithPassword("checkout"),
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
	require.NoError(t, Migrate(dsn))

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func seedDiscount(t *testing.T, pool *pgxpool.Pool, code string, limit int) *discount.Code {
	t.Helper()
	c := &discount.Code{
		Code:               code,
		Percentage:         money.MustPercentage(10),
		StartDate:          time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		UsageLimit:         limit,
		MinimumOrderAmount: money.New(100000),
		IsActive:           true,
	}
	require.NoError(t, NewDiscountRepository(pool).Upsert(context.Background(), c))
	return c
}

func TestPostgres(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	products := NewProductRepository(pool)
	require.NoError(t, products.Upsert(ctx, catalog.Product{
		ID: "tee", Name: "Tee", Price: money.New(250000), Category: "Shirts",
		Sizes: map[string]int{"M": 3, "L": 1},
	}))

	t.Run("products", func(t *testing.T) {
		p, err := products.GetByID(ctx, "tee")
		require.NoError(t, err)
		assert.True(t, p.Price.Equal(money.New(250000)))
		assert.Equal(t, map[string]int{"M": 3, "L": 1}, p.Sizes)

		_, err = products.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("decrement stock", func(t *testing.T) {
		inv := NewInventory(pool)
		require.NoError(t, inv.DecrementStock(ctx, "tee", "L", 1))

		err := inv.DecrementStock(ctx, "tee", "L", 1)
		var stockErr *catalog.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 0, stockErr.Available)
	})

	t.Run("discount lookup", func(t *testing.T) {
		seeded := seedDiscount(t, pool, "LOOKUP10", 5)
		repo := NewDiscountRepository(pool)

		got, err := repo.FindByCode(ctx, "LOOKUP10")
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, got.ID)
		assert.True(t, got.Percentage.Decimal().Equal(seeded.Percentage.Decimal()))

		_, err = repo.FindByCode(ctx, "NOPE")
		assert.ErrorIs(t, err, discount.ErrNotFound)
	})

	t.Run("discount upsert keeps id", func(t *testing.T) {
		seeded := seedDiscount(t, pool, "AGAIN10", 5)
		repo := NewDiscountRepository(pool)

		again := &discount.Code{
			Code:               "AGAIN10",
			Percentage:         money.MustPercentage(20),
			StartDate:          seeded.StartDate,
			EndDate:            seeded.EndDate,
			UsageLimit:         8,
			MinimumOrderAmount: money.New(100000),
			IsActive:           true,
		}
		require.NoError(t, repo.Upsert(ctx, again))
		assert.Equal(t, seeded.ID, again.ID)

		got, err := repo.FindByID(ctx, again.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, got.UsageLimit)
		assert.True(t, got.Percentage.Decimal().Equal(money.MustPercentage(20).Decimal()))
	})

	t.Run("ledger save then redeem", func(t *testing.T) {
		c := seedDiscount(t, pool, "SAVE10", 5)
		l := NewLedger(pool)

		saved, err := l.Save(ctx, "u1", c.ID, now)
		require.NoError(t, err)
		assert.Equal(t, ledger.StateSaved, saved.State())

		require.NoError(t, l.Redeem(ctx, "u1", c.ID, now))
		assert.ErrorIs(t, l.Redeem(ctx, "u1", c.ID, now), ledger.ErrAlreadyRedeemed)

		got, err := NewDiscountRepository(pool).FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.UsedCount)

		coupons, err := l.Coupons(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, coupons, 1)
		assert.Equal(t, ledger.StateRedeemed, coupons[0].State())
	})

	t.Run("ledger unknown code", func(t *testing.T) {
		l := NewLedger(pool)
		_, err := l.Save(ctx, "u1", uuid.New(), now)
		assert.ErrorIs(t, err, ledger.ErrNotFound)
		assert.ErrorIs(t, l.Redeem(ctx, "u1", uuid.New(), now), ledger.ErrNotFound)
	})

	t.Run("concurrent redeem honours the limit", func(t *testing.T) {
		c := seedDiscount(t, pool, "LAST1", 1)
		l := NewLedger(pool)

		const n = 8
		var (
			wg      sync.WaitGroup
			success atomic.Int32
			limited atomic.Int32
		)
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := l.Redeem(ctx, uuid.NewString(), c.ID, now)
				switch {
				case err == nil:
					success.Add(1)
				case assert.ErrorIs(t, err, ledger.ErrLimitReached, "worker %d", i):
					limited.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.EqualValues(t, 1, success.Load())
		assert.EqualValues(t, n-1, limited.Load())

		got, err := NewDiscountRepository(pool).FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.UsedCount)
	})

	t.Run("transaction rolls back every write", func(t *testing.T) {
		c := seedDiscount(t, pool, "ROLLBACK", 5)
		tx := NewTransactor(pool)
		o := testOrder(now)

		err := tx.InTx(ctx, func(ctx context.Context, tx order.Tx) error {
			require.NoError(t, tx.DecrementStock(ctx, "tee", "M", 1))
			require.NoError(t, tx.Redeem(ctx, "u2", c.ID, now))
			return tx.DecrementStock(ctx, "tee", "M", 100)
		})
		assert.ErrorIs(t, err, catalog.ErrInsufficientStock)

		p, err := products.GetByID(ctx, "tee")
		require.NoError(t, err)
		assert.Equal(t, 3, p.Sizes["M"])

		got, err := NewDiscountRepository(pool).FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.UsedCount)

		_, err = NewOrderRepository(pool).Get(ctx, o.ID)
		assert.ErrorIs(t, err, order.ErrNotFound)
	})

	t.Run("orders", func(t *testing.T) {
		repo := NewOrderRepository(pool)
		o := testOrder(now)
		require.NoError(t, NewTransactor(pool).InTx(ctx, func(ctx context.Context, tx order.Tx) error {
			return tx.Create(ctx, o)
		}))

		got, err := repo.Get(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.Items, got.Items)
		assert.Equal(t, o.Shipping, got.Shipping)
		assert.True(t, got.Pricing.TotalPrice.Equal(o.Pricing.TotalPrice))
		assert.Equal(t, order.StatusPlaced, got.Status)

		updated, err := repo.Update(ctx, o.ID, func(o *order.Order) error {
			o.Status = order.StatusPacking
			o.UpdatedAt = now.Add(time.Minute)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, order.StatusPacking, updated.Status)

		list, err := repo.ListByUser(ctx, "u3")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, order.StatusPacking, list[0].Status)

		_, err = repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, order.ErrNotFound)
	})
}

func testOrder(now time.Time) *order.Order {
	return &order.Order{
		ID:     uuid.New(),
		UserID: "u3",
		Items: []order.LineItem{
			{ProductID: "tee", Name: "Tee", UnitPrice: money.New(250000), Qty: 2, Size: "M"},
		},
		Pricing: pricing.Totals{
			ItemsPrice:          money.New(500000),
			DiscountAmount:      money.Zero,
			AmountAfterDiscount: money.New(500000),
			ShippingPrice:       money.New(30000),
			TotalPrice:          money.New(530000),
		},
		Currency: "VND",
		Shipping: order.ShippingInfo{
			FullName: "An Nguyen", Phone: "0900000000", Address: "1 Le Loi",
			City: "HCMC", Country: "VN",
		},
		PaymentMethod: order.PaymentCOD,
		Status:        order.StatusPlaced,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
