package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/storefront-checkout/internal/domain/order"
)

var _ order.Transactor = (*Transactor)(nil)

// Transactor runs a checkout in one database transaction: stock, ledger
// and the order row commit together or not at all.
type Transactor struct {
	pool *pgxpool.Pool
}

// NewTransactor returns a Transactor on pool.
func NewTransactor(pool *pgxpool.Pool) *Transactor {
	return &Transactor{pool: pool}
}

// InTx implements order.Transactor.
func (t *Transactor) InTx(ctx context.Context, fn func(ctx context.Context, tx order.Tx) error) error {
	return pgx.BeginFunc(ctx, t.pool, func(tx pgx.Tx) error {
		return fn(ctx, &checkoutTx{
			inventory: NewInventory(tx),
			ledger:    NewLedger(tx),
			orders:    NewOrderRepository(tx),
		})
	})
}

type checkoutTx struct {
	inventory *Inventory
	ledger    *Ledger
	orders    *OrderRepository
}

func (c *checkoutTx) DecrementStock(ctx context.Context, productID, size string, qty int) error {
	return c.inventory.DecrementStock(ctx, productID, size, qty)
}

func (c *checkoutTx) Redeem(ctx context.Context, userID string, codeID uuid.UUID, at time.Time) error {
	return c.ledger.Redeem(ctx, userID, codeID, at)
}

func (c *checkoutTx) Create(ctx context.Context, o *order.Order) error {
	return c.orders.Create(ctx, o)
}
