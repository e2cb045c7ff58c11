package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/xenking/storefront-checkout/internal/domain/catalog"
)

const (
	decrementStockSQL = `UPDATE product_sizes SET stock = stock - $3
		WHERE product_id = $1 AND size = $2 AND stock >= $3`

	getStockSQL = `SELECT stock FROM product_sizes WHERE product_id = $1 AND size = $2`
)

var _ catalog.Inventory = (*Inventory)(nil)

// Inventory decrements per-size stock with a single conditional UPDATE.
type Inventory struct {
	db querier
}

// NewInventory returns an Inventory on db.
func NewInventory(db querier) *Inventory {
	return &Inventory{db: db}
}

// DecrementStock removes qty units from the bucket, or reports how many
// units were left when it cannot.
func (i *Inventory) DecrementStock(ctx context.Context, productID, size string, qty int) error {
	tag, err := i.db.Exec(ctx, decrementStockSQL, productID, size, qty)
	if err != nil {
		return errors.Wrapf(err, "decrement stock %s/%s", productID, size)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var available int
	if err := i.db.QueryRow(ctx, getStockSQL, productID, size).Scan(&available); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return errors.Wrapf(err, "get stock %s/%s", productID, size)
	}
	return &catalog.InsufficientStockError{
		ProductID: productID,
		Size:      size,
		Requested: qty,
		Available: available,
	}
}
