package postgres

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-checkout/internal/domain/money"
	"github.com/xenking/storefront-checkout/internal/domain/order"
)

const (
	orderColumns = `id, user_id, items, currency, items_price, discount_percentage, discount_amount,
		shipping_price, total_price, discount_code_id, discount_code, shipping, payment_method,
		status, is_paid, payment, created_at, updated_at, delivered_at`

	createOrderSQL = `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	getOrderSQL          = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	getOrderForUpdateSQL = getOrderSQL + ` FOR UPDATE`
	listOrdersByUserSQL  = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	updateOrderSQL = `UPDATE orders SET status = $2, is_paid = $3, payment = $4, updated_at = $5, delivered_at = $6
		WHERE id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	db querier
}

// NewOrderRepository returns an OrderRepository that uses db.
func NewOrderRepository(db querier) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists a new order. Nested values go to JSONB columns.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	_, err := r.db.Exec(ctx, createOrderSQL,
		o.ID, o.UserID, encodeItems(o.Items), o.Currency,
		o.Pricing.ItemsPrice.Decimal(), o.Pricing.DiscountPercentage, o.Pricing.DiscountAmount.Decimal(),
		o.Pricing.ShippingPrice.Decimal(), o.Pricing.TotalPrice.Decimal(),
		o.DiscountCodeID, o.DiscountCode, encodeShipping(o.Shipping), string(o.PaymentMethod),
		o.Status.String(), o.IsPaid, encodePayment(o.Payment), o.CreatedAt, o.UpdatedAt, o.DeliveredAt,
	)
	if err != nil {
		if pgCode(err) == uniqueViolation {
			return order.ErrAlreadyExists
		}
		return errors.Wrapf(err, "create order %s", o.ID)
	}
	return nil
}

// Get returns an order by id.
func (r *OrderRepository) Get(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return getOrder(ctx, r.db, getOrderSQL, id)
}

// ListByUser returns the user's orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	rows, err := r.db.Query(ctx, listOrdersByUserSQL, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}

// Update locks the row, applies fn and writes the mutable columns back.
func (r *OrderRepository) Update(ctx context.Context, id uuid.UUID, fn func(o *order.Order) error) (*order.Order, error) {
	var updated *order.Order
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		o, err := getOrder(ctx, tx, getOrderForUpdateSQL, id)
		if err != nil {
			return err
		}
		if err := fn(o); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, updateOrderSQL,
			o.ID, o.Status.String(), o.IsPaid, encodePayment(o.Payment), o.UpdatedAt, o.DeliveredAt,
		); err != nil {
			return errors.Wrapf(err, "update order %s", id)
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func getOrder(ctx context.Context, db querier, sql string, id uuid.UUID) (*order.Order, error) {
	rows, err := db.Query(ctx, sql, id)
	if err != nil {
		return nil, errors.Wrapf(err, "get order %s", id)
	}
	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get order %s", id)
	}
	return &o, nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o                                      order.Order
		items, shipping, payment               []byte
		itemsPrice, discountAmount             decimal.Decimal
		shippingPrice, totalPrice, discountPct decimal.Decimal
		method, status                         string
		deliveredAt                            *time.Time
	)
	if err := row.Scan(
		&o.ID, &o.UserID, &items, &o.Currency, &itemsPrice, &discountPct, &discountAmount,
		&shippingPrice, &totalPrice, &o.DiscountCodeID, &o.DiscountCode, &shipping, &method,
		&status, &o.IsPaid, &payment, &o.CreatedAt, &o.UpdatedAt, &deliveredAt,
	); err != nil {
		return order.Order{}, err
	}

	var err error
	if o.Items, err = decodeItems(items); err != nil {
		return order.Order{}, err
	}
	if o.Shipping, err = decodeShipping(shipping); err != nil {
		return order.Order{}, err
	}
	if o.Payment, err = decodePayment(payment); err != nil {
		return order.Order{}, err
	}
	if o.Status, err = order.ParseStatus(status); err != nil {
		return order.Order{}, err
	}
	o.PaymentMethod = order.PaymentMethod(method)
	o.DeliveredAt = deliveredAt
	o.Pricing.ItemsPrice = money.FromDecimal(itemsPrice)
	o.Pricing.DiscountPercentage = discountPct
	o.Pricing.DiscountAmount = money.FromDecimal(discountAmount)
	o.Pricing.ShippingPrice = money.FromDecimal(shippingPrice)
	o.Pricing.TotalPrice = money.FromDecimal(totalPrice)
	o.Pricing.AmountAfterDiscount = o.Pricing.TotalPrice.Sub(o.Pricing.ShippingPrice)
	return o, nil
}
