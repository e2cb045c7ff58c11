package postgres

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-checkout/internal/domain/discount"
	"github.com/xenking/storefront-checkout/internal/domain/money"
)

const (
	discountColumns = `id, code, discount_percentage, start_date, end_date,
		usage_limit, used_count, minimum_order_amount, is_active`

	getDiscountByCodeSQL = `SELECT ` + discountColumns + ` FROM discount_codes WHERE code = $1`
	getDiscountByIDSQL   = `SELECT ` + discountColumns + ` FROM discount_codes WHERE id = $1`

	// used_count is never lowered by an import.
	upsertDiscountSQL = `INSERT INTO discount_codes (` + discountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (code) DO UPDATE SET
			discount_percentage = EXCLUDED.discount_percentage,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			usage_limit = GREATEST(EXCLUDED.usage_limit, discount_codes.used_count),
			minimum_order_amount = EXCLUDED.minimum_order_amount,
			is_active = EXCLUDED.is_active,
			updated_at = now()
		RETURNING id`
)

var _ discount.Repository = (*DiscountRepository)(nil)

// DiscountRepository implements discount.Repository backed by PostgreSQL.
type DiscountRepository struct {
	db querier
}

// NewDiscountRepository returns a DiscountRepository that uses db.
func NewDiscountRepository(db querier) *DiscountRepository {
	return &DiscountRepository{db: db}
}

// FindByCode looks up a code. The caller normalizes it.
func (r *DiscountRepository) FindByCode(ctx context.Context, code string) (*discount.Code, error) {
	return r.findOne(ctx, getDiscountByCodeSQL, code)
}

// FindByID looks up a code by its identifier.
func (r *DiscountRepository) FindByID(ctx context.Context, id uuid.UUID) (*discount.Code, error) {
	return r.findOne(ctx, getDiscountByIDSQL, id)
}

func (r *DiscountRepository) findOne(ctx context.Context, sql string, arg any) (*discount.Code, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, errors.Wrapf(err, "find discount %v", arg)
	}
	c, err := pgx.CollectExactlyOneRow(rows, scanDiscount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, discount.ErrNotFound
		}
		return nil, errors.Wrapf(err, "find discount %v", arg)
	}
	return &c, nil
}

// Upsert creates a code or updates its terms, keyed by code.
func (r *DiscountRepository) Upsert(ctx context.Context, c *discount.Code) error {
	if err := c.Validate(); err != nil {
		return err
	}
	id := c.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	// An existing code keeps its id.
	if err := r.db.QueryRow(ctx, upsertDiscountSQL,
		id, c.Code, c.Percentage.Decimal(), c.StartDate, c.EndDate,
		c.UsageLimit, c.UsedCount, c.MinimumOrderAmount.Decimal(), c.IsActive,
	).Scan(&c.ID); err != nil {
		return errors.Wrapf(err, "upsert discount %q", c.Code)
	}
	return nil
}

func scanDiscount(row pgx.CollectableRow) (discount.Code, error) {
	var (
		c          discount.Code
		percentage decimal.Decimal
		minimum    decimal.Decimal
		start, end time.Time
	)
	if err := row.Scan(
		&c.ID, &c.Code, &percentage, &start, &end,
		&c.UsageLimit, &c.UsedCount, &minimum, &c.IsActive,
	); err != nil {
		return discount.Code{}, err
	}
	p, err := money.NewPercentage(percentage)
	if err != nil {
		return discount.Code{}, errors.Wrapf(err, "discount %q", c.Code)
	}
	c.Percentage = p
	c.StartDate = start
	c.EndDate = end
	c.MinimumOrderAmount = money.FromDecimal(minimum)
	return c, nil
}
