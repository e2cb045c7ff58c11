package postgres

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/xenking/storefront-checkout/internal/domain/ledger"
)

const (
	saveCouponSQL = `INSERT INTO user_coupons (user_id, discount_code_id, is_used, saved_at)
		VALUES ($1, $2, FALSE, $3)
		ON CONFLICT (user_id, discount_code_id) DO NOTHING`

	// Inserts the pair already redeemed when it was never saved. An existing
	// pair is only updated while unused, so zero rows means a second
	// redemption.
	redeemCouponSQL = `INSERT INTO user_coupons (user_id, discount_code_id, is_used, saved_at, used_at)
		VALUES ($1, $2, TRUE, $3, $3)
		ON CONFLICT (user_id, discount_code_id) DO UPDATE
			SET is_used = TRUE, used_at = EXCLUDED.used_at
			WHERE user_coupons.is_used = FALSE`

	incrementUsageSQL = `UPDATE discount_codes SET used_count = used_count + 1, updated_at = now()
		WHERE id = $1 AND used_count < usage_limit`

	discountExistsSQL = `SELECT EXISTS (SELECT 1 FROM discount_codes WHERE id = $1)`

	couponColumns = `uc.user_id, uc.discount_code_id, dc.code, uc.is_used, uc.saved_at, uc.used_at`

	getCouponSQL = `SELECT ` + couponColumns + `
		FROM user_coupons uc JOIN discount_codes dc ON dc.id = uc.discount_code_id
		WHERE uc.user_id = $1 AND uc.discount_code_id = $2`

	listCouponsSQL = `SELECT ` + couponColumns + `
		FROM user_coupons uc JOIN discount_codes dc ON dc.id = uc.discount_code_id
		WHERE uc.user_id = $1
		ORDER BY uc.saved_at DESC, dc.code`
)

var _ ledger.Ledger = (*Ledger)(nil)

// Ledger implements ledger.Ledger backed by PostgreSQL.
type Ledger struct {
	db querier
}

// NewLedger returns a Ledger on db. Inside a transaction, Redeem runs in a
// savepoint of it.
func NewLedger(db querier) *Ledger {
	return &Ledger{db: db}
}

// Save records the claim unless it exists.
func (l *Ledger) Save(ctx context.Context, userID string, codeID uuid.UUID, at time.Time) (*ledger.Coupon, error) {
	if _, err := l.db.Exec(ctx, saveCouponSQL, userID, codeID, at); err != nil {
		if pgCode(err) == foreignKeyViolation {
			return nil, ledger.ErrNotFound
		}
		return nil, errors.Wrap(err, "save coupon")
	}
	rows, err := l.db.Query(ctx, getCouponSQL, userID, codeID)
	if err != nil {
		return nil, errors.Wrap(err, "get coupon")
	}
	c, err := pgx.CollectExactlyOneRow(rows, scanCoupon)
	if err != nil {
		return nil, errors.Wrap(err, "get coupon")
	}
	return &c, nil
}

// Redeem marks the pair used and takes one unit of the code's usage limit.
// Both statements share a transaction, so a lost race on the counter also
// undoes the coupon update.
func (l *Ledger) Redeem(ctx context.Context, userID string, codeID uuid.UUID, at time.Time) error {
	return pgx.BeginFunc(ctx, l.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, redeemCouponSQL, userID, codeID, at)
		if err != nil {
			if pgCode(err) == foreignKeyViolation {
				return ledger.ErrNotFound
			}
			return errors.Wrap(err, "redeem coupon")
		}
		if tag.RowsAffected() == 0 {
			return ledger.ErrAlreadyRedeemed
		}

		tag, err = tx.Exec(ctx, incrementUsageSQL, codeID)
		if err != nil {
			return errors.Wrap(err, "increment usage")
		}
		if tag.RowsAffected() == 1 {
			return nil
		}

		var exists bool
		if err := tx.QueryRow(ctx, discountExistsSQL, codeID).Scan(&exists); err != nil {
			return errors.Wrap(err, "check discount")
		}
		if !exists {
			return ledger.ErrNotFound
		}
		return ledger.ErrLimitReached
	})
}

// Coupons lists the user's claims, newest first.
func (l *Ledger) Coupons(ctx context.Context, userID string) ([]ledger.Coupon, error) {
	rows, err := l.db.Query(ctx, listCouponsSQL, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list coupons")
	}
	coupons, err := pgx.CollectRows(rows, scanCoupon)
	if err != nil {
		return nil, errors.Wrap(err, "list coupons")
	}
	return coupons, nil
}

func scanCoupon(row pgx.CollectableRow) (ledger.Coupon, error) {
	var c ledger.Coupon
	err := row.Scan(&c.UserID, &c.DiscountCodeID, &c.Code, &c.IsUsed, &c.SavedAt, &c.UsedAt)
	return c, err
}
