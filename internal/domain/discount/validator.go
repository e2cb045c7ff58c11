package discount

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/storefront-checkout/internal/apperr"
	"github.com/xenking/storefront-checkout/internal/domain/money"
)

// Validator looks up a code and checks it against an order amount. It never
// changes usage counters, so it is safe to call for live previews.
type Validator struct {
	repo Repository
}

// NewValidator creates a Validator backed by repo.
func NewValidator(repo Repository) *Validator {
	return &Validator{repo: repo}
}

// Validate normalizes code, loads it and runs Check. The checks short-circuit
// in order: existence, active flag, validity window, usage limit, minimum
// order amount.
func (v *Validator) Validate(ctx context.Context, code string, now time.Time, orderAmount money.Money) (*Code, error) {
	normalized := Normalize(code)
	if normalized == "" {
		return nil, &RejectionError{Code: code, Reason: ErrNotFound}
	}

	c, err := v.repo.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &RejectionError{Code: normalized, Reason: ErrNotFound}
		}
		return nil, apperr.Wrap(errors.Wrap(err, "lookup discount"),
			apperr.KindDependency, "discount_unavailable", "discount lookup failed")
	}

	if err := c.Check(now, orderAmount); err != nil {
		return nil, err
	}
	return c, nil
}
