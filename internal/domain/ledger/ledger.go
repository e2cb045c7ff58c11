// Package ledger tracks per-user coupons and the shared usage counter of
// each discount code.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/xenking/storefront-checkout/internal/apperr"
	"github.com/xenking/storefront-checkout/internal/domain/discount"
)

var (
	// ErrAlreadyRedeemed is returned when the user already used the code.
	ErrAlreadyRedeemed = apperr.New(apperr.KindState, "coupon_already_redeemed", "coupon already redeemed")
	// ErrLimitReached is returned when the code's usage counter is exhausted.
	ErrLimitReached = discount.ErrLimitReached
	// ErrNotFound is returned for unknown discount codes.
	ErrNotFound = discount.ErrNotFound
)

// State of a (user, discount code) pair.
type State uint8

const (
	StateUnsaved State = iota
	StateSaved
	StateRedeemed
)

func (s State) String() string {
	switch s {
	case StateSaved:
		return "saved"
	case StateRedeemed:
		return "redeemed"
	default:
		return "unsaved"
	}
}

// CanTransition reports whether from -> to is a legal move. Redeemed is
// terminal. Unsaved -> Redeemed is the save-and-redeem shortcut taken at
// checkout when the user typed the code without saving it first.
func (s State) CanTransition(to State) bool {
	switch s {
	case StateUnsaved:
		return to == StateSaved || to == StateRedeemed
	case StateSaved:
		return to == StateRedeemed
	default:
		return false
	}
}

// Coupon is a user's claim on a discount code.
type Coupon struct {
	UserID         string
	DiscountCodeID uuid.UUID
	Code           string
	IsUsed         bool
	SavedAt        time.Time
	UsedAt         *time.Time
}

// State derives the pair's state from the stored flags.
func (c *Coupon) State() State {
	if c.IsUsed {
		return StateRedeemed
	}
	return StateSaved
}

// Ledger enforces at most one redemption per (user, code) and an atomic
// conditional increment of the code's usage counter.
type Ledger interface {
	// Save records a claim. Saving an existing pair returns it unchanged.
	Save(ctx context.Context, userID string, codeID uuid.UUID, at time.Time) (*Coupon, error)
	// Redeem marks the pair used and increments the code's counter only if
	// it is below the limit. Both happen or neither does.
	Redeem(ctx context.Context, userID string, codeID uuid.UUID, at time.Time) error
	// Coupons lists the user's claims, newest first.
	Coupons(ctx context.Context, userID string) ([]Coupon, error)
}
