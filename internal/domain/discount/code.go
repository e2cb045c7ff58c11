// Package discount holds discount codes and the read-only checks that decide
// whether a code may be applied to an order.
package discount

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xenking/storefront-checkout/internal/apperr"
	"github.com/xenking/storefront-checkout/internal/domain/money"
)

var (
	// ErrNotFound is returned when no code matches.
	ErrNotFound = apperr.New(apperr.KindNotFound, "discount_not_found", "discount code not found")
	// ErrInactive is returned for codes switched off by an admin.
	ErrInactive = apperr.New(apperr.KindValidation, "discount_inactive", "discount code is not active")
	// ErrNotYetStarted is returned before the code's start date.
	ErrNotYetStarted = apperr.New(apperr.KindValidation, "discount_not_started", "discount code is not valid yet")
	// ErrExpired is returned after the code's end date.
	ErrExpired = apperr.New(apperr.KindValidation, "discount_expired", "discount code has expired")
	// ErrLimitReached is returned once every use of the code is taken.
	ErrLimitReached = apperr.New(apperr.KindConflict, "discount_limit_reached", "discount code usage limit reached")
	// ErrBelowMinimum is returned when the order is too small for the code.
	ErrBelowMinimum = apperr.New(apperr.KindValidation, "discount_below_minimum", "order amount is below the discount minimum")
)

// Code is a redeemable discount code. Code is stored uppercase.
type Code struct {
	ID                 uuid.UUID
	Code               string
	Percentage         money.Percentage
	StartDate          time.Time
	EndDate            time.Time
	UsageLimit         int
	UsedCount          int
	MinimumOrderAmount money.Money
	IsActive           bool
}

// Normalize returns the canonical form of a user-entered code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Check runs every validation step after the lookup, in order, and returns
// the first failure as a *RejectionError.
func (c *Code) Check(now time.Time, orderAmount money.Money) error {
	switch {
	case !c.IsActive:
		return c.reject(ErrInactive, "", "")
	case now.Before(c.StartDate):
		return c.reject(ErrNotYetStarted, "startDate", c.StartDate.UTC().Format(time.RFC3339Nano))
	case now.After(c.EndDate):
		return c.reject(ErrExpired, "endDate", c.EndDate.UTC().Format(time.RFC3339Nano))
	case c.UsedCount >= c.UsageLimit:
		return c.reject(ErrLimitReached, "usageLimit", strconv.Itoa(c.UsageLimit))
	case orderAmount.LessThan(c.MinimumOrderAmount):
		return c.reject(ErrBelowMinimum, "minimumOrderAmount", c.MinimumOrderAmount.String())
	}
	return nil
}

func (c *Code) reject(reason *apperr.Error, key, threshold string) *RejectionError {
	return &RejectionError{Code: c.Code, Reason: reason, ThresholdKey: key, Threshold: threshold}
}

// Validate checks the code's own invariants before it is stored.
func (c *Code) Validate() error {
	switch {
	case c.Code == "" || c.Code != Normalize(c.Code):
		return apperr.New(apperr.KindValidation, "invalid_discount", "discount code must be non-empty uppercase")
	case !c.StartDate.Before(c.EndDate):
		return apperr.New(apperr.KindValidation, "invalid_discount", "start date must precede end date")
	case c.UsageLimit <= 0:
		return apperr.New(apperr.KindValidation, "invalid_discount", "usage limit must be positive")
	case c.UsedCount < 0 || c.UsedCount > c.UsageLimit:
		return apperr.New(apperr.KindValidation, "invalid_discount", "used count must be within [0, usage limit]")
	case c.MinimumOrderAmount.IsNegative():
		return apperr.New(apperr.KindValidation, "invalid_discount", "minimum order amount must not be negative")
	}
	return nil
}

// RejectionError explains why a code was not accepted. It unwraps to one of
// the package sentinels.
type RejectionError struct {
	Code         string
	Reason       *apperr.Error
	ThresholdKey string
	Threshold    string
}

func (e *RejectionError) Error() string {
	msg := "discount " + strconv.Quote(e.Code) + ": " + e.Reason.Message
	if e.ThresholdKey != "" {
		msg += " (" + e.ThresholdKey + " " + e.Threshold + ")"
	}
	return msg
}

func (e *RejectionError) Unwrap() error { return e.Reason }

// Details implements apperr.Detailer.
func (e *RejectionError) Details() map[string]string {
	d := map[string]string{"code": e.Code}
	if e.ThresholdKey != "" {
		d[e.ThresholdKey] = e.Threshold
	}
	return d
}

// Repository provides read access to discount codes. FindByCode expects a
// normalized code and returns ErrNotFound when it does not exist.
type Repository interface {
	FindByCode(ctx context.Context, code string) (*Code, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Code, error)
}
