package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xenking/storefront-checkout/internal/apperr"
)

func TestState_CanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateUnsaved, StateSaved, true},
		{StateUnsaved, StateRedeemed, true},
		{StateSaved, StateRedeemed, true},
		{StateSaved, StateUnsaved, false},
		{StateRedeemed, StateSaved, false},
		{StateRedeemed, StateUnsaved, false},
		{StateRedeemed, StateRedeemed, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestCoupon_State(t *testing.T) {
	c := Coupon{}
	assert.Equal(t, StateSaved, c.State())
	c.IsUsed = true
	assert.Equal(t, StateRedeemed, c.State())
}

func TestErrorKinds(t *testing.T) {
	assert.Equal(t, apperr.KindState, apperr.KindOf(ErrAlreadyRedeemed))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(ErrLimitReached))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(ErrNotFound))
}
