package apperr

import (
	"fmt"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type detailed struct {
	err error
}

func (d *detailed) Error() string { return "detailed: " + d.err.Error() }

func (d *detailed) Unwrap() error { return d.err }

func (d *detailed) Details() map[string]string {
	return map[string]string{"limit": "5"}
}

func TestAs(t *testing.T) {
	sentinel := New(KindConflict, "limit_reached", "limit reached")
	err := fmt.Errorf("redeem: %w", &detailed{err: sentinel})

	got, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "limit_reached", got.Code)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, map[string]string{"limit": "5"}, DetailsOf(err))
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Nil(t, DetailsOf(errors.New("boom")))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, KindDependency, "x", "y"))

	cause := errors.New("connection refused")
	err := Wrap(cause, KindDependency, "catalog_unavailable", "catalog unavailable")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "catalog unavailable: connection refused", err.Error())
	assert.Equal(t, "dependency", KindOf(err).String())
}
