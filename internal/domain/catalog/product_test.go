package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront-checkout/internal/apperr"
)

func TestProduct_InStock(t *testing.T) {
	p := Product{ID: "tee", Sizes: map[string]int{"M": 2, "S": 0}}

	assert.True(t, p.InStock("M", 2))
	assert.False(t, p.InStock("M", 3))
	assert.False(t, p.InStock("S", 1))
	assert.False(t, p.InStock("XL", 1))
	assert.Equal(t, []string{"M", "S"}, p.SizeLabels())
}

func TestInsufficientStockError(t *testing.T) {
	err := error(&InsufficientStockError{ProductID: "tee", Size: "M", Requested: 3, Available: 1})

	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, `product tee size "M": requested 3, available 1`, err.Error())
	assert.Equal(t, "1", apperr.DetailsOf(err)["available"])
}

func TestNotFoundError(t *testing.T) {
	err := error(&NotFoundError{ProductID: "ghost"})

	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, map[string]string{"productId": "ghost"}, apperr.DetailsOf(err))
}
