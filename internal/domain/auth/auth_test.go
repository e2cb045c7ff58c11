package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer(t *testing.T) {
	issuer, err := NewTokenIssuer([]byte("secret"), time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("user-1")
	require.NoError(t, err)

	sub, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenIssuer([]byte("other"), time.Hour)
		require.NoError(t, err)
		_, err = other.Verify(token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("expired", func(t *testing.T) {
		issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { issuer.now = time.Now }()
		_, err := issuer.Verify(token)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer(nil, time.Hour)
	assert.Error(t, err)
}

func TestHashAPIKey(t *testing.T) {
	a := HashAPIKey("key", []byte("pepper"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashAPIKey("key", []byte("pepper")))
	assert.NotEqual(t, a, HashAPIKey("key", []byte("other")))
}

func TestHasScope(t *testing.T) {
	k := &APIKeyInfo{Scopes: []string{ScopeOrdersWrite}}
	assert.True(t, k.HasScope(ScopeOrdersWrite))
	assert.False(t, k.HasScope(ScopeOrdersRead))
}
