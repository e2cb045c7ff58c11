// Package auth identifies callers: shoppers by a signed bearer token and
// operators by an API key.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"slices"

	"github.com/xenking/storefront-checkout/internal/apperr"
)

// Scopes granted to operator API keys.
const (
	ScopeOrdersWrite = "orders:write"
	ScopeOrdersRead  = "orders:read"
)

var (
	ErrUnauthorized = apperr.New(apperr.KindValidation, "unauthorized", "missing or invalid credentials")
	ErrForbidden    = apperr.New(apperr.KindValidation, "forbidden", "credentials lack the required scope")
)

// APIKeyInfo holds the identity and permission data for a validated API key.
type APIKeyInfo struct {
	ID      string
	KeyHash string
	Name    string
	Scopes  []string
}

// HasScope reports whether the key was granted scope.
func (k *APIKeyInfo) HasScope(scope string) bool {
	return slices.Contains(k.Scopes, scope)
}

// Repository provides lookup of API keys by their HMAC hash.
type Repository interface {
	FindByHash(ctx context.Context, hash string) (*APIKeyInfo, error)
}

// HashAPIKey returns the hex HMAC-SHA256 of key under pepper. Only the hash
// is stored.
func HashAPIKey(key string, pepper []byte) string {
	mac := hmac.New(sha256.New, pepper)
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}
