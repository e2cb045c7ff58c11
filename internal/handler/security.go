package handler

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/gen/oas"
	"github.com/xenking/storefront-checkout/internal/apperr"
	"github.com/xenking/storefront-checkout/internal/domain/auth"
)

// Compile-time check ensuring SecurityHandler satisfies the ogen interface.
var _ oas.SecurityHandler = (*SecurityHandler)(nil)

// operationScopes lists the scope each operator operation requires. API keys
// are refused on anything else.
var operationScopes = map[oas.OperationName]string{
	oas.MarkOrderPaidOperation:     auth.ScopeOrdersWrite,
	oas.UpdateOrderStatusOperation: auth.ScopeOrdersWrite,
	oas.AdminGetOrderOperation:     auth.ScopeOrdersRead,
}

// APIKeyHeader carries operator API keys.
const APIKeyHeader = "X-API-Key"

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type userKey struct{}

// UserFromContext returns the authenticated shopper.
func UserFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userKey{}).(string)
	return id
}

// SecurityHandler implements ogen's SecurityHandler: shoppers present a
// signed bearer token, operators an HMAC-hashed API key.
type SecurityHandler struct {
	tokens  TokenVerifier
	apikeys auth.Repository
	pepper  []byte
}

// NewSecurityHandler creates a SecurityHandler.
func NewSecurityHandler(tokens TokenVerifier, apikeys auth.Repository, pepper []byte) *SecurityHandler {
	return &SecurityHandler{
		tokens:  tokens,
		apikeys: apikeys,
		pepper:  pepper,
	}
}

// HandleBearerAuth verifies the shopper token and stores the user id.
func (s *SecurityHandler) HandleBearerAuth(ctx context.Context, _ oas.OperationName, t oas.BearerAuth) (context.Context, error) {
	if t.Token == "" {
		return ctx, auth.ErrUnauthorized
	}
	userID, err := s.tokens.Verify(t.Token)
	if err != nil {
		return ctx, auth.ErrUnauthorized
	}
	ctx = context.WithValue(ctx, userKey{}, userID)
	return zctx.With(ctx, zap.String("user_id", userID)), nil
}

// HandleAPIKey looks the key up by its HMAC and checks the operation's scope.
func (s *SecurityHandler) HandleAPIKey(ctx context.Context, op oas.OperationName, t oas.APIKey) (context.Context, error) {
	if t.APIKey == "" {
		return ctx, auth.ErrUnauthorized
	}
	hash := auth.HashAPIKey(t.APIKey, s.pepper)
	info, err := s.apikeys.FindByHash(ctx, hash)
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		return ctx, auth.ErrUnauthorized
	case err != nil:
		return ctx, apperr.Wrap(err, apperr.KindDependency, "auth_unavailable", "credential store unavailable")
	}
	if subtle.ConstantTimeCompare([]byte(hash), []byte(info.KeyHash)) != 1 {
		return ctx, auth.ErrUnauthorized
	}
	scope, ok := operationScopes[op]
	if !ok || !info.HasScope(scope) {
		return ctx, auth.ErrForbidden
	}
	return zctx.With(ctx, zap.String("api_key", info.Name)), nil
}

// Subject returns the shopper behind a valid bearer token. The rate limiter
// uses it to give each verified shopper a budget of their own.
func (s *SecurityHandler) Subject(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return "", false
	}
	return "user:" + userID, true
}
