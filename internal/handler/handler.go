// Package handler implements the ogen-generated checkout API.
package handler

import (
	"github.com/go-faster/errors"

	"github.com/xenking/storefront-checkout/gen/oas"
	"github.com/xenking/storefront-checkout/internal/domain/catalog"
	"github.com/xenking/storefront-checkout/internal/domain/money"
	"github.com/xenking/storefront-checkout/internal/domain/order"
)

// Compile-time check ensuring Handler satisfies the ogen Handler interface.
var _ oas.Handler = (*Handler)(nil)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// ImageBaseURL is prepended to relative image paths in product responses.
	ImageBaseURL string
}

// Handler implements the ogen-generated Handler interface, delegating to the
// order service and the catalog.
type Handler struct {
	oas.UnimplementedHandler

	products     catalog.Repository
	orders       *order.Service
	imageBaseURL string
	policy       money.Policy
}

// New constructs a Handler. policy formats amounts in responses.
func New(cfg Config, products catalog.Repository, orders *order.Service, policy money.Policy) *Handler {
	return &Handler{
		products:     products,
		orders:       orders,
		imageBaseURL: cfg.ImageBaseURL,
		policy:       policy,
	}
}

// NewServer builds the API server under /api with the error mapping of
// this package.
func NewServer(h *Handler, sec *SecurityHandler, opts ...oas.ServerOption) (*oas.Server, error) {
	opts = append([]oas.ServerOption{
		oas.WithPathPrefix("/api"),
		oas.WithErrorHandler(HandleError),
	}, opts...)
	srv, err := oas.NewServer(h, sec, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create oas server")
	}
	return srv, nil
}
