package handler

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/xenking/storefront-checkout/gen/oas"
)

// ListProducts returns every product in the catalog.
func (h *Handler) ListProducts(ctx context.Context) ([]oas.Product, error) {
	products, err := h.products.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	out := make([]oas.Product, len(products))
	for i, p := range products {
		out[i] = h.toProduct(p)
	}
	return out, nil
}

// GetProduct returns a single product by ID.
func (h *Handler) GetProduct(ctx context.Context, params oas.GetProductParams) (*oas.Product, error) {
	p, err := h.products.GetByID(ctx, params.ProductId)
	if err != nil {
		return nil, err
	}
	result := h.toProduct(*p)
	return &result, nil
}
