// Package catalog describes sellable products and their per-size stock.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/xenking/storefront-checkout/internal/apperr"
	"github.com/xenking/storefront-checkout/internal/domain/money"
)

var (
	// ErrNotFound is returned when a requested product does not exist.
	ErrNotFound = apperr.New(apperr.KindNotFound, "product_not_found", "product not found")
	// ErrInsufficientStock is the sentinel *InsufficientStockError unwraps to.
	ErrInsufficientStock = apperr.New(apperr.KindConflict, "insufficient_stock", "not enough stock for the selected size")
)

// Product represents a catalog item available for purchase.
type Product struct {
	ID       string
	Name     string
	Price    money.Money
	Category string
	Image    Image
	// Sizes maps a size label to units in stock.
	Sizes map[string]int
}

// Image holds responsive image URLs for a product.
type Image struct {
	Thumbnail string
	Mobile    string
	Tablet    string
	Desktop   string
}

// SizeLabels returns the product's sizes in a stable order.
func (p *Product) SizeLabels() []string {
	labels := make([]string, 0, len(p.Sizes))
	for s := range p.Sizes {
		labels = append(labels, s)
	}
	sort.Strings(labels)
	return labels
}

// InStock reports whether qty units of size are available.
func (p *Product) InStock(size string, qty int) bool {
	stock, ok := p.Sizes[size]
	return ok && stock >= qty
}

// NotFoundError names the missing product.
type NotFoundError struct {
	ProductID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Details implements apperr.Detailer.
func (e *NotFoundError) Details() map[string]string {
	return map[string]string{"productId": e.ProductID}
}

// InsufficientStockError reports a size bucket that cannot cover the
// requested quantity.
type InsufficientStockError struct {
	ProductID string
	Size      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %s size %q: requested %d, available %d",
		e.ProductID, e.Size, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Details implements apperr.Detailer.
func (e *InsufficientStockError) Details() map[string]string {
	return map[string]string{
		"productId": e.ProductID,
		"size":      e.Size,
		"requested": strconv.Itoa(e.Requested),
		"available": strconv.Itoa(e.Available),
	}
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
}

// Inventory decrements stock atomically: the check and the write are one
// step, so concurrent checkouts cannot oversell the last unit.
type Inventory interface {
	// DecrementStock returns *InsufficientStockError when the bucket holds
	// fewer than qty units.
	DecrementStock(ctx context.Context, productID, size string, qty int) error
}
