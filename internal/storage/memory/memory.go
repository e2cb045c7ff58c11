// Package memory is a process-local checkout store for development and
// tests. One mutex guards every map. A checkout holds it for the whole
// unit and undoes its writes on failure, so readers never see a partial
// checkout.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xenking/storefront-checkout/internal/domain/auth"
	"github.com/xenking/storefront-checkout/internal/domain/catalog"
	"github.com/xenking/storefront-checkout/internal/domain/discount"
	"github.com/xenking/storefront-checkout/internal/domain/ledger"
	"github.com/xenking/storefront-checkout/internal/domain/order"
)

var (
	_ catalog.Repository  = (*Store)(nil)
	_ catalog.Inventory   = (*Store)(nil)
	_ discount.Repository = (*Store)(nil)
	_ ledger.Ledger       = (*Store)(nil)
	_ order.Repository    = (*Store)(nil)
	_ order.Transactor    = (*Store)(nil)
	_ auth.Repository     = (*Store)(nil)
)

type couponKey struct {
	userID string
	codeID uuid.UUID
}

// Store implements every checkout repository in memory.
type Store struct {
	mu       sync.Mutex
	products map[string]*catalog.Product
	codes    map[uuid.UUID]*discount.Code
	byCode   map[string]uuid.UUID
	coupons  map[couponKey]*ledger.Coupon
	orders   map[uuid.UUID]*order.Order
	apikeys  map[string]auth.APIKeyInfo
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		products: make(map[string]*catalog.Product),
		codes:    make(map[uuid.UUID]*discount.Code),
		byCode:   make(map[string]uuid.UUID),
		coupons:  make(map[couponKey]*ledger.Coupon),
		orders:   make(map[uuid.UUID]*order.Order),
		apikeys:  make(map[string]auth.APIKeyInfo),
	}
}

// UpsertProduct creates or replaces a product.
func (s *Store) UpsertProduct(_ context.Context, p catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p = copyProduct(p)
	s.products[p.ID] = &p
	return nil
}

// List returns all products ordered by ID.
func (s *Store) List(context.Context) ([]catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, copyProduct(*p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID returns a single product.
func (s *Store) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, &catalog.NotFoundError{ProductID: id}
	}
	cp := copyProduct(*p)
	return &cp, nil
}

// GetByIDs returns the products that exist among ids.
func (s *Store) GetByIDs(_ context.Context, ids []string) ([]catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, copyProduct(*p))
		}
	}
	return out, nil
}

// DecrementStock implements catalog.Inventory.
func (s *Store) DecrementStock(_ context.Context, productID, size string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decrementStock(productID, size, qty)
}

func (s *Store) decrementStock(productID, size string, qty int) error {
	p, ok := s.products[productID]
	if !ok {
		return &catalog.NotFoundError{ProductID: productID}
	}
	available, ok := p.Sizes[size]
	if !ok || available < qty {
		return &catalog.InsufficientStockError{
			ProductID: productID, Size: size, Requested: qty, Available: available,
		}
	}
	p.Sizes[size] = available - qty
	return nil
}

// UpsertDiscount creates a code or updates its terms, keyed by code. The
// usage counter survives an update.
func (s *Store) UpsertDiscount(_ context.Context, c *discount.Code) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	if id, ok := s.byCode[cp.Code]; ok {
		cp.ID = id
		cp.UsedCount = s.codes[id].UsedCount
		cp.UsageLimit = max(cp.UsageLimit, cp.UsedCount)
	} else if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	c.ID = cp.ID
	s.codes[cp.ID] = &cp
	s.byCode[cp.Code] = cp.ID
	return nil
}

// FindByCode implements discount.Repository.
func (s *Store) FindByCode(_ context.Context, code string) (*discount.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byCode[code]
	if !ok {
		return nil, discount.ErrNotFound
	}
	cp := *s.codes[id]
	return &cp, nil
}

// FindByID implements discount.Repository.
func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*discount.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.codes[id]
	if !ok {
		return nil, discount.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// Save implements ledger.Ledger.
func (s *Store) Save(_ context.Context, userID string, codeID uuid.UUID, at time.Time) (*ledger.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.codes[codeID]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	key := couponKey{userID: userID, codeID: codeID}
	if existing, ok := s.coupons[key]; ok {
		cp := *existing
		return &cp, nil
	}
	coupon := &ledger.Coupon{UserID: userID, DiscountCodeID: codeID, Code: c.Code, SavedAt: at}
	s.coupons[key] = coupon
	cp := *coupon
	return &cp, nil
}

// Redeem implements ledger.Ledger.
func (s *Store) Redeem(_ context.Context, userID string, codeID uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.redeem(userID, codeID, at)
	return err
}

// redeem returns a func that reverts the redemption.
func (s *Store) redeem(userID string, codeID uuid.UUID, at time.Time) (func(), error) {
	c, ok := s.codes[codeID]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	key := couponKey{userID: userID, codeID: codeID}
	existing, saved := s.coupons[key]
	if saved && existing.IsUsed {
		return nil, ledger.ErrAlreadyRedeemed
	}
	if c.UsedCount >= c.UsageLimit {
		return nil, ledger.ErrLimitReached
	}

	c.UsedCount++
	usedAt := at
	if saved {
		existing.IsUsed = true
		existing.UsedAt = &usedAt
		return func() {
			c.UsedCount--
			existing.IsUsed = false
			existing.UsedAt = nil
		}, nil
	}
	s.coupons[key] = &ledger.Coupon{
		UserID: userID, DiscountCodeID: codeID, Code: c.Code,
		IsUsed: true, SavedAt: at, UsedAt: &usedAt,
	}
	return func() {
		c.UsedCount--
		delete(s.coupons, key)
	}, nil
}

// Coupons implements ledger.Ledger.
func (s *Store) Coupons(_ context.Context, userID string) ([]ledger.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ledger.Coupon
	for key, c := range s.coupons {
		if key.userID == userID {
			out = append(out, *c)
		}
	}
	slices.SortFunc(out, func(a, b ledger.Coupon) int {
		if c := b.SavedAt.Compare(a.SavedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Code, b.Code)
	})
	return out, nil
}

// Get implements order.Repository.
func (s *Store) Get(_ context.Context, id uuid.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := copyOrder(*o)
	return &cp, nil
}

// ListByUser implements order.Repository.
func (s *Store) ListByUser(_ context.Context, userID string) ([]order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []order.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, copyOrder(*o))
		}
	}
	slices.SortFunc(out, func(a, b order.Order) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

// Update implements order.Repository.
func (s *Store) Update(_ context.Context, id uuid.UUID, fn func(o *order.Order) error) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	o := copyOrder(*stored)
	if err := fn(&o); err != nil {
		return nil, err
	}
	s.orders[id] = &o
	out := copyOrder(o)
	return &out, nil
}

// InTx implements order.Transactor.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx order.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &storeTx{s: s}
	if err := fn(ctx, tx); err != nil {
		for _, undo := range slices.Backward(tx.undo) {
			undo()
		}
		return err
	}
	return nil
}

// storeTx runs with Store.mu held.
type storeTx struct {
	s    *Store
	undo []func()
}

func (t *storeTx) DecrementStock(_ context.Context, productID, size string, qty int) error {
	if err := t.s.decrementStock(productID, size, qty); err != nil {
		return err
	}
	t.undo = append(t.undo, func() { t.s.products[productID].Sizes[size] += qty })
	return nil
}

func (t *storeTx) Redeem(_ context.Context, userID string, codeID uuid.UUID, at time.Time) error {
	undo, err := t.s.redeem(userID, codeID, at)
	if err != nil {
		return err
	}
	t.undo = append(t.undo, undo)
	return nil
}

func (t *storeTx) Create(_ context.Context, o *order.Order) error {
	if _, exists := t.s.orders[o.ID]; exists {
		return order.ErrAlreadyExists
	}
	cp := copyOrder(*o)
	t.s.orders[o.ID] = &cp
	t.undo = append(t.undo, func() { delete(t.s.orders, o.ID) })
	return nil
}

// UpsertAPIKey stores an operator key by its hash.
func (s *Store) UpsertAPIKey(_ context.Context, k auth.APIKeyInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k.Scopes = slices.Clone(k.Scopes)
	s.apikeys[k.KeyHash] = k
	return nil
}

// FindByHash implements auth.Repository.
func (s *Store) FindByHash(_ context.Context, hash string) (*auth.APIKeyInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k, ok := s.apikeys[hash]
	if !ok {
		return nil, auth.ErrUnauthorized
	}
	k.Scopes = slices.Clone(k.Scopes)
	return &k, nil
}

func copyProduct(p catalog.Product) catalog.Product {
	sizes := make(map[string]int, len(p.Sizes))
	for k, v := range p.Sizes {
		sizes[k] = v
	}
	p.Sizes = sizes
	return p
}

func copyOrder(o order.Order) order.Order {
	o.Items = slices.Clone(o.Items)
	if o.Payment != nil {
		p := *o.Payment
		o.Payment = &p
	}
	return o
}
