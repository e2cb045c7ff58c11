// Package seed loads the development catalog, discount codes and operator
// key into a store.
package seed

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/internal/domain/catalog"
	"github.com/xenking/storefront-checkout/internal/domain/discount"
	"github.com/xenking/storefront-checkout/internal/domain/money"
)

// ParseProducts decodes a JSON array of products.
func ParseProducts(data []byte) ([]catalog.Product, error) {
	var products []catalog.Product
	err := jx.DecodeBytes(data).Arr(func(d *jx.Decoder) error {
		p := catalog.Product{Sizes: make(map[string]int)}
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "id":
				p.ID, err = d.Str()
			case "name":
				p.Name, err = d.Str()
			case "category":
				p.Category, err = d.Str()
			case "price":
				var n jx.Num
				if n, err = d.Num(); err != nil {
					return err
				}
				p.Price, err = money.Parse(n.String())
			case "image":
				err = d.Obj(func(d *jx.Decoder, key string) error {
					var dst *string
					switch key {
					case "thumbnail":
						dst = &p.Image.Thumbnail
					case "mobile":
						dst = &p.Image.Mobile
					case "tablet":
						dst = &p.Image.Tablet
					case "desktop":
						dst = &p.Image.Desktop
					default:
						return d.Skip()
					}
					v, err := d.Str()
					*dst = v
					return err
				})
			case "sizes":
				err = d.Obj(func(d *jx.Decoder, size string) error {
					n, err := d.Int()
					p.Sizes[size] = n
					return err
				})
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		if p.ID == "" {
			return errors.Errorf("product %d: id is required", len(products))
		}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parse products")
	}
	return products, nil
}

// Discounts returns the development discount codes, valid for a year from
// now.
func Discounts(now time.Time) []*discount.Code {
	start := now.Add(-time.Hour).UTC()
	end := start.AddDate(1, 0, 0)
	return []*discount.Code{
		{
			Code:               "WELCOME10",
			Percentage:         money.MustPercentage(10),
			StartDate:          start,
			EndDate:            end,
			UsageLimit:         1000,
			MinimumOrderAmount: money.Zero,
			IsActive:           true,
		},
		{
			Code:               "BIGSPENDER25",
			Percentage:         money.MustPercentage(25),
			StartDate:          start,
			EndDate:            end,
			UsageLimit:         100,
			MinimumOrderAmount: money.New(2_000_000),
			IsActive:           true,
		},
		{
			Code:               "FLASH50",
			Percentage:         money.MustPercentage(50),
			StartDate:          start,
			EndDate:            end,
			UsageLimit:         5,
			MinimumOrderAmount: money.New(500_000),
			IsActive:           true,
		},
	}
}

// Target receives seed data. Writes must be idempotent.
type Target struct {
	Product  func(ctx context.Context, p catalog.Product) error
	Discount func(ctx context.Context, c *discount.Code) error
}

// Apply writes products and codes to t.
func Apply(ctx context.Context, t Target, products []catalog.Product, codes []*discount.Code) error {
	lg := zctx.From(ctx)
	for _, p := range products {
		if err := t.Product(ctx, p); err != nil {
			return errors.Wrapf(err, "upsert product %s", p.ID)
		}
		lg.Debug("Upserted product", zap.String("id", p.ID), zap.String("name", p.Name))
	}
	for _, c := range codes {
		if err := t.Discount(ctx, c); err != nil {
			return errors.Wrapf(err, "upsert discount %s", c.Code)
		}
		lg.Debug("Upserted discount", zap.String("code", c.Code), zap.Stringer("percentage", c.Percentage))
	}
	lg.Info("Seeded store", zap.Int("products", len(products)), zap.Int("discounts", len(codes)))
	return nil
}
