package postgres

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/storefront-checkout/internal/domain/money"
	"github.com/xenking/storefront-checkout/internal/domain/order"
)

// JSONB codecs for the order columns that hold nested values.

func encodeItems(items []order.LineItem) []byte {
	var e jx.Encoder
	e.ArrStart()
	for _, it := range items {
		e.ObjStart()
		e.FieldStart("product_id")
		e.Str(it.ProductID)
		e.FieldStart("name")
		e.Str(it.Name)
		e.FieldStart("unit_price")
		e.Str(it.UnitPrice.String())
		e.FieldStart("qty")
		e.Int(it.Qty)
		e.FieldStart("size")
		e.Str(it.Size)
		e.ObjEnd()
	}
	e.ArrEnd()
	return e.Bytes()
}

func decodeItems(data []byte) ([]order.LineItem, error) {
	var items []order.LineItem
	err := jx.DecodeBytes(data).Arr(func(d *jx.Decoder) error {
		var it order.LineItem
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "product_id":
				it.ProductID, err = d.Str()
			case "name":
				it.Name, err = d.Str()
			case "unit_price":
				var s string
				if s, err = d.Str(); err == nil {
					it.UnitPrice, err = money.Parse(s)
				}
			case "qty":
				it.Qty, err = d.Int()
			case "size":
				it.Size, err = d.Str()
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		items = append(items, it)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode items")
	}
	return items, nil
}

func encodeShipping(s order.ShippingInfo) []byte {
	var e jx.Encoder
	e.ObjStart()
	for _, f := range []struct{ k, v string }{
		{"full_name", s.FullName},
		{"phone", s.Phone},
		{"address", s.Address},
		{"city", s.City},
		{"postal_code", s.PostalCode},
		{"country", s.Country},
	} {
		e.FieldStart(f.k)
		e.Str(f.v)
	}
	e.ObjEnd()
	return e.Bytes()
}

func decodeShipping(data []byte) (order.ShippingInfo, error) {
	var s order.ShippingInfo
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		var dst *string
		switch key {
		case "full_name":
			dst = &s.FullName
		case "phone":
			dst = &s.Phone
		case "address":
			dst = &s.Address
		case "city":
			dst = &s.City
		case "postal_code":
			dst = &s.PostalCode
		case "country":
			dst = &s.Country
		default:
			return d.Skip()
		}
		v, err := d.Str()
		*dst = v
		return err
	})
	if err != nil {
		return order.ShippingInfo{}, errors.Wrap(err, "decode shipping")
	}
	return s, nil
}

func encodePayment(p *order.Payment) []byte {
	if p == nil {
		return nil
	}
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("method")
	e.Str(string(p.Method))
	e.FieldStart("reference")
	e.Str(p.Reference)
	e.FieldStart("payer_email")
	e.Str(p.PayerEmail)
	e.FieldStart("paid_at")
	e.Str(p.PaidAt.UTC().Format(time.RFC3339Nano))
	e.ObjEnd()
	return e.Bytes()
}

func decodePayment(data []byte) (*order.Payment, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var p order.Payment
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "method":
			var s string
			s, err = d.Str()
			p.Method = order.PaymentMethod(s)
		case "reference":
			p.Reference, err = d.Str()
		case "payer_email":
			p.PayerEmail, err = d.Str()
		case "paid_at":
			var s string
			if s, err = d.Str(); err == nil {
				p.PaidAt, err = time.Parse(time.RFC3339Nano, s)
			}
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode payment")
	}
	return &p, nil
}
