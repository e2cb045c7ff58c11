package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/xenking/storefront-checkout/internal/domain/money"
	"github.com/xenking/storefront-checkout/internal/domain/pricing"
)

// counterPoints returns the data points of an int64 counter by name.
func counterPoints(t *testing.T, reader *sdkmetric.ManualReader, name string) []metricdata.DataPoint[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is %T", name, m.Data)
			return sum.DataPoints
		}
	}
	return nil
}

func TestServiceMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	calc, err := pricing.NewCalculator(money.VND, pricing.ShippingPolicy{
		FreeThreshold: money.New(1000000),
		FlatRate:      money.New(30000),
	})
	require.NoError(t, err)

	store := newFakeStore(tee())
	store.codes["SALE10"] = sale10(0, 5)
	svc, err := NewService(Deps{
		Products:      store,
		Discounts:     store,
		Orders:        store,
		Ledger:        store,
		Transactor:    store,
		Calculator:    calc,
		MeterProvider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
	})
	require.NoError(t, err)
	svc.now = func() time.Time { return fixedNow }
	ctx := context.Background()

	_, err = svc.PlaceOrder(ctx, placeReq(
		[]CartItem{{ProductID: "tee", Size: "M", Qty: 2}}, "SALE10", 480000,
	))
	require.NoError(t, err)
	_, err = svc.PlaceOrder(ctx, placeReq(
		[]CartItem{{ProductID: "tee", Size: "M", Qty: 1}}, "", 1,
	))
	require.Error(t, err)

	placed := counterPoints(t, reader, "checkout.orders.placed")
	require.Len(t, placed, 1)
	assert.EqualValues(t, 1, placed[0].Value)
	discounted, _ := placed[0].Attributes.Value(attribute.Key("discounted"))
	assert.True(t, discounted.AsBool())

	redemptions := counterPoints(t, reader, "checkout.discount.redemptions")
	require.Len(t, redemptions, 1)
	assert.EqualValues(t, 1, redemptions[0].Value)

	failures := counterPoints(t, reader, "checkout.failures")
	require.Len(t, failures, 1)
	code, _ := failures[0].Attributes.Value(attribute.Key("code"))
	assert.Equal(t, "price_mismatch", code.AsString())
	op, _ := failures[0].Attributes.Value(attribute.Key("operation"))
	assert.Equal(t, "place_order", op.AsString())
}
