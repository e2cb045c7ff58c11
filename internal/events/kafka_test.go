package events

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/xenking/storefront-checkout/internal/domain/money"
	"github.com/xenking/storefront-checkout/internal/domain/order"
	"github.com/xenking/storefront-checkout/internal/domain/pricing"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func testEvent() order.Event {
	at := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return order.Event{
		Type: order.EventStatusChanged,
		Order: &order.Order{
			ID:     uuid.MustParse("7a3c9e1e-4a55-4d8e-9d3b-0c7d1d3f5a11"),
			UserID: "u1",
			Items:  []order.LineItem{{ProductID: "tee", Qty: 2}},
			Pricing: pricing.Totals{
				ItemsPrice:     money.New(500000),
				DiscountAmount: money.New(50000),
				ShippingPrice:  money.New(30000),
				TotalPrice:     money.New(480000),
			},
			Currency:     "VND",
			DiscountCode: "SALE10",
			Status:       order.StatusPacking,
		},
		PreviousStatus: order.StatusPlaced,
		At:             at,
	}
}

func TestEncode(t *testing.T) {
	fields := map[string]string{}
	require.NoError(t, jx.DecodeBytes(Encode(testEvent())).Obj(func(d *jx.Decoder, key string) error {
		raw, err := d.Raw()
		if err != nil {
			return err
		}
		fields[key] = raw.String()
		return nil
	}))

	assert.Equal(t, `"order.status_changed"`, fields["type"])
	assert.Equal(t, `"7a3c9e1e-4a55-4d8e-9d3b-0c7d1d3f5a11"`, fields["order_id"])
	assert.Equal(t, `"packing"`, fields["status"])
	assert.Equal(t, `"placed"`, fields["previous_status"])
	assert.Equal(t, `"480000"`, fields["total_price"])
	assert.Equal(t, `"SALE10"`, fields["discount_code"])
	assert.Equal(t, `1`, fields["item_count"])
	assert.Equal(t, `"2025-06-15T12:00:00Z"`, fields["at"])
}

func TestEncodeOmitsEmptyFields(t *testing.T) {
	e := testEvent()
	e.PreviousStatus = 0
	e.Order.DiscountCode = ""
	payload := string(Encode(e))
	assert.NotContains(t, payload, "previous_status")
	assert.NotContains(t, payload, "discount_code")
}

func TestPublish(t *testing.T) {
	w := &fakeWriter{}
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	p := newPublisher(w, "orders", WithTracerProvider(tp))
	p.propagator = propagation.TraceContext{}

	ctx, parent := tp.Tracer("test").Start(context.Background(), "checkout")
	require.NoError(t, p.Publish(ctx, testEvent()))
	parent.End()

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "7a3c9e1e-4a55-4d8e-9d3b-0c7d1d3f5a11", string(msg.Key))

	carrier := messageCarrier{msg: &msg}
	assert.Equal(t, string(order.EventStatusChanged), carrier.Get("event_type"))
	assert.NotEmpty(t, carrier.Get("traceparent"))

	spans := rec.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "send orders", spans[0].Name())
	assert.Equal(t, trace.SpanKindProducer, spans[0].SpanKind())
	assert.Equal(t, parent.SpanContext().TraceID(), spans[0].SpanContext().TraceID())
}

func TestPublishError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := newPublisher(w, "orders")

	err := p.Publish(context.Background(), testEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")

	assert.Error(t, p.Publish(context.Background(), order.Event{Type: order.EventPlaced}))
}

func TestNewKafkaPublisherValidates(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "orders")
	assert.Error(t, err)
	_, err = NewKafkaPublisher([]string{"localhost:9092"}, "")
	assert.Error(t, err)
}

func TestCarrierSetReplaces(t *testing.T) {
	msg := kafka.Message{}
	c := messageCarrier{msg: &msg}
	c.Set("k", "a")
	c.Set("k", "b")
	assert.Equal(t, "b", c.Get("k"))
	assert.Equal(t, []string{"k"}, c.Keys())
}
