// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/xenking/storefront-checkout/internal/domain/order"
)

var _ order.Publisher = (*KafkaPublisher)(nil)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one message per event, keyed by order id so events
// of one order stay in partition order.
type KafkaPublisher struct {
	writer     messageWriter
	topic      string
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

// Option configures a KafkaPublisher.
type Option func(*KafkaPublisher)

// WithTracerProvider sets the provider of producer spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(p *KafkaPublisher) {
		if tp != nil {
			p.tracer = tp.Tracer("github.com/xenking/storefront-checkout/internal/events")
		}
	}
}

// NewKafkaPublisher returns a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, opts ...Option) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are empty")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is empty")
	}
	return newPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           100 * time.Millisecond,
		WriteTimeout:           time.Second,
		MaxAttempts:            3,
		RequiredAcks:           kafka.RequireOne,
	}, topic, opts...), nil
}

func newPublisher(w messageWriter, topic string, opts ...Option) *KafkaPublisher {
	p := &KafkaPublisher{
		writer:     w,
		topic:      topic,
		tracer:     noop.NewTracerProvider().Tracer(""),
		propagator: otel.GetTextMapPropagator(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish implements order.Publisher.
func (p *KafkaPublisher) Publish(ctx context.Context, e order.Event) error {
	if e.Order == nil {
		return errors.New("event without order")
	}
	key := e.Order.ID.String()
	msg := kafka.Message{
		Key:   []byte(key),
		Value: Encode(e),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	}

	ctx, span := p.tracer.Start(ctx, "send "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("send"),
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(p.topic),
			semconv.MessagingKafkaMessageKey(key),
		),
	)
	defer span.End()

	p.propagator.Inject(ctx, messageCarrier{msg: &msg})

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return errors.Wrapf(err, "publish %s", e.Type)
	}
	return nil
}

// Close flushes pending messages.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Encode renders the event payload.
func Encode(e order.Event) []byte {
	o := e.Order
	var enc jx.Encoder
	enc.ObjStart()
	enc.FieldStart("type")
	enc.Str(string(e.Type))
	enc.FieldStart("order_id")
	enc.Str(o.ID.String())
	enc.FieldStart("user_id")
	enc.Str(o.UserID)
	enc.FieldStart("status")
	enc.Str(o.Status.String())
	if e.PreviousStatus != 0 {
		enc.FieldStart("previous_status")
		enc.Str(e.PreviousStatus.String())
	}
	enc.FieldStart("is_paid")
	enc.Bool(o.IsPaid)
	enc.FieldStart("currency")
	enc.Str(o.Currency)
	enc.FieldStart("items_price")
	enc.Str(o.Pricing.ItemsPrice.String())
	enc.FieldStart("discount_amount")
	enc.Str(o.Pricing.DiscountAmount.String())
	enc.FieldStart("shipping_price")
	enc.Str(o.Pricing.ShippingPrice.String())
	enc.FieldStart("total_price")
	enc.Str(o.Pricing.TotalPrice.String())
	if o.DiscountCode != "" {
		enc.FieldStart("discount_code")
		enc.Str(o.DiscountCode)
	}
	enc.FieldStart("item_count")
	enc.Int(len(o.Items))
	enc.FieldStart("at")
	enc.Str(e.At.UTC().Format(time.RFC3339Nano))
	enc.ObjEnd()
	return enc.Bytes()
}
