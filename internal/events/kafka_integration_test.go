//go:build integration

package events

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

func TestKafkaRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.8.0",
		tckafka.WithClusterID("checkout-test"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate kafka: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)

	p, err := NewKafkaPublisher(brokers, "orders")
	require.NoError(t, err)
	defer p.Close()

	e := testEvent()
	require.Eventually(t, func() bool {
		return p.Publish(ctx, e) == nil
	}, time.Minute, time.Second)

	r := kafka.NewReader(kafka.ReaderConfig{Brokers: brokers, Topic: "orders", Partition: 0})
	defer r.Close()
	msg, err := r.ReadMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, e.Order.ID.String(), string(msg.Key))
	assert.Equal(t, Encode(e), msg.Value)
}
