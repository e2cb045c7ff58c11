package health

import (
	"context"
	"net"
	"runtime"

	"github.com/go-faster/errors"
	"github.com/segmentio/kafka-go"
)

// GoroutineCountCheck fails when the process runs more than threshold
// goroutines, which usually means a leak.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(context.Context) error {
		if n := runtime.NumGoroutine(); n > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", n, threshold)
		}
		return nil
	}
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheck fails when p cannot be reached.
func PingCheck(p Pinger) CheckFunc {
	return func(ctx context.Context) error {
		if err := p.Ping(ctx); err != nil {
			return errors.Wrap(err, "ping")
		}
		return nil
	}
}

// KafkaCheck fails when none of the brokers accepts a connection.
func KafkaCheck(brokers []string) CheckFunc {
	dialer := &kafka.Dialer{DualStack: true}
	return func(ctx context.Context) error {
		var last error
		for _, addr := range brokers {
			conn, err := dialer.DialContext(ctx, "tcp", addr)
			if err == nil {
				return conn.Close()
			}
			last = err
		}
		if last == nil {
			return errors.New("no kafka brokers configured")
		}
		var netErr net.Error
		if errors.As(last, &netErr) && netErr.Timeout() {
			return errors.Wrap(last, "kafka dial timeout")
		}
		return errors.Wrap(last, "kafka dial")
	}
}
