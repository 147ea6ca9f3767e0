// AngelaMos | 2026
// nats.go

package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carterperez-dev/foodhall/internal/config"
)

const handlerTimeout = 30 * time.Second

// NATS publishes and consumes events on a JetStream stream.
type NATS struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	stream string
}

// Connect dials NATS and ensures the stream capturing bookings.> exists.
func Connect(ctx context.Context, cfg config.NATSConfig) (*NATS, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("foodhall-api"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     cfg.Stream,
		Subjects: []string{"bookings.>"},
		MaxAge:   7 * 24 * time.Hour,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream stream create: %w", err)
	}

	slog.Info("nats connected", "url", cfg.URL, "stream", cfg.Stream)
	return &NATS{nc: nc, js: js, stream: cfg.Stream}, nil
}

func (n *NATS) Publish(ctx context.Context, subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", subject, err)
	}

	if _, err := n.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("nats publish %s: %w", subject, err)
	}
	return nil
}

// Subscribe attaches a durable consumer named name to subject. Failed
// messages are nak'd for redelivery.
func (n *NATS) Subscribe(
	ctx context.Context,
	name, subject string,
	h Handler,
) (func(), error) {
	consumer, err := n.js.CreateOrUpdateConsumer(ctx, n.stream, jetstream.ConsumerConfig{
		Durable:       name,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    5,
	})
	if err != nil {
		return nil, fmt.Errorf("nats consumer create: %w", err)
	}

	cons, err := consumer.Consume(func(msg jetstream.Msg) {
		hctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		if err := h(hctx, msg.Subject(), msg.Data()); err != nil {
			slog.Error("message handler failed",
				"subject", msg.Subject(),
				"consumer", name,
				"error", err,
			)
			if nakErr := msg.Nak(); nakErr != nil {
				slog.Error("nats nak failed", "error", nakErr)
			}
			return
		}
		if ackErr := msg.Ack(); ackErr != nil {
			slog.Error("nats ack failed", "error", ackErr)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("nats consume: %w", err)
	}

	return cons.Stop, nil
}

// Ping reports whether the connection is up, for the health endpoint.
func (n *NATS) Ping(_ context.Context) error {
	if !n.nc.IsConnected() {
		return fmt.Errorf("nats: %s", n.nc.Status())
	}
	return nil
}

func (n *NATS) Close() {
	if err := n.nc.Drain(); err != nil {
		n.nc.Close()
	}
}
