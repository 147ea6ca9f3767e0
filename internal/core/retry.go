// AngelaMos | 2026
// retry.go

package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type RetryConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

var DefaultRetryConfig = RetryConfig{
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     5 * time.Second,
	MaxElapsedTime:  30 * time.Second,
}

// Retry runs op with exponential backoff while its error is retryable.
// Non-retryable errors are returned immediately.
func Retry(
	ctx context.Context,
	name string,
	cfg RetryConfig,
	op func(ctx context.Context) error,
) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = cfg.InitialInterval
	b.MaxInterval = cfg.MaxInterval
	b.MaxElapsedTime = cfg.MaxElapsedTime

	attempt := 0
	return backoff.RetryNotify(
		func() error {
			attempt++
			err := op(ctx)
			if err == nil {
				return nil
			}
			if !IsRetryable(err) && Classify(err) != KindUnknown {
				return backoff.Permanent(err)
			}
			return err
		},
		backoff.WithContext(b, ctx),
		func(err error, wait time.Duration) {
			slog.Warn("retrying operation",
				"operation", name,
				"attempt", attempt,
				"wait", wait,
				"error", err,
			)
		},
	)
}
