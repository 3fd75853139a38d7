package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/konia/fiscal-analytics/internal/logger"
)

// Pinger is the part of Store needed to probe the database
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewConnectBackOff returns the backoff used while waiting for the database
// at startup. It gives up once maxElapsed has passed.
func NewConnectBackOff(maxElapsed time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = maxElapsed
	b.Multiplier = 1.5
	b.RandomizationFactor = 0.5
	return b
}

// WaitUntilReady pings until the database answers or the backoff gives up
func WaitUntilReady(ctx context.Context, p Pinger, b backoff.BackOff) error {
	attempt := 0
	operation := func() error {
		attempt++
		if err := p.Ping(ctx); err != nil {
			logger.WarnCtx(ctx, "Database not ready",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return fmt.Errorf("database not ready after %d attempts: %w", attempt, err)
	}
	return nil
}
