package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

// RetryPolicy bounds the re-attempts on transient store failures.
type RetryPolicy struct {
	Attempts int
	Base     time.Duration
}

// DefaultRetryPolicy matches the config defaults.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Base: 100 * time.Millisecond}

func isTransient(err error) bool {
	return mongo.IsTimeout(err) || mongo.IsNetworkError(err)
}

// withRetry runs fn, retrying with exponential backoff while the error is a
// network/timeout failure. Domain errors pass through untouched on the first
// occurrence.
func withRetry(ctx context.Context, p RetryPolicy, fn func() error) error {
	if p.Attempts < 1 {
		p = DefaultRetryPolicy
	}
	var err error
	for attempt := 0; attempt < p.Attempts; attempt++ {
		if err = fn(); err == nil || !isTransient(err) {
			return err
		}
		backoff := p.Base << attempt
		log.Warn().Err(err).Int("attempt", attempt+1).Dur("backoff", backoff).
			Msg("transient store error, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("%w: %v", ErrTransientStore, err)
}
