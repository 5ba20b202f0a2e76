// Bounded retry with exponential backoff and jitter.
// Wraps the flaky external boundaries: page navigation, LLM calls, resume fetch.

package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	initialInterval = 500 * time.Millisecond
	maxInterval     = 5 * time.Second
)

func newPolicy(ctx context.Context, maxRetries uint64) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialInterval
	b.MaxInterval = maxInterval
	//RandomizationFactor defaults to 0.5, which gives us the jitter
	return backoff.WithContext(backoff.WithMaxRetries(b, maxRetries), ctx)
}

// Do runs op up to maxRetries+1 times. Context cancellation stops the loop.
func Do(ctx context.Context, maxRetries uint64, op func() error) error {
	return backoff.Retry(op, newPolicy(ctx, maxRetries))
}

// Value is Do for operations that produce a result.
func Value[T any](ctx context.Context, maxRetries uint64, op func() (T, error)) (T, error) {
	return backoff.RetryWithData(op, newPolicy(ctx, maxRetries))
}

// Permanent marks err as non-retryable so the backoff loop stops immediately.
func Permanent(err error) error {
	return backoff.Permanent(err)
}
