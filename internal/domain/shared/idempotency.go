package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers the outcome of client submissions keyed by an
// idempotency key, so a retried request returns the original result.
type IdempotencyStore interface {
	// Claim reserves key for the caller. When the key was already claimed it
	// returns false together with the stored result, which is empty while the
	// first request is still in flight.
	Claim(ctx context.Context, key string, ttl time.Duration) (claimed bool, result string, err error)

	// Complete stores the result for a claimed key
	Complete(ctx context.Context, key, result string, ttl time.Duration) error

	// Release drops a claim so the request can be retried after a failure
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
