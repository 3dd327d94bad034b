// Package retry implements the single-retry policy for rate-limited
// API calls.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

// DefaultBackoff is the pause before the one retry of a rate-limited
// call.
const DefaultBackoff = 2 * time.Second

// Do runs op and, when it fails with domain.ErrRateLimited, retries it
// exactly once after the backoff. Any other error is returned as is.
func Do(ctx context.Context, backoff time.Duration, op func() error) error {
	err := op()
	if err == nil || !errors.Is(err, domain.ErrRateLimited) {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(backoff):
	}
	return op()
}
