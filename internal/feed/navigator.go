package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/IshaanNene/FeedStalk/internal/types"
)

// RetryNavigator wraps a single-attempt navigation call with bounded
// retry and linear backoff. The wait before attempt n+1 is
// n * baseDelay. The final attempt's failure is returned as a
// NavigationError, distinguishable from partial extraction results.
type RetryNavigator struct {
	attempt     func(ctx context.Context, url string) error
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger

	// OnRetry, when set, is called once per failed attempt that will
	// be retried.
	OnRetry func()
}

// NewRetryNavigator creates a RetryNavigator around one navigation
// attempt function.
func NewRetryNavigator(attempt func(ctx context.Context, url string) error, maxAttempts int, baseDelay time.Duration, logger *slog.Logger) *RetryNavigator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryNavigator{
		attempt:     attempt,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      logger.With("component", "navigator"),
	}
}

// Navigate implements Navigator.
func (n *RetryNavigator) Navigate(ctx context.Context, url string) error {
	var lastErr error

	for i := 1; i <= n.maxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := n.attempt(ctx, url)
		if err == nil {
			if i > 1 {
				n.logger.Info("navigation succeeded after retry", "url", url, "attempt", i)
			}
			return nil
		}
		lastErr = err
		n.logger.Warn("navigation attempt failed", "url", url, "attempt", i, "error", err)

		if i < n.maxAttempts {
			if n.OnRetry != nil {
				n.OnRetry()
			}
			backoff := time.Duration(i) * n.baseDelay
			t := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
	}

	return &types.NavigationError{URL: url, Attempts: n.maxAttempts, Err: lastErr}
}
