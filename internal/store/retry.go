package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	berrors "go.etcd.io/bbolt/errors"
)

// RetryConfig configures how OpenWithRetry waits for a store another
// git-travel process holds.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	JitterFraction float64 // 0.0 to 1.0
}

// DefaultRetryConfig returns the retry policy used by the CLI.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:     2,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
		JitterFraction: 0.25,
	}
}

// OpenWithRetry is Open, retried with backoff while the database file is
// locked by another process.
func OpenWithRetry(ctx context.Context, driver, dataDir string, cfg *RetryConfig) (backend Backend, err error) {
	if cfg == nil {
		cfg = DefaultRetryConfig()
	}
	err = retry(ctx, cfg, "open store", func() error {
		backend, err = Open(driver, dataDir)
		return err
	})
	return backend, err
}

// isLocked reports whether err means the database is held by someone else.
func isLocked(err error) bool {
	return errors.Is(err, berrors.ErrTimeout)
}

// backoff computes the delay for the given attempt with jitter.
func (c *RetryConfig) backoff(attempt int) time.Duration {
	base := float64(c.InitialBackoff) * math.Pow(2, float64(attempt))
	if base > float64(c.MaxBackoff) {
		base = float64(c.MaxBackoff)
	}
	jitter := base * c.JitterFraction * (rand.Float64()*2 - 1)
	d := time.Duration(base + jitter)
	if d < 0 {
		d = 0
	}
	return d
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// retry runs fn until it succeeds, fails with an error other than a lock
// timeout, or runs out of attempts.
func retry(ctx context.Context, cfg *RetryConfig, operation string, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isLocked(lastErr) {
			return lastErr
		}
		if attempt < cfg.MaxRetries {
			if err := sleep(ctx, cfg.backoff(attempt)); err != nil {
				return fmt.Errorf("%s: %w (retry cancelled)", operation, lastErr)
			}
		}
	}
	return fmt.Errorf("%s: %w (after %d retries)", operation, lastErr, cfg.MaxRetries)
}
