// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the retry policy shared by stages that call
// remote services.
package httputil

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Policy describes a bounded exponential-backoff retry schedule. The
// zero value is usable; missing fields fall back to the defaults below.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first
	// (default 3).
	MaxAttempts int

	// BaseDelay is the wait before the first retry (default 4s). Each
	// subsequent wait doubles.
	BaseDelay time.Duration

	// MaxDelay caps the wait between attempts (default 10s).
	MaxDelay time.Duration
}

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 4 * time.Second
	defaultMaxDelay    = 10 * time.Second
)

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = defaultBaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = defaultMaxDelay
	}
	return p
}

// Backoff returns the wait before retry number retry (0-based):
// BaseDelay doubled per retry, capped at MaxDelay.
func (p Policy) Backoff(retry int) time.Duration {
	p = p.withDefaults()
	d := p.BaseDelay
	for i := 0; i < retry; i++ {
		d *= 2
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// Retry runs fn up to p.MaxAttempts times, sleeping per the backoff
// schedule between attempts. Any error from fn is retryable; the last
// error is returned after exhaustion. If the context is cancelled
// during a wait, ctx.Err() is returned.
func Retry(ctx context.Context, p Policy, fn func() error) error {
	p = p.withDefaults()

	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Backoff(attempt - 1)):
			}
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("after %d attempts: %w", p.MaxAttempts, lastErr)
}

// RetryableStatus reports whether an HTTP status code indicates a
// transient condition worth retrying: 429 or any 5xx.
func RetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}
