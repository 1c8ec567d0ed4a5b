package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// retryPolicy says how often an error class may be retried within one
// Generate call.
type retryPolicy int

const (
	retryNever retryPolicy = iota
	retryOnce
	retryAlways
)

// policyFor classifies err. Truncation and safety blocks repeat
// deterministically, so only transport problems and malformed output are
// worth another attempt.
func policyFor(err error) retryPolicy {
	var (
		maxTok  *ErrMaxTokensExceeded
		blocked *ErrContentBlocked
		invalid *ErrInvalidResponse
		missing *ErrMissingCredential
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.As(err, &maxTok), errors.As(err, &blocked), errors.As(err, &missing):
		return retryNever
	case errors.As(err, &invalid):
		return retryOnce
	}
	return retryAlways
}

// RetryProvider retries transient errors with exponential backoff and
// jitter. With MaxAttempts <= 1 it passes calls straight through.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	usedOnce := false

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		var resp *Response
		if resp, err = r.inner.Generate(ctx, req); err == nil {
			return resp, nil
		}

		switch policyFor(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if usedOnce {
				return nil, err
			}
			usedOnce = true
		}
		if attempt == attempts-1 {
			break
		}

		timer := time.NewTimer(r.delay(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// delay is InitialWait * Multiplier^attempt capped at MaxWait, with ±20%
// jitter. A rate limit with a RetryAfter hint waits exactly that long.
func (r *RetryProvider) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait)
	for range attempt {
		wait *= r.config.Multiplier
	}
	if limit := float64(r.config.MaxWait); limit > 0 && wait > limit {
		wait = limit
	}
	wait *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(max(wait, 0))
}
