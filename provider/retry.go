package provider

import (
	"context"
	"errors"
	"time"

	"github.com/TravanaHQ/localizer"
)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxRetries int           // Maximum number of retry attempts
	BaseDelay  time.Duration // Initial delay between retries
	MaxDelay   time.Duration // Maximum delay between retries
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry executes a function with exponential backoff retry.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}

		if attempt < cfg.MaxRetries {
			delay := cfg.BaseDelay * time.Duration(1<<attempt)
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}

// IsRetryable reports whether an error is worth retrying. Configuration and
// unsupported-locale errors are permanent; only transient transport errors
// qualify.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var transportErr *localizer.TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Retryable
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return false
}

// RetryableBackend wraps a Backend with retry logic on Translate calls.
type RetryableBackend struct {
	backend Backend
	config  RetryConfig
}

// NewRetryableBackend creates a backend with retry logic.
func NewRetryableBackend(backend Backend, cfg RetryConfig) *RetryableBackend {
	return &RetryableBackend{
		backend: backend,
		config:  cfg,
	}
}

var _ Backend = (*RetryableBackend)(nil)

// Name implements Backend.
func (b *RetryableBackend) Name() string {
	return b.backend.Name()
}

// SupportsLocale implements Backend.
func (b *RetryableBackend) SupportsLocale(locale string) bool {
	return b.backend.SupportsLocale(locale)
}

// Translate implements Backend with exponential backoff.
func (b *RetryableBackend) Translate(ctx context.Context, req BatchRequest) ([]string, error) {
	return WithRetry(ctx, b.config, func() ([]string, error) {
		return b.backend.Translate(ctx, req)
	})
}

// Usage implements Backend without retries.
func (b *RetryableBackend) Usage(ctx context.Context) (*localizer.Usage, error) {
	return b.backend.Usage(ctx)
}
