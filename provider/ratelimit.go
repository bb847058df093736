package provider

import (
	"context"
	"sync"
	"time"

	"github.com/TravanaHQ/localizer"
)

// RateLimiter controls the rate of backend requests using a token bucket.
type RateLimiter struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

// RateLimitConfig configures the rate limiter.
type RateLimitConfig struct {
	RequestsPerMinute int // Maximum requests per minute (default: 60)
	BurstSize         int // Maximum burst size (default: same as RPM)
}

// NewRateLimiter creates a new rate limiter.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rpm := float64(cfg.RequestsPerMinute)
	if rpm <= 0 {
		rpm = 60
	}

	burst := float64(cfg.BurstSize)
	if burst <= 0 {
		burst = rpm
	}

	return &RateLimiter{
		tokens:     burst,
		maxTokens:  burst,
		refillRate: rpm / 60.0,
		lastRefill: time.Now(),
	}
}

// Wait blocks until a token is available or the context is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.TryAcquire() {
			return nil
		}

		r.mu.Lock()
		waitTime := time.Duration(float64(time.Second) / r.refillRate)
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
}

// TryAcquire attempts to acquire a token without blocking.
func (r *RateLimiter) TryAcquire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refill()

	if r.tokens >= 1 {
		r.tokens--
		return true
	}
	return false
}

// refill adds tokens based on elapsed time (must be called with lock held).
func (r *RateLimiter) refill() {
	now := time.Now()
	elapsed := now.Sub(r.lastRefill).Seconds()
	r.lastRefill = now

	r.tokens += elapsed * r.refillRate
	if r.tokens > r.maxTokens {
		r.tokens = r.maxTokens
	}
}

// Available returns the current number of available tokens.
func (r *RateLimiter) Available() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refill()
	return r.tokens
}

// RateLimitedBackend wraps a Backend with request rate limiting. The
// fan-out scheduler's batch cooldown is coarse; this guards the wire calls
// underneath it.
type RateLimitedBackend struct {
	backend Backend
	limiter *RateLimiter
}

// NewRateLimitedBackend creates a rate-limited backend.
func NewRateLimitedBackend(backend Backend, cfg RateLimitConfig) *RateLimitedBackend {
	return &RateLimitedBackend{
		backend: backend,
		limiter: NewRateLimiter(cfg),
	}
}

var _ Backend = (*RateLimitedBackend)(nil)

// Name implements Backend.
func (b *RateLimitedBackend) Name() string {
	return b.backend.Name()
}

// SupportsLocale implements Backend.
func (b *RateLimitedBackend) SupportsLocale(locale string) bool {
	return b.backend.SupportsLocale(locale)
}

// Translate implements Backend, waiting for a rate-limit token first.
func (b *RateLimitedBackend) Translate(ctx context.Context, req BatchRequest) ([]string, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, &localizer.TransportError{
			Message: "rate limit wait cancelled",
			Cause:   err,
		}
	}
	return b.backend.Translate(ctx, req)
}

// Usage implements Backend. Usage queries are cheap and bypass the limiter.
func (b *RateLimitedBackend) Usage(ctx context.Context) (*localizer.Usage, error) {
	return b.backend.Usage(ctx)
}

// Limiter returns the underlying rate limiter for inspection.
func (b *RateLimitedBackend) Limiter() *RateLimiter {
	return b.limiter
}
