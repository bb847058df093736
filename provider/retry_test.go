package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TravanaHQ/localizer"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 10 * time.Millisecond}
}

func TestWithRetry_SucceedsFirstTry(t *testing.T) {
	calls := 0
	got, err := WithRetry(context.Background(), fastRetryConfig(), func() (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Fatalf("got %q, %v", got, err)
	}
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
}

func TestWithRetry_RecoversFromTransient(t *testing.T) {
	calls := 0
	got, err := WithRetry(context.Background(), fastRetryConfig(), func() (string, error) {
		calls++
		if calls < 3 {
			return "", &localizer.TransportError{Message: "flaky", Retryable: true}
		}
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Fatalf("got %q, %v", got, err)
	}
	if calls != 3 {
		t.Errorf("calls = %d", calls)
	}
}

func TestWithRetry_PermanentErrorStopsImmediately(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), fastRetryConfig(), func() (string, error) {
		calls++
		return "", &localizer.ConfigError{}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 for a permanent error", calls)
	}
}

func TestWithRetry_ExhaustsRetries(t *testing.T) {
	calls := 0
	transient := &localizer.TransportError{Message: "down", StatusCode: 503, Retryable: true}
	_, err := WithRetry(context.Background(), fastRetryConfig(), func() (string, error) {
		calls++
		return "", transient
	})
	if !errors.Is(err, transient) {
		t.Errorf("err = %v", err)
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4 (initial + 3 retries)", calls)
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(ctx, fastRetryConfig(), func() (string, error) {
		return "", &localizer.TransportError{Retryable: true}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"retryable transport", &localizer.TransportError{Retryable: true}, true},
		{"permanent transport", &localizer.TransportError{StatusCode: 403}, false},
		{"config", &localizer.ConfigError{}, false},
		{"unsupported locale", &localizer.UnsupportedLocaleError{Locale: "th"}, false},
		{"count mismatch", &localizer.CountMismatchError{Expected: 2, Got: 1}, false},
		{"context cancelled", context.Canceled, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryableBackend(t *testing.T) {
	mock := NewMockBackend()
	attempts := 0
	flaky := flakyBackend{inner: mock, failures: 2, attempts: &attempts}

	backend := NewRetryableBackend(flaky, fastRetryConfig())
	out, err := backend.Translate(context.Background(), BatchRequest{
		Texts: []string{"hello"}, TargetLang: "fr",
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out[0] != "HELLO" {
		t.Errorf("out = %v", out)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

// flakyBackend fails the first N Translate calls with a retryable error.
type flakyBackend struct {
	inner    Backend
	failures int
	attempts *int
}

func (b flakyBackend) Name() string { return b.inner.Name() }

func (b flakyBackend) SupportsLocale(locale string) bool { return b.inner.SupportsLocale(locale) }

func (b flakyBackend) Translate(ctx context.Context, req BatchRequest) ([]string, error) {
	*b.attempts++
	if *b.attempts <= b.failures {
		return nil, &localizer.TransportError{Message: "flaky", Retryable: true}
	}
	return b.inner.Translate(ctx, req)
}

func (b flakyBackend) Usage(ctx context.Context) (*localizer.Usage, error) {
	return b.inner.Usage(ctx)
}
