package localizer

import "fmt"

// ConfigError indicates the provider has no credentials configured.
// It is recovered at the adapter boundary into fallback results; callers
// never see it as a returned error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	if e.Message == "" {
		return "provider credentials not configured"
	}
	return e.Message
}

// UnsupportedLocaleError indicates the target locale has no provider mapping.
type UnsupportedLocaleError struct {
	Locale string
}

func (e *UnsupportedLocaleError) Error() string {
	return fmt.Sprintf("locale %q is not supported by the translation provider", e.Locale)
}

// TransportError indicates a network failure or non-success HTTP status from
// the provider.
type TransportError struct {
	Message    string
	StatusCode int
	Cause      error
	Retryable  bool
}

func (e *TransportError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("provider transport error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("provider transport error: %s", msg)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// CountMismatchError indicates the provider returned a different number of
// translations than requested.
type CountMismatchError struct {
	Expected int
	Got      int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("translation count mismatch: expected %d, got %d", e.Expected, e.Got)
}
