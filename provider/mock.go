package provider

import (
	"context"
	"strings"

	"github.com/TravanaHQ/localizer"
	"golang.org/x/net/html"
)

// MockBackend is a deterministic backend for tests. The default transform
// uppercases text content while leaving markup untouched.
type MockBackend struct {
	// Transform rewrites each text; defaults to markup-safe uppercasing.
	Transform func(text string) string
	// Unsupported lists locales the mock claims no mapping for.
	Unsupported map[string]bool
	// Err, when set, fails every Translate call.
	Err error
	// UsageValue is returned from Usage; nil means no quota tracked.
	UsageValue *localizer.Usage

	CallCount   int
	LastRequest *BatchRequest
}

// NewMockBackend creates a mock with the default uppercase transform.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

var _ Backend = (*MockBackend)(nil)

// Name implements Backend.
func (m *MockBackend) Name() string {
	return "mock"
}

// SupportsLocale implements Backend.
func (m *MockBackend) SupportsLocale(locale string) bool {
	return !m.Unsupported[localizer.BaseLocale(locale)]
}

// Translate implements Backend.
func (m *MockBackend) Translate(ctx context.Context, req BatchRequest) ([]string, error) {
	m.CallCount++
	reqCopy := req
	m.LastRequest = &reqCopy

	if m.Err != nil {
		return nil, m.Err
	}

	transform := m.Transform
	if transform == nil {
		transform = UppercaseText
	}

	out := make([]string, len(req.Texts))
	for i, t := range req.Texts {
		out[i] = transform(t)
	}
	return out, nil
}

// Usage implements Backend.
func (m *MockBackend) Usage(ctx context.Context) (*localizer.Usage, error) {
	return m.UsageValue, nil
}

// Reset clears call tracking.
func (m *MockBackend) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// UppercaseText uppercases the text content of a string, leaving HTML tags
// as they are.
func UppercaseText(s string) string {
	if !localizer.ContainsMarkup(s) {
		return strings.ToUpper(s)
	}

	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			return b.String()
		}
		raw := string(tok.Raw())
		if tt == html.TextToken {
			raw = strings.ToUpper(raw)
		}
		b.WriteString(raw)
	}
}
