// Package provider implements translation backends and the adapter that
// degrades their failures into pass-through results.
package provider

import (
	"context"

	"github.com/TravanaHQ/localizer"
)

// Backend is a low-level translation backend. Unlike localizer.Provider,
// backends may fail: the Adapter converts every error into per-text fallback
// results before anything reaches the translator.
type Backend interface {
	// Name identifies the backend ("deepl", "openai", "mock").
	Name() string

	// SupportsLocale reports whether the backend's declared language set
	// includes a mapping for the locale.
	SupportsLocale(locale string) bool

	// Translate returns one translated string per input text, in order.
	Translate(ctx context.Context, req BatchRequest) ([]string, error)

	// Usage reports quota consumption, or (nil, nil) when the backend does
	// not track one.
	Usage(ctx context.Context) (*localizer.Usage, error)
}

// BatchRequest is the unit of work handed to a backend.
type BatchRequest struct {
	Texts      []string
	TargetLang string
	SourceLang string

	// Markup requests tag-aware translation so inline HTML survives.
	Markup bool
}
