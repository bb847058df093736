package provider

import (
	"context"
	"strings"

	"github.com/TravanaHQ/localizer"
)

// Adapter wraps a Backend into a localizer.Provider. It owns the boundary
// where provider errors stop propagating: missing credentials, unsupported
// locales, transport failures and count mismatches all become per-text
// fallback results carrying the source text.
type Adapter struct {
	backend Backend
}

// NewAdapter wraps a backend. A nil backend yields an adapter where every
// call falls back, which keeps an unconfigured deployment functional.
func NewAdapter(backend Backend) *Adapter {
	return &Adapter{backend: backend}
}

var _ localizer.Provider = (*Adapter)(nil)

// Backend returns the wrapped backend, or nil.
func (a *Adapter) Backend() Backend {
	return a.backend
}

// SupportsLocale reports whether the backend natively covers the locale.
func (a *Adapter) SupportsLocale(locale string) bool {
	return a.backend != nil && a.backend.SupportsLocale(locale)
}

// TranslateBatch translates texts into the target locale, one result per
// input text in input order. It never returns fewer results than texts.
func (a *Adapter) TranslateBatch(ctx context.Context, texts []string, target, source string) []localizer.TranslationResult {
	if a.backend == nil {
		return a.fallbackAll(texts, target, &localizer.ConfigError{})
	}
	if !a.backend.SupportsLocale(target) {
		return a.fallbackAll(texts, target, &localizer.UnsupportedLocaleError{Locale: target})
	}

	// Providers reject empty input; keep blanks out of the wire call and
	// re-insert them as trivially successful pass-throughs.
	var filled []int
	for i, t := range texts {
		if strings.TrimSpace(t) != "" {
			filled = append(filled, i)
		}
	}

	results := make([]localizer.TranslationResult, len(texts))
	for i, t := range texts {
		results[i] = localizer.TranslationResult{
			TranslatedText: t,
			Locale:         target,
			Success:        true,
			Provider:       localizer.ProviderPrimary,
		}
	}
	if len(filled) == 0 {
		return results
	}

	batch := make([]string, len(filled))
	for j, i := range filled {
		batch[j] = texts[i]
	}

	translated, err := a.backend.Translate(ctx, BatchRequest{
		Texts:      batch,
		TargetLang: target,
		SourceLang: source,
		Markup:     localizer.AnyMarkup(batch),
	})
	if err != nil {
		return a.fallbackAll(texts, target, err)
	}
	if len(translated) != len(batch) {
		return a.fallbackAll(texts, target, &localizer.CountMismatchError{
			Expected: len(batch),
			Got:      len(translated),
		})
	}

	for j, i := range filled {
		src := texts[i]
		out := translated[j]
		if !localizer.MarkupIntact(src, out) {
			results[i] = localizer.TranslationResult{
				TranslatedText: src,
				Locale:         target,
				Success:        false,
				Error:          "markup damaged in translation",
				Provider:       localizer.ProviderFallback,
			}
			continue
		}
		results[i].TranslatedText = out
	}

	return results
}

// Usage returns backend quota usage, or nil when unavailable.
func (a *Adapter) Usage(ctx context.Context) *localizer.Usage {
	if a.backend == nil {
		return nil
	}
	u, err := a.backend.Usage(ctx)
	if err != nil {
		return nil
	}
	return u
}

func (a *Adapter) fallbackAll(texts []string, target string, cause error) []localizer.TranslationResult {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	results := make([]localizer.TranslationResult, len(texts))
	for i, t := range texts {
		results[i] = localizer.TranslationResult{
			TranslatedText: t,
			Locale:         target,
			Success:        false,
			Error:          msg,
			Provider:       localizer.ProviderFallback,
		}
	}
	return results
}
