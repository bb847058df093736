package localizer

import (
	"context"
	"errors"
)

// Translator produces a translated copy of a ContentSnapshot for a single
// target locale. It holds no mutable state across calls; concurrent
// Translate calls are fully independent.
type Translator struct {
	provider   Provider
	sourceLang string
	cache      TranslationCache
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithSourceLang sets the source language (default: "en").
func WithSourceLang(lang string) TranslatorOption {
	return func(t *Translator) {
		t.sourceLang = lang
	}
}

// WithCache sets the translation cache consulted per text unit.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// NewTranslator creates a Translator backed by the given provider.
func NewTranslator(provider Provider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		provider:   provider,
		sourceLang: "en",
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SourceLang returns the configured source language.
func (t *Translator) SourceLang() string {
	return t.sourceLang
}

// Translate returns a translated copy of the snapshot for the target locale.
//
// Translation is best effort: provider failures degrade individual units to
// pass-through (the source text is retained, never blanked) and never fail
// the content item. The returned error is reserved for caller misuse.
func (t *Translator) Translate(ctx context.Context, snap *ContentSnapshot, target string) (*ContentTranslation, error) {
	if snap == nil {
		return nil, errors.New("localizer: nil snapshot")
	}

	out := &ContentTranslation{
		SourceHash:      HashSnapshot(snap),
		Locale:          target,
		Title:           snap.Title,
		MetaTitle:       snap.MetaTitle,
		MetaDescription: snap.MetaDescription,
		Blocks:          cloneBlocks(snap.Blocks),
	}

	// Translating into the source language is a verbatim copy.
	if SameLocale(target, t.sourceLang) {
		return out, nil
	}

	// Top-level fields go out as one batch, then one batch per block. A
	// failed batch degrades its own units only.
	topUnits := ExtractUnits(&ContentSnapshot{
		Title:           snap.Title,
		MetaTitle:       snap.MetaTitle,
		MetaDescription: snap.MetaDescription,
	})
	t.applyBatch(ctx, out, topUnits, target)

	for bi := range snap.Blocks {
		t.applyBatch(ctx, out, extractBlockUnits(bi, snap.Blocks[bi]), target)
	}

	return out, nil
}

// applyBatch translates one group of units and writes the successful results
// into the translation under assembly.
func (t *Translator) applyBatch(ctx context.Context, out *ContentTranslation, units []TextUnit, target string) {
	if len(units) == 0 {
		return
	}

	results, cached := t.translateUnits(ctx, units, target)
	out.TotalUnits += len(units)
	out.CachedCount += cached

	for i, res := range results {
		if !res.Success {
			out.FallbackCount++
			continue
		}
		setUnitText(out, units[i].Path, res.TranslatedText)
		if res.Provider == ProviderPrimary {
			out.TranslatedCount++
		}
	}
	// Cache hits carry the primary tier but were not translated this call.
	out.TranslatedCount -= cached
}

// translateUnits resolves units against the cache, forwards the misses to
// the provider, and returns one result per unit in unit order.
func (t *Translator) translateUnits(ctx context.Context, units []TextUnit, target string) ([]TranslationResult, int) {
	results := make([]TranslationResult, len(units))
	var missIdx []int
	cached := 0

	for i, u := range units {
		if t.cache != nil {
			key := CacheKey(HashText(u.Text), t.sourceLang, target)
			if v, ok := t.cache.Get(key); ok {
				results[i] = TranslationResult{
					TranslatedText: v,
					Locale:         target,
					Success:        true,
					Provider:       ProviderPrimary,
				}
				cached++
				continue
			}
		}
		missIdx = append(missIdx, i)
	}

	if len(missIdx) == 0 || t.provider == nil {
		for _, i := range missIdx {
			results[i] = TranslationResult{
				TranslatedText: units[i].Text,
				Locale:         target,
				Success:        false,
				Error:          (&ConfigError{}).Error(),
				Provider:       ProviderFallback,
			}
		}
		return results, cached
	}

	texts := make([]string, len(missIdx))
	for j, i := range missIdx {
		texts[j] = units[i].Text
	}

	batch := t.provider.TranslateBatch(ctx, texts, target, t.sourceLang)
	for j, i := range missIdx {
		if j >= len(batch) {
			results[i] = TranslationResult{
				TranslatedText: units[i].Text,
				Locale:         target,
				Success:        false,
				Error:          (&CountMismatchError{Expected: len(missIdx), Got: len(batch)}).Error(),
				Provider:       ProviderFallback,
			}
			continue
		}
		results[i] = batch[j]
		if batch[j].Success && t.cache != nil {
			key := CacheKey(HashText(units[i].Text), t.sourceLang, target)
			_ = t.cache.Set(key, batch[j].TranslatedText) // cache errors are non-fatal
		}
	}

	return results, cached
}
