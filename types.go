package localizer

import "context"

// ContentSnapshot is the translatable slice of a content item, read fresh
// from the content store at translation time.
type ContentSnapshot struct {
	Title           string         `json:"title,omitempty"`
	MetaTitle       string         `json:"metaTitle,omitempty"`
	MetaDescription string         `json:"metaDescription,omitempty"`
	Blocks          []ContentBlock `json:"blocks,omitempty"`
}

// ContentBlock is a typed, ordered unit of page content with an open-ended
// data payload (hero, text, faq, tips, gallery, ...).
type ContentBlock struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Order int            `json:"order"`
	Data  map[string]any `json:"data,omitempty"`
}

// Provider tiers reported on a TranslationResult.
const (
	// ProviderPrimary marks text translated by the configured provider.
	ProviderPrimary = "primary"
	// ProviderFallback marks pass-through text returned when the provider
	// is unavailable, unconfigured, or does not support the target locale.
	ProviderFallback = "fallback"
)

// TranslationResult is the outcome for a single text unit.
type TranslationResult struct {
	TranslatedText string `json:"translatedText"`
	Locale         string `json:"locale"`
	Success        bool   `json:"success"`
	Error          string `json:"error,omitempty"`
	Provider       string `json:"provider"`
}

// ContentTranslation is a translated copy of a ContentSnapshot for one
// target locale. Fields absent in the source stay absent here; fields whose
// translation failed retain the source text.
type ContentTranslation struct {
	SourceHash      string         `json:"sourceHash"`
	Locale          string         `json:"locale"`
	Title           string         `json:"title,omitempty"`
	MetaTitle       string         `json:"metaTitle,omitempty"`
	MetaDescription string         `json:"metaDescription,omitempty"`
	Blocks          []ContentBlock `json:"blocks,omitempty"`

	// Diagnostics for the admin UI.
	TranslatedCount int `json:"translatedCount"`
	CachedCount     int `json:"cachedCount"`
	FallbackCount   int `json:"fallbackCount"`
	TotalUnits      int `json:"totalUnits"`
}

// Usage reports provider quota consumption.
type Usage struct {
	CharactersUsed int64 `json:"character_count"`
	CharacterLimit int64 `json:"character_limit"`
}

// Remaining returns the number of characters left in the quota.
func (u *Usage) Remaining() int64 {
	if u == nil {
		return 0
	}
	if u.CharacterLimit <= u.CharactersUsed {
		return 0
	}
	return u.CharacterLimit - u.CharactersUsed
}

// Provider is the translation backend as seen by the Translator and
// Scheduler. Implementations never return errors: every failure degrades to
// per-text fallback results so a broken provider cannot fail a content item.
type Provider interface {
	// SupportsLocale reports whether the provider natively translates into
	// the locale. Unsupported locales still get results, as pass-through.
	SupportsLocale(locale string) bool

	// TranslateBatch translates texts into the target locale, one result
	// per input text in input order.
	TranslateBatch(ctx context.Context, texts []string, target, source string) []TranslationResult

	// Usage returns provider quota usage, or nil when the provider is
	// unconfigured or the call fails.
	Usage(ctx context.Context) *Usage
}

// TranslationCache stores translated text keyed by source-text hash and
// locale pair.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a translation in the cache.
	Set(key string, value string) error
}
