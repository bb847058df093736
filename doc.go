// Package localizer is the multi-locale translation pipeline behind the
// Travana CMS admin dashboard.
//
// It takes a content snapshot (title, meta fields, and an ordered list of
// typed content blocks with free-form data) and produces per-locale
// translated copies. Translation is best effort: when the provider is
// unconfigured, rate limited, or does not cover a locale, the source text is
// passed through unchanged and the unit is flagged for diagnostics, so a
// broken provider never fails a content item.
//
// Basic usage:
//
//	import (
//	    "context"
//
//	    "github.com/TravanaHQ/localizer"
//	    "github.com/TravanaHQ/localizer/cache"
//	    "github.com/TravanaHQ/localizer/provider"
//	)
//
//	func main() {
//	    backend := provider.NewDeepLBackend(provider.DeepLConfig{})
//	    adapter := provider.NewAdapter(backend)
//
//	    translator := localizer.NewTranslator(adapter,
//	        localizer.WithCache(cache.NewInMemoryCache(3600)),
//	    )
//	    scheduler := localizer.NewScheduler(translator)
//
//	    results, _ := scheduler.TranslateAll(context.Background(), snapshot,
//	        []string{"fr", "de", "ar", "zh"})
//	    for locale, tr := range results {
//	        store(locale, tr) // persistence belongs to the caller
//	    }
//	}
package localizer
