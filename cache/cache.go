// Package cache provides translation caching implementations.
//
// Keys are produced by localizer.CacheKey (text hash + source + target
// locale), so an unchanged text unit translated again for the same locale
// pair never goes back to the provider.
package cache

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns empty string and false if
	// not found or expired.
	Get(key string) (string, bool)

	// Set stores a translation in the cache.
	Set(key string, value string) error
}
