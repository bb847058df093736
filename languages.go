package localizer

import (
	"strings"

	"golang.org/x/text/language"
)

// SiteLocales is the ordered catalog of locales the CMS publishes. The
// fan-out scheduler and the admin locale pickers both derive from it.
var SiteLocales = []string{
	"en", "ar", "zh", "ru", "fr", "de", "es", "it", "pt", "nl",
	"pl", "tr", "ja", "ko", "sv", "da", "nb", "fi", "cs", "el",
	"hu", "ro", "uk", "id", "hi", "th", "vi", "he", "fa", "ur",
}

// LanguageNames maps locale codes to English display names for the admin UI.
var LanguageNames = map[string]string{
	"en": "English",
	"ar": "Arabic",
	"zh": "Chinese (Simplified)",
	"ru": "Russian",
	"fr": "French",
	"de": "German",
	"es": "Spanish",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"pl": "Polish",
	"tr": "Turkish",
	"ja": "Japanese",
	"ko": "Korean",
	"sv": "Swedish",
	"da": "Danish",
	"nb": "Norwegian Bokmål",
	"fi": "Finnish",
	"cs": "Czech",
	"el": "Greek",
	"hu": "Hungarian",
	"ro": "Romanian",
	"uk": "Ukrainian",
	"id": "Indonesian",
	"hi": "Hindi",
	"th": "Thai",
	"vi": "Vietnamese",
	"he": "Hebrew",
	"fa": "Persian",
	"ur": "Urdu",
}

// RTLLanguages contains base language codes written right-to-left.
var RTLLanguages = map[string]bool{
	"ar": true,
	"he": true,
	"fa": true,
	"ur": true,
	"ps": true,
	"sd": true,
	"ug": true,
}

// NormalizeLocale parses a locale code ("fr", "pt-BR", "zh_CN") and returns
// its base language code. Region subtags are dropped: the provider mapping
// and the site catalog are both keyed by base language.
func NormalizeLocale(code string) (string, error) {
	trimmed := strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", err
	}
	base, _ := tag.Base()
	return base.String(), nil
}

// BaseLocale returns the lowercased base language code, falling back to the
// input when it cannot be parsed.
func BaseLocale(code string) string {
	if base, err := NormalizeLocale(code); err == nil {
		return base
	}
	return strings.ToLower(strings.SplitN(strings.ReplaceAll(code, "_", "-"), "-", 2)[0])
}

// SameLocale reports whether two codes resolve to the same base language.
func SameLocale(a, b string) bool {
	return BaseLocale(a) == BaseLocale(b)
}

// GetLanguageName returns the display name for a locale code, falling back
// to the code itself.
func GetLanguageName(code string) string {
	if name, ok := LanguageNames[BaseLocale(code)]; ok {
		return name
	}
	return code
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(code string) string {
	if RTLLanguages[BaseLocale(code)] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL reports whether the locale uses right-to-left text direction.
func IsRTL(code string) bool {
	return GetDirection(code) == "rtl"
}

// PartitionLocales splits a locale catalog into locales the provider
// translates natively and locales that will fall back to pass-through. The
// admin UI surfaces the split proactively so buyers know which languages get
// real translations.
func PartitionLocales(p Provider, catalog []string) (supported, fallback []string) {
	supported = make([]string, 0, len(catalog))
	fallback = make([]string, 0)
	for _, loc := range catalog {
		if p != nil && p.SupportsLocale(loc) {
			supported = append(supported, loc)
		} else {
			fallback = append(fallback, loc)
		}
	}
	return supported, fallback
}
