package localizer

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ContainsMarkup reports whether the text carries inline HTML tags. It is
// used to request tag-aware translation from the provider so markup is not
// mangled or translated as prose.
func ContainsMarkup(text string) bool {
	if !strings.Contains(text, "<") {
		return false
	}
	tok := html.NewTokenizer(strings.NewReader(text))
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			return true
		}
	}
}

// AnyMarkup reports whether any of the texts carries inline HTML.
func AnyMarkup(texts []string) bool {
	for _, t := range texts {
		if ContainsMarkup(t) {
			return true
		}
	}
	return false
}

// MarkupIntact reports whether a translated text preserved the tag structure
// of its source. Providers occasionally translate or drop tags; a unit that
// comes back with different tags falls back to the source text.
func MarkupIntact(source, translated string) bool {
	if !ContainsMarkup(source) {
		return true
	}
	return tagFingerprint(source) == tagFingerprint(translated)
}

// tagFingerprint returns the sorted multiset of element names in a fragment.
func tagFingerprint(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	var names []string
	doc.Find("body *").Each(func(_ int, sel *goquery.Selection) {
		if len(sel.Nodes) > 0 {
			names = append(names, sel.Nodes[0].Data)
		}
	})
	sort.Strings(names)
	return strings.Join(names, ",")
}

// StripMarkup returns the plain text content of a markup-bearing string.
func StripMarkup(text string) string {
	if !ContainsMarkup(text) {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	return strings.TrimSpace(doc.Text())
}

// EstimateCharacters sums the rune counts of every translatable unit in a
// snapshot. The admin UI uses it together with Usage to warn before a bulk
// run would exhaust the provider quota.
func EstimateCharacters(s *ContentSnapshot) int {
	total := 0
	for _, u := range ExtractUnits(s) {
		total += utf8.RuneCountInString(u.Text)
	}
	return total
}
