package localizer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/TravanaHQ/localizer"
	"github.com/TravanaHQ/localizer/cache"
	"github.com/TravanaHQ/localizer/provider"
)

func beachGuide() *localizer.ContentSnapshot {
	return &localizer.ContentSnapshot{
		Title:           "Best Dubai Beaches",
		MetaTitle:       "Dubai Beaches Guide",
		MetaDescription: "A local's guide to the coastline.",
		Blocks: []localizer.ContentBlock{
			{
				ID:    "b1",
				Type:  "text",
				Order: 0,
				Data: map[string]any{
					"heading":  "Intro",
					"content":  "<p>Dubai has great beaches.</p>",
					"imageUrl": "https://cdn.example.com/beaches.jpg",
				},
			},
			{
				ID:    "b2",
				Type:  "faq",
				Order: 1,
				Data: map[string]any{
					"items": []any{
						map[string]any{"question": "When to visit?", "answer": "Winter."},
					},
				},
			},
		},
	}
}

// End-to-end over the real adapter: backend -> adapter -> translator.
func TestPipeline_SingleLocale(t *testing.T) {
	backend := provider.NewMockBackend()
	tr := localizer.NewTranslator(provider.NewAdapter(backend))

	got, err := tr.Translate(context.Background(), beachGuide(), "fr")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}

	if got.Title != "BEST DUBAI BEACHES" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Blocks[0].Data["heading"] != "INTRO" {
		t.Errorf("heading = %q", got.Blocks[0].Data["heading"])
	}

	// Markup survives translation with tags intact.
	content := got.Blocks[0].Data["content"].(string)
	if !strings.HasPrefix(content, "<p>") || !strings.HasSuffix(content, "</p>") {
		t.Errorf("content tags damaged: %q", content)
	}
	if !strings.Contains(content, "DUBAI HAS GREAT BEACHES.") {
		t.Errorf("content text not translated: %q", content)
	}

	if got.Blocks[0].Data["imageUrl"] != "https://cdn.example.com/beaches.jpg" {
		t.Errorf("imageUrl was translated: %q", got.Blocks[0].Data["imageUrl"])
	}
	if got.Blocks[0].ID != "b1" || got.Blocks[0].Type != "text" || got.Blocks[0].Order != 0 {
		t.Errorf("block metadata changed: %+v", got.Blocks[0])
	}
	if got.FallbackCount != 0 {
		t.Errorf("FallbackCount = %d", got.FallbackCount)
	}
}

func TestPipeline_UnconfiguredBackend(t *testing.T) {
	// A DeepL backend without credentials must degrade to pass-through, not
	// fail the content item.
	t.Setenv("DEEPL_API_KEY", "")
	backend := provider.NewDeepLBackend(provider.DeepLConfig{})
	if backend.Configured() {
		t.Fatal("backend claims credentials")
	}

	tr := localizer.NewTranslator(provider.NewAdapter(backend))
	got, err := tr.Translate(context.Background(), beachGuide(), "fr")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got.Title != "Best Dubai Beaches" {
		t.Errorf("Title = %q, want source pass-through", got.Title)
	}
	if got.TranslatedCount != 0 || got.FallbackCount != got.TotalUnits {
		t.Errorf("counts = translated %d fallback %d total %d",
			got.TranslatedCount, got.FallbackCount, got.TotalUnits)
	}
}

func TestPipeline_FanOutWithCache(t *testing.T) {
	backend := provider.NewMockBackend()
	backend.Unsupported = map[string]bool{"th": true}

	tr := localizer.NewTranslator(provider.NewAdapter(backend),
		localizer.WithCache(cache.NewInMemoryCache(0)))
	sched := localizer.NewScheduler(tr,
		localizer.WithBatchSize(2),
		localizer.WithCooldown(0))

	snap := beachGuide()
	locales := []string{"fr", "de", "th", "ar"}
	results, err := sched.TranslateAll(context.Background(), snap, locales)
	if err != nil {
		t.Fatalf("TranslateAll: %v", err)
	}

	if len(results) != len(locales) {
		t.Fatalf("got %d results, want %d", len(results), len(locales))
	}
	for _, locale := range locales {
		if results[locale] == nil {
			t.Fatalf("no result for %q", locale)
		}
	}

	if results["th"].Title != "Best Dubai Beaches" {
		t.Errorf("unsupported locale not passed through: %q", results["th"].Title)
	}
	if results["fr"].Title != "BEST DUBAI BEACHES" {
		t.Errorf("fr Title = %q", results["fr"].Title)
	}

	// A second run over the unchanged snapshot is served from cache.
	backend.Reset()
	second, err := sched.TranslateAll(context.Background(), snap, []string{"fr"})
	if err != nil {
		t.Fatalf("TranslateAll: %v", err)
	}
	if second["fr"].CachedCount != second["fr"].TotalUnits {
		t.Errorf("cached %d of %d units", second["fr"].CachedCount, second["fr"].TotalUnits)
	}
	if backend.CallCount != 0 {
		t.Errorf("backend called %d times on a cached run", backend.CallCount)
	}
}

func TestPipeline_StalenessPlan(t *testing.T) {
	backend := provider.NewMockBackend()
	tr := localizer.NewTranslator(provider.NewAdapter(backend))
	sched := localizer.NewScheduler(tr, localizer.WithCooldown(0))

	snap := beachGuide()
	stored, err := sched.TranslateAll(context.Background(), snap, []string{"fr", "de"})
	if err != nil {
		t.Fatalf("TranslateAll: %v", err)
	}

	// Nothing changed: no work.
	plan := localizer.PlanTranslations(snap, stored, []string{"fr", "de"})
	if plan.HasWork() {
		t.Errorf("unexpected work: %+v", plan)
	}

	// An edit invalidates stored translations and a new locale is missing.
	snap.Title = "Best Abu Dhabi Beaches"
	plan = localizer.PlanTranslations(snap, stored, []string{"fr", "de", "es"})
	if got := plan.NeedsTranslation(); len(got) != 3 {
		t.Errorf("NeedsTranslation = %v, want all three", got)
	}
}

func BenchmarkHashSnapshot(b *testing.B) {
	snap := beachGuide()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		localizer.HashSnapshot(snap)
	}
}

func BenchmarkExtractUnits(b *testing.B) {
	snap := beachGuide()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		localizer.ExtractUnits(snap)
	}
}
