package localizer

// IsStale reports whether a stored translation no longer matches the live
// snapshot. A nil stored translation is always stale.
func IsStale(stored *ContentTranslation, snap *ContentSnapshot) bool {
	if stored == nil {
		return true
	}
	return stored.SourceHash != HashSnapshot(snap)
}

// TranslationPlan partitions a requested locale set against previously
// stored translations. The storage layer uses it for incremental runs: only
// missing and outdated locales go back through the pipeline.
type TranslationPlan struct {
	// UpToDate locales have a stored translation matching the live hash.
	UpToDate []string
	// Outdated locales have a stored translation with a stale hash.
	Outdated []string
	// Missing locales have no stored translation.
	Missing []string
}

// NeedsTranslation returns the locales that require a (re)translation pass,
// outdated first, in request order within each group.
func (p *TranslationPlan) NeedsTranslation() []string {
	out := make([]string, 0, len(p.Outdated)+len(p.Missing))
	out = append(out, p.Outdated...)
	out = append(out, p.Missing...)
	return out
}

// HasWork reports whether any locale needs translating.
func (p *TranslationPlan) HasWork() bool {
	return len(p.Outdated) > 0 || len(p.Missing) > 0
}

// PlanTranslations compares the requested locales with existing stored
// translations for the snapshot.
func PlanTranslations(snap *ContentSnapshot, existing map[string]*ContentTranslation, requested []string) *TranslationPlan {
	plan := &TranslationPlan{}
	liveHash := HashSnapshot(snap)

	for _, locale := range dedupe(requested) {
		stored, ok := existing[locale]
		switch {
		case !ok || stored == nil:
			plan.Missing = append(plan.Missing, locale)
		case stored.SourceHash != liveHash:
			plan.Outdated = append(plan.Outdated, locale)
		default:
			plan.UpToDate = append(plan.UpToDate, locale)
		}
	}

	return plan
}
