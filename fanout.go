package localizer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Fan-out defaults. Batches of locales run concurrently with a cooldown in
// between so bulk runs stay under the provider's rate limits.
const (
	DefaultBatchSize = 3
	DefaultCooldown  = 500 * time.Millisecond
)

// Scheduler fans a single snapshot out to many target locales in fixed-size
// concurrent batches.
type Scheduler struct {
	translator *Translator
	batchSize  int
	cooldown   time.Duration
	logger     *slog.Logger
	progress   func(completed, total int)
}

// SchedulerOption is a functional option for configuring the Scheduler.
type SchedulerOption func(*Scheduler)

// WithBatchSize sets how many locales translate concurrently per batch.
func WithBatchSize(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithCooldown sets the pause between locale batches.
func WithCooldown(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d >= 0 {
			s.cooldown = d
		}
	}
}

// WithProgress registers a callback invoked after each locale completes,
// in completion order. The callback must not block; it runs on the
// translating goroutine and delays its batch siblings.
func WithProgress(fn func(completed, total int)) SchedulerOption {
	return func(s *Scheduler) {
		s.progress = fn
	}
}

// WithLogger sets the logger for per-batch diagnostics.
func WithLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScheduler creates a Scheduler around a Translator.
func NewScheduler(translator *Translator, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		translator: translator,
		batchSize:  DefaultBatchSize,
		cooldown:   DefaultCooldown,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TranslateAll translates the snapshot into every target locale and returns
// a map with an entry for every requested locale, including locales that
// fell back to pass-through. A failing locale never blocks its batch
// siblings or later batches.
//
// The error return is non-nil only when the caller cancels the context or
// passes a nil snapshot; results accumulated before cancellation are still
// returned.
func (s *Scheduler) TranslateAll(ctx context.Context, snap *ContentSnapshot, locales []string) (map[string]*ContentTranslation, error) {
	if snap == nil {
		return nil, errors.New("localizer: nil snapshot")
	}

	targets := dedupe(locales)
	out := make(map[string]*ContentTranslation, len(targets))
	total := len(targets)
	completed := 0
	var mu sync.Mutex

	batches := chunkLocales(targets, s.batchSize)
	for bi, batch := range batches {
		s.logger.Debug("translating locale batch",
			"batch", bi+1, "of", len(batches), "locales", batch)

		var wg sync.WaitGroup
		for _, locale := range batch {
			wg.Add(1)
			go func(locale string) {
				defer wg.Done()
				tr, err := s.translator.Translate(ctx, snap, locale)
				if err != nil {
					// Translate only errors on nil snapshots, which was
					// checked above; keep the coverage invariant anyway.
					tr = &ContentTranslation{
						SourceHash: HashSnapshot(snap),
						Locale:     locale,
					}
				}
				mu.Lock()
				out[locale] = tr
				completed++
				// The callback runs under the lock so completion events
				// arrive in order and polled counts never regress.
				if s.progress != nil {
					s.progress(completed, total)
				}
				mu.Unlock()
			}(locale)
		}
		wg.Wait()

		if bi < len(batches)-1 && s.cooldown > 0 {
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case <-time.After(s.cooldown):
			}
		}
	}

	return out, nil
}

// dedupe preserves first-occurrence order.
func dedupe(locales []string) []string {
	seen := make(map[string]bool, len(locales))
	out := make([]string, 0, len(locales))
	for _, l := range locales {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

func chunkLocales(locales []string, size int) [][]string {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var chunks [][]string
	for start := 0; start < len(locales); start += size {
		end := min(start+size, len(locales))
		chunks = append(chunks, locales[start:end])
	}
	return chunks
}
