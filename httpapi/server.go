// Package httpapi exposes the translation pipeline to the CMS admin
// dashboard over HTTP.
//
// Partial translation failures are never HTTP errors: a request that falls
// back to pass-through still returns 200 with the fallback counts inside the
// payload. HTTP status codes are reserved for malformed requests.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/TravanaHQ/localizer"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Config wires the server's collaborators.
type Config struct {
	Provider   localizer.Provider
	Cache      localizer.TranslationCache
	SourceLang string        // default: "en"
	BatchSize  int           // default: localizer.DefaultBatchSize
	Cooldown   time.Duration // default: localizer.DefaultCooldown; negative disables the pause
	Locales    []string      // default: localizer.SiteLocales
	Logger     *slog.Logger  // default: slog.Default()
}

// Server handles translation requests for the admin dashboard.
type Server struct {
	provider   localizer.Provider
	cache      localizer.TranslationCache
	sourceLang string
	batchSize  int
	cooldown   time.Duration
	locales    []string
	logger     *slog.Logger
	jobs       *jobStore
}

// New creates a Server from the given configuration.
func New(cfg Config) *Server {
	s := &Server{
		provider:   cfg.Provider,
		cache:      cfg.Cache,
		sourceLang: cfg.SourceLang,
		batchSize:  cfg.BatchSize,
		cooldown:   cfg.Cooldown,
		locales:    cfg.Locales,
		logger:     cfg.Logger,
		jobs:       newJobStore(),
	}
	if s.sourceLang == "" {
		s.sourceLang = "en"
	}
	if s.batchSize <= 0 {
		s.batchSize = localizer.DefaultBatchSize
	}
	if s.cooldown == 0 {
		s.cooldown = localizer.DefaultCooldown
	}
	if s.cooldown < 0 {
		s.cooldown = 0
	}
	if len(s.locales) == 0 {
		s.locales = localizer.SiteLocales
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Router builds the chi router for the translation API.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/translate", func(r chi.Router) {
		r.Post("/", s.handleTranslate)
		r.Post("/bulk", s.handleBulk)
		r.Get("/jobs/{id}", s.handleJob)
		r.Get("/usage", s.handleUsage)
		r.Get("/locales", s.handleLocales)
	})

	return r
}

type translateRequest struct {
	Snapshot      *localizer.ContentSnapshot `json:"snapshot"`
	TargetLocale  string                     `json:"targetLocale,omitempty"`
	TargetLocales []string                   `json:"targetLocales,omitempty"`
	SourceLocale  string                     `json:"sourceLocale,omitempty"`
}

func (s *Server) newTranslator(sourceLocale string) *localizer.Translator {
	source := sourceLocale
	if source == "" {
		source = s.sourceLang
	}
	opts := []localizer.TranslatorOption{localizer.WithSourceLang(source)}
	if s.cache != nil {
		opts = append(opts, localizer.WithCache(s.cache))
	}
	return localizer.NewTranslator(s.provider, opts...)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Snapshot == nil {
		writeError(w, http.StatusBadRequest, "snapshot is required")
		return
	}
	if req.TargetLocale == "" {
		writeError(w, http.StatusBadRequest, "targetLocale is required")
		return
	}

	translator := s.newTranslator(req.SourceLocale)
	tr, err := translator.Translate(r.Context(), req.Snapshot, req.TargetLocale)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("translated content",
		"locale", req.TargetLocale,
		"units", tr.TotalUnits,
		"fallback", tr.FallbackCount)
	writeJSON(w, http.StatusOK, tr)
}

func (s *Server) handleBulk(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Snapshot == nil {
		writeError(w, http.StatusBadRequest, "snapshot is required")
		return
	}
	targets := req.TargetLocales
	if len(targets) == 0 {
		targets = s.locales
	}

	job := s.jobs.create(len(targets))
	scheduler := localizer.NewScheduler(s.newTranslator(req.SourceLocale),
		localizer.WithBatchSize(s.batchSize),
		localizer.WithCooldown(s.cooldown),
		localizer.WithLogger(s.logger),
		localizer.WithProgress(job.Progress),
	)

	// The job outlives the request; the UI polls the job endpoint.
	go func() {
		results, err := scheduler.TranslateAll(context.Background(), req.Snapshot, targets)
		if err != nil {
			s.logger.Warn("bulk translation interrupted", "job", job.ID, "error", err)
		}
		job.Finish(results)
	}()

	s.logger.Info("started bulk translation", "job", job.ID, "locales", len(targets))
	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": job.ID.String()})
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}
	job, ok := s.jobs.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job.view())
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	if s.provider == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	usage := s.provider.Usage(r.Context())
	if usage == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, usage)
}

func (s *Server) handleLocales(w http.ResponseWriter, r *http.Request) {
	supported, fallback := localizer.PartitionLocales(s.provider, s.locales)
	writeJSON(w, http.StatusOK, map[string][]string{
		"supported": supported,
		"fallback":  fallback,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
