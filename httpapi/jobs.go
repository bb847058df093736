package httpapi

import (
	"sync"

	"github.com/TravanaHQ/localizer"
	"github.com/google/uuid"
)

// Job statuses as observed by the admin UI polling loop.
const (
	JobIdle       = "idle"
	JobInProgress = "in_progress"
	JobCompleted  = "completed"
)

// Job tracks one bulk translation run.
type Job struct {
	ID        uuid.UUID
	Status    string
	Total     int
	Completed int
	Results   map[string]*localizer.ContentTranslation

	mu sync.Mutex
}

// Progress records per-locale completion.
func (j *Job) Progress(completed, total int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = JobInProgress
	j.Completed = completed
	j.Total = total
}

// Finish records the final results and marks the job completed.
func (j *Job) Finish(results map[string]*localizer.ContentTranslation) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = JobCompleted
	j.Completed = len(results)
	j.Results = results
}

// snapshotView reads a consistent view for the status endpoint.
func (j *Job) view() jobView {
	j.mu.Lock()
	defer j.mu.Unlock()

	percent := 0
	if j.Total > 0 {
		percent = j.Completed * 100 / j.Total
	}
	v := jobView{
		ID:        j.ID.String(),
		Status:    j.Status,
		Total:     j.Total,
		Completed: j.Completed,
		Percent:   percent,
	}
	if j.Status == JobCompleted {
		v.Results = j.Results
	}
	return v
}

type jobView struct {
	ID        string                                   `json:"id"`
	Status    string                                   `json:"status"`
	Total     int                                      `json:"total"`
	Completed int                                      `json:"completed"`
	Percent   int                                      `json:"percent"`
	Results   map[string]*localizer.ContentTranslation `json:"results,omitempty"`
}

// jobStore is an in-memory registry of bulk translation jobs. Jobs are
// transient; the UI polls them to completion and the translations themselves
// are persisted by the CMS, not here.
type jobStore struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*Job
}

func newJobStore() *jobStore {
	return &jobStore{jobs: make(map[uuid.UUID]*Job)}
}

func (s *jobStore) create(total int) *Job {
	job := &Job{
		ID:     uuid.New(),
		Status: JobIdle,
		Total:  total,
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()
	return job
}

func (s *jobStore) get(id uuid.UUID) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	return job, ok
}
