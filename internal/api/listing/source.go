package listing

import (
	"context"
	"slices"
	"sync"

	"github.com/cuongbtq/job-board/internal/api/domain"
)

// Source supplies the canonical job collection, newest posting first.
type Source interface {
	ListJobs(ctx context.Context) ([]domain.Job, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]domain.Job, error)

func (f SourceFunc) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return f(ctx)
}

// MemorySource is an in-process job collection used when no database is
// configured.
type MemorySource struct {
	mu   sync.RWMutex
	jobs []domain.Job
}

// NewMemorySource returns a source holding a copy of jobs.
func NewMemorySource(jobs []domain.Job) *MemorySource {
	return &MemorySource{jobs: slices.Clone(jobs)}
}

func (s *MemorySource) ListJobs(ctx context.Context) ([]domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.jobs), nil
}

// GetJob returns the job with id, active or not.
func (s *MemorySource) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			job := s.jobs[i]
			return &job, nil
		}
	}
	return nil, domain.NotFound("Job not found", nil)
}

// CreateJob prepends job to the collection.
func (s *MemorySource) CreateJob(ctx context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = slices.Insert(s.jobs, 0, *job)
	return nil
}

// SetJobActive toggles the active flag and returns the updated job.
func (s *MemorySource) SetJobActive(ctx context.Context, id string, active bool) (*domain.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			s.jobs[i].IsActive = active
			job := s.jobs[i]
			return &job, nil
		}
	}
	return nil, domain.NotFound("Job not found", nil)
}

// IncrementApplicantCount bumps the applicant count of a job by one.
func (s *MemorySource) IncrementApplicantCount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			s.jobs[i].ApplicantCount++
			return nil
		}
	}
	return domain.NotFound("Job not found", nil)
}

// DeleteJob removes a job from the collection.
func (s *MemorySource) DeleteJob(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.jobs)
	s.jobs = slices.DeleteFunc(s.jobs, func(j domain.Job) bool { return j.ID == id })
	if len(s.jobs) == n {
		return domain.NotFound("Job not found", nil)
	}
	return nil
}
