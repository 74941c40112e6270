package intake

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
)

// Query scopes an application listing. Empty fields do not constrain.
type Query struct {
	ApplicantID string
	EmployerID  string
	JobID       string
	Limit       int
}

func (q Query) matches(app *domain.Application) bool {
	if q.ApplicantID != "" && app.ApplicantID != q.ApplicantID {
		return false
	}
	if q.EmployerID != "" && app.EmployerID != q.EmployerID {
		return false
	}
	if q.JobID != "" && app.JobID != q.JobID {
		return false
	}
	return true
}

// Store persists applications. ListApplications returns the most recently
// submitted first.
type Store interface {
	SaveApplication(ctx context.Context, app *domain.Application) error
	GetApplication(ctx context.Context, id string) (*domain.Application, error)
	ListApplications(ctx context.Context, q Query) ([]domain.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus, updatedAt time.Time) error
}

// MemoryStore keeps applications in process, newest first.
type MemoryStore struct {
	mu    sync.RWMutex
	items []domain.Application
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SaveApplication(ctx context.Context, app *domain.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Insert(s.items, 0, *app)
	return nil
}

func (s *MemoryStore) GetApplication(ctx context.Context, id string) (*domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if s.items[i].ID == id {
			app := s.items[i]
			return &app, nil
		}
	}
	return nil, domain.NotFound("Application not found", nil)
}

func (s *MemoryStore) ListApplications(ctx context.Context, q Query) ([]domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Application, 0)
	for i := range s.items {
		if !q.matches(&s.items[i]) {
			continue
		}
		out = append(out, s.items[i])
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = status
			s.items[i].UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.NotFound("Application not found", nil)
}
