package listing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/google/uuid"
)

// Store is a Source that also answers single-job lookups and job writes.
type Store interface {
	Source
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	CreateJob(ctx context.Context, job *domain.Job) error
	SetJobActive(ctx context.Context, id string, active bool) (*domain.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

type session struct {
	manager  *Manager
	lastSeen time.Time
}

// Registry holds the live browse sessions, one Manager each.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	opts     Options
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewRegistry returns an empty registry. Sessions idle for longer than ttl
// are dropped by Sweep.
func NewRegistry(opts Options, ttl time.Duration) *Registry {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Registry{
		sessions: make(map[string]*session),
		opts:     opts,
		ttl:      ttl,
		logger:   opts.Logger,
		now:      time.Now,
	}
}

// Create registers a new empty session and returns its id.
func (r *Registry) Create() (string, *Manager) {
	id := uuid.New().String()
	m := NewManager(r.opts)

	r.mu.Lock()
	r.sessions[id] = &session{manager: m, lastSeen: r.now()}
	r.mu.Unlock()

	r.logger.Debug("Browse session created", slog.String("session_id", id))
	return id, m
}

// Get returns the session's manager and marks it as used.
func (r *Registry) Get(id string) (*Manager, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = r.now()
	return s.manager, true
}

// Delete ends a session.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Each calls fn for every live session's manager. fn runs without the
// registry lock held.
func (r *Registry) Each(fn func(m *Manager)) {
	r.mu.Lock()
	managers := make([]*Manager, 0, len(r.sessions))
	for _, s := range r.sessions {
		managers = append(managers, s.manager)
	}
	r.mu.Unlock()

	for _, m := range managers {
		fn(m)
	}
}

// Sweep drops sessions idle for longer than the ttl and returns how many
// were dropped.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	dropped := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps idle sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Browse session sweeper stopped")
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("Expired browse sessions",
					slog.Int("count", n),
					slog.Int("remaining", r.Len()),
				)
			}
		}
	}
}
