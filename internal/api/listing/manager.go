// Package listing owns a browse session's canonical job collection and keeps
// its filtered list and pagination derived from it.
package listing

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/filter"
	"github.com/cuongbtq/job-board/internal/api/pagination"
)

// Options configures a Manager.
type Options struct {
	ItemsPerPage int
	PageDelta    int
	Logger       *slog.Logger
}

// Snapshot is the read-only view handed to the rendering layer.
type Snapshot struct {
	Items      []domain.Job        `json:"items"`
	Pagination pagination.State    `json:"pagination"`
	Window     []pagination.Marker `json:"window"`
	Filters    domain.JobFilterSet `json:"filters"`
	Selected   *domain.Job         `json:"selected,omitempty"`
	IsLoading  bool                `json:"is_loading"`
	Error      string              `json:"error,omitempty"`
}

// Manager holds one browse session's state. The filtered list and
// pagination are recomputed by every operation that changes the collection
// or the filters and are never written any other way.
type Manager struct {
	mu     sync.Mutex
	logger *slog.Logger

	itemsPerPage int
	delta        int

	items      []domain.Job
	filters    domain.JobFilterSet
	filtered   []domain.Job
	page       pagination.State
	selectedID string
	loading    bool
	errMsg     string

	// issued is the sequence number of the most recent BeginLoad.
	issued uint64
}

// NewManager returns an empty manager on page 1 with default filters.
func NewManager(opts Options) *Manager {
	if opts.ItemsPerPage <= 0 {
		opts.ItemsPerPage = pagination.DefaultItemsPerPage
	}
	if opts.PageDelta <= 0 {
		opts.PageDelta = pagination.DefaultDelta
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	m := &Manager{
		logger:       opts.Logger,
		itemsPerPage: opts.ItemsPerPage,
		delta:        opts.PageDelta,
		filters:      domain.DefaultFilters(),
		page:         pagination.Compute(0, opts.ItemsPerPage, 1),
	}
	return m
}

// Load fetches the collection from src and applies it. Only the most recently
// started load may apply its result; an older completion is discarded.
func (m *Manager) Load(ctx context.Context, src Source) error {
	seq := m.BeginLoad()

	jobs, err := src.ListJobs(ctx)
	if err != nil {
		var de *domain.Error
		if !errors.As(err, &de) {
			de = domain.Fetch("Failed to fetch jobs", err)
		}
		m.FailLoad(seq, de)
		return de
	}

	m.CompleteLoad(seq, jobs)
	return nil
}

// BeginLoad marks a load as in flight and returns its sequence number.
func (m *Manager) BeginLoad() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.issued++
	m.loading = true
	m.errMsg = ""
	return m.issued
}

// CompleteLoad replaces the canonical collection with jobs under the current
// filters. The current page is left as it is. It reports false when seq has
// been superseded by a later BeginLoad.
func (m *Manager) CompleteLoad(seq uint64, jobs []domain.Job) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.issued {
		m.logger.Warn("Discarding stale job load",
			slog.Uint64("seq", seq),
			slog.Uint64("latest", m.issued),
		)
		return false
	}

	m.items = slices.Clone(jobs)
	m.loading = false
	m.errMsg = ""
	m.recompute()
	return true
}

// FailLoad records a failed load. The canonical collection is kept.
func (m *Manager) FailLoad(seq uint64, err error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.issued {
		return false
	}

	m.loading = false
	m.errMsg = "Failed to fetch jobs"
	var de *domain.Error
	if errors.As(err, &de) {
		m.errMsg = de.Message
	}

	m.logger.Warn("Job load failed",
		slog.Uint64("seq", seq),
		slog.String("error", err.Error()),
	)
	return true
}

// Replace synchronously loads jobs as the canonical collection.
func (m *Manager) Replace(jobs []domain.Job) {
	m.CompleteLoad(m.BeginLoad(), jobs)
}

// SetFilters merges p into the current filters and returns to page 1.
func (m *Manager) SetFilters(p domain.FilterPatch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.filters = m.filters.Merge(p)
	m.page.CurrentPage = 1
	m.recompute()
}

// ClearFilters restores the default filters and returns to page 1.
func (m *Manager) ClearFilters() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.filters = domain.DefaultFilters()
	m.page.CurrentPage = 1
	m.recompute()
}

// SetPage moves to page n. n is not clamped; an out-of-range page renders
// as an empty slice.
func (m *Manager) SetPage(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.page.CurrentPage = n
}

// AddItem prepends job to the canonical collection.
func (m *Manager) AddItem(job domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if job.ID == "" {
		return domain.Validation("job id is required", nil)
	}
	if m.indexOf(job.ID) >= 0 {
		return domain.Conflict("job already exists", nil)
	}

	m.items = slices.Insert(m.items, 0, job)
	m.recompute()
	return nil
}

// UpdateItem replaces the job with the same id in place. It reports whether
// a job was replaced.
func (m *Manager) UpdateItem(job domain.Job) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(job.ID)
	if i < 0 {
		return false
	}
	m.items[i] = job
	m.recompute()
	return true
}

// RemoveItem drops the job with id. It reports whether a job was removed.
func (m *Manager) RemoveItem(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.items)
	m.items = slices.DeleteFunc(m.items, func(j domain.Job) bool { return j.ID == id })
	if len(m.items) == n {
		return false
	}
	m.recompute()
	return true
}

// SelectItem focuses the job with id, looked up in the canonical collection
// so filtered-out jobs can still be selected.
func (m *Manager) SelectItem(id string) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		m.selectedID = ""
		return nil, domain.NotFound("Job not found", nil)
	}
	m.selectedID = id
	job := m.items[i]
	return &job, nil
}

// ClearSelection drops the focused job.
func (m *Manager) ClearSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.selectedID = ""
}

// Snapshot returns the current page and its metadata.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Items:      pagination.Slice(m.filtered, m.page.CurrentPage, m.itemsPerPage),
		Pagination: m.page,
		Window:     pagination.Window(m.page.CurrentPage, m.page.TotalPages, m.delta),
		Filters:    m.filters,
		IsLoading:  m.loading,
		Error:      m.errMsg,
	}
	if i := m.indexOf(m.selectedID); m.selectedID != "" && i >= 0 {
		job := m.items[i]
		snap.Selected = &job
	}
	return snap
}

// Filtered returns a copy of the whole filtered list.
func (m *Manager) Filtered() []domain.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.filtered)
}

// Items returns a copy of the canonical collection.
func (m *Manager) Items() []domain.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items)
}

// recompute derives the filtered list and pagination from the collection
// and filters. Callers hold m.mu.
func (m *Manager) recompute() {
	m.filtered = filter.Apply(m.items, m.filters)
	m.page = pagination.Compute(len(m.filtered), m.itemsPerPage, m.page.CurrentPage)

	m.logger.Debug("Recomputed job list",
		slog.Int("total", len(m.items)),
		slog.Int("filtered", len(m.filtered)),
		slog.Int("total_pages", m.page.TotalPages),
		slog.Int("current_page", m.page.CurrentPage),
	)
}

func (m *Manager) indexOf(id string) int {
	return slices.IndexFunc(m.items, func(j domain.Job) bool { return j.ID == id })
}
