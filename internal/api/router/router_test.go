package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuongbtq/job-board/internal/api/auth"
	"github.com/cuongbtq/job-board/internal/api/dashboard"
	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/dto"
	"github.com/cuongbtq/job-board/internal/api/events"
	"github.com/cuongbtq/job-board/internal/api/handler"
	"github.com/cuongbtq/job-board/internal/api/intake"
	"github.com/cuongbtq/job-board/internal/api/listing"
	"github.com/cuongbtq/job-board/internal/api/seed"
	"github.com/cuongbtq/job-board/shared/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// The demo collection has 24 jobs: two are inactive and one sits above the
// default salary ceiling, leaving 21 visible by default.
const visibleByDefault = 21

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type errorBody struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Retryable bool   `json:"retryable"`
}

type failingChecker struct{}

func (failingChecker) HealthCheck(ctx context.Context) error { return errors.New("down") }

type testServer struct {
	engine   *gin.Engine
	source   *listing.MemorySource
	registry *listing.Registry
	deps     *handler.Dependencies
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewDiscard().Logger
	source := listing.NewMemorySource(seed.Jobs(testNow))
	registry := listing.NewRegistry(listing.Options{ItemsPerPage: 10, PageDelta: 2, Logger: log}, time.Hour)

	directory := auth.NewDirectory(bcrypt.MinCost)
	require.NoError(t, directory.SeedDemoUsers())

	deps := &handler.Dependencies{
		Logger:   log,
		Jobs:     source,
		Registry: registry,
		Intake: intake.New(&intake.Config{
			Store:    intake.NewMemoryStore(),
			Notifier: events.NewLocalNotifier(source, registry, log),
			Logger:   log,
			Clock:    func() time.Time { return testNow },
		}),
		Auth: auth.New(&auth.Config{
			Directory: directory,
			Sessions:  auth.NewMemorySessionStore(auth.DefaultKeyPrefix, time.Hour),
			Logger:    log,
		}),
		ItemsPerPage: 10,
		PageDelta:    2,
		ServiceName:  "job-board-api",
		HealthChecks: map[string]handler.HealthChecker{},
		Clock:        func() time.Time { return testNow },
	}

	return &testServer{
		engine:   SetupRouter(deps, []string{"http://localhost:5173"}),
		source:   source,
		registry: registry,
		deps:     deps,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": auth.DefaultPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var session auth.Session
	decode(t, w, &session)
	return session.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	decode(t, w, &body)
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"job-board-api","dependencies":{}}`, w.Body.String())

	s.deps.HealthChecks["postgres"] = failingChecker{}
	w = s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unhealthy","service":"job-board-api","dependencies":{"postgres":"unhealthy"}}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/jobs", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestListJobs(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantItems  int
		wantTotal  int
		wantPages  int
		wantStatus int
	}{
		{name: "default filters", query: "", wantItems: 10, wantTotal: visibleByDefault, wantPages: 3, wantStatus: http.StatusOK},
		{name: "last page", query: "?page=3", wantItems: 1, wantTotal: visibleByDefault, wantPages: 3, wantStatus: http.StatusOK},
		{name: "page past the end is empty", query: "?page=9", wantItems: 0, wantTotal: visibleByDefault, wantPages: 3, wantStatus: http.StatusOK},
		{name: "job type", query: "?job_type=internship", wantItems: 2, wantTotal: 2, wantPages: 1, wantStatus: http.StatusOK},
		{name: "unbounded ceiling admits the top salary", query: "?salary_max=0", wantItems: 10, wantTotal: visibleByDefault + 1, wantPages: 3, wantStatus: http.StatusOK},
		{name: "search matches employer", query: "?search=annapurna", wantItems: 4, wantTotal: 4, wantPages: 1, wantStatus: http.StatusOK},
		{name: "nothing matches", query: "?location=Biratnagar", wantItems: 0, wantTotal: 0, wantPages: 1, wantStatus: http.StatusOK},
		{name: "unknown job type", query: "?job_type=gig", wantStatus: http.StatusBadRequest},
		{name: "negative salary", query: "?salary_min=-1", wantStatus: http.StatusBadRequest},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/api/v1/jobs"+tt.query, "", nil)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, string(domain.KindValidation), decodeError(t, w).Kind)
				return
			}

			var resp dto.ListJobsResponse
			decode(t, w, &resp)
			assert.Len(t, resp.Items, tt.wantItems)
			assert.Equal(t, tt.wantTotal, resp.Pagination.TotalItems)
			assert.Equal(t, tt.wantPages, resp.Pagination.TotalPages)
			for _, job := range resp.Items {
				assert.True(t, job.IsActive)
			}
		})
	}
}

func TestGetJob(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/jobs/job-004", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var job domain.Job
	decode(t, w, &job)
	assert.Equal(t, "DevOps Engineer", job.Title)
	assert.False(t, job.IsActive)

	w = s.do(t, http.MethodGet, "/api/v1/jobs/job-999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errorBody{Error: "Job not found", Kind: "NOT_FOUND"}, decodeError(t, w))
}

func TestBrowseSession(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/browse", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var snap dto.BrowseResponse
	decode(t, w, &snap)
	require.NotEmpty(t, snap.SessionID)
	assert.Equal(t, visibleByDefault, snap.Pagination.TotalItems)
	assert.Equal(t, domain.DefaultFilters(), snap.Filters)
	assert.False(t, snap.IsLoading)

	base := "/api/v1/browse/" + snap.SessionID

	t.Run("filters merge and return to page 1", func(t *testing.T) {
		w := s.do(t, http.MethodPut, base+"/page", "", gin.H{"page": 2})
		require.Equal(t, http.StatusOK, w.Code)

		w = s.do(t, http.MethodPatch, base+"/filters", "", gin.H{"category": "Engineering"})
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &snap)
		assert.Equal(t, 5, snap.Pagination.TotalItems)
		assert.Equal(t, 1, snap.Pagination.CurrentPage)

		w = s.do(t, http.MethodPatch, base+"/filters", "", gin.H{"experience_level": "senior"})
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &snap)
		assert.Equal(t, "Engineering", snap.Filters.Category)
		assert.Equal(t, 2, snap.Pagination.TotalItems)
	})

	t.Run("invalid enum is rejected", func(t *testing.T) {
		w := s.do(t, http.MethodPatch, base+"/filters", "", gin.H{"job_type": "freelance"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("page is not clamped", func(t *testing.T) {
		w := s.do(t, http.MethodPut, base+"/page", "", gin.H{"page": 4})
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &snap)
		assert.Equal(t, 4, snap.Pagination.CurrentPage)
		assert.Empty(t, snap.Items)
	})

	t.Run("clear filters", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, base+"/filters", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &snap)
		assert.Equal(t, domain.DefaultFilters(), snap.Filters)
		assert.Equal(t, 1, snap.Pagination.CurrentPage)
		assert.Equal(t, visibleByDefault, snap.Pagination.TotalItems)
	})

	t.Run("selection resolves against the whole collection", func(t *testing.T) {
		w := s.do(t, http.MethodPut, base+"/selection", "", gin.H{"job_id": "job-004"})
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &snap)
		require.NotNil(t, snap.Selected)
		assert.Equal(t, "job-004", snap.Selected.ID)

		w = s.do(t, http.MethodPut, base+"/selection", "", gin.H{"job_id": "job-999"})
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = s.do(t, http.MethodDelete, base+"/selection", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		snap = dto.BrowseResponse{}
		decode(t, w, &snap)
		assert.Nil(t, snap.Selected)
	})

	t.Run("reload picks up store changes", func(t *testing.T) {
		_, err := s.source.SetJobActive(context.Background(), "job-004", true)
		require.NoError(t, err)

		w := s.do(t, http.MethodPost, base+"/reload", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &snap)
		assert.Equal(t, visibleByDefault+1, snap.Pagination.TotalItems)
	})

	t.Run("unknown and malformed sessions", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/browse/00000000-0000-0000-0000-000000000000", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = s.do(t, http.MethodGet, "/api/v1/browse/not-a-uuid", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("close", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, base, "", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, 0, s.registry.Len())
	})
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "seeker@test.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errorBody{Error: "Invalid email or password", Kind: "AUTH_FAILED"}, decodeError(t, w))

	w = s.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_REQUIRED", decodeError(t, w).Kind)

	token := s.login(t, "seeker@test.com")

	w = s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var who domain.Identity
	decode(t, w, &who)
	assert.True(t, who.IsAuthenticated)
	assert.Equal(t, domain.RoleJobSeeker, who.Role)
	assert.Equal(t, "John Doe", who.User.FullName)

	w = s.do(t, http.MethodPatch, "/api/v1/auth/me", token, gin.H{"full_name": "Johnny Doe"})
	require.Equal(t, http.StatusOK, w.Code)
	var user domain.User
	decode(t, w, &user)
	assert.Equal(t, "Johnny Doe", user.FullName)

	w = s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       gin.H
		wantStatus int
		wantError  string
	}{
		{
			name:       "passwords differ",
			body:       gin.H{"email": "new@test.com", "password": "secret1", "confirm_password": "secret2", "full_name": "New User", "user_type": "job_seeker"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Passwords do not match",
		},
		{
			name:       "short password",
			body:       gin.H{"email": "new@test.com", "password": "abc", "confirm_password": "abc", "full_name": "New User", "user_type": "job_seeker"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Password must be at least 6 characters",
		},
		{
			name:       "duplicate email",
			body:       gin.H{"email": "seeker@test.com", "password": "secret1", "confirm_password": "secret1", "full_name": "Again", "user_type": "job_seeker"},
			wantStatus: http.StatusConflict,
			wantError:  "An account with this email already exists",
		},
		{
			name:       "company",
			body:       gin.H{"email": "hr@acme.test", "password": "secret1", "confirm_password": "secret1", "full_name": "Acme HR", "user_type": "company", "company_name": "Acme"},
			wantStatus: http.StatusCreated,
		},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, w).Error)
				return
			}
			var session auth.Session
			decode(t, w, &session)
			assert.NotEmpty(t, session.Token)
			assert.Equal(t, "Acme", session.User.CompanyName)
		})
	}
}

func TestSubmitApplication(t *testing.T) {
	s := newTestServer(t)
	seeker := s.login(t, "seeker@test.com")
	company := s.login(t, "company@test.com")

	w := s.do(t, http.MethodPost, "/api/v1/browse", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var snap dto.BrowseResponse
	decode(t, w, &snap)

	letter := gin.H{"cover_letter": "I would love to join the team."}

	tests := []struct {
		name       string
		token      string
		path       string
		body       gin.H
		wantStatus int
		wantError  string
	}{
		{name: "anonymous", path: "/api/v1/jobs/job-001/applications", body: letter, wantStatus: http.StatusUnauthorized, wantError: "Please login to apply for this job."},
		{name: "company", token: company, path: "/api/v1/jobs/job-001/applications", body: letter, wantStatus: http.StatusForbidden, wantError: "Only job seekers can apply for jobs."},
		{name: "unknown job", token: seeker, path: "/api/v1/jobs/job-999/applications", body: letter, wantStatus: http.StatusNotFound, wantError: "Job not found"},
		{name: "closed job", token: seeker, path: "/api/v1/jobs/job-004/applications", body: letter, wantStatus: http.StatusBadRequest, wantError: "This job is no longer accepting applications."},
		{name: "empty letter", token: seeker, path: "/api/v1/jobs/job-001/applications", body: gin.H{"cover_letter": "  "}, wantStatus: http.StatusBadRequest, wantError: "Please write a cover letter to submit your application."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, tt.path, tt.token, tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantError, decodeError(t, w).Error)
		})
	}

	w = s.do(t, http.MethodPost, "/api/v1/jobs/job-001/applications", seeker, letter)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var app domain.Application
	decode(t, w, &app)
	assert.Equal(t, domain.ApplicationPending, app.Status)
	assert.Equal(t, "Senior Backend Engineer", app.JobTitle)
	assert.Equal(t, "TechCorp Nepal", app.EmployerName)
	assert.Equal(t, testNow, app.SubmittedAt)

	w = s.do(t, http.MethodGet, "/api/v1/jobs/job-001", "", nil)
	var job domain.Job
	decode(t, w, &job)
	assert.Equal(t, 13, job.ApplicantCount)

	w = s.do(t, http.MethodGet, "/api/v1/browse/"+snap.SessionID, "", nil)
	decode(t, w, &snap)
	require.NotEmpty(t, snap.Items)
	assert.Equal(t, "job-001", snap.Items[0].ID)
	assert.Equal(t, 13, snap.Items[0].ApplicantCount)
}

func TestApplicationReview(t *testing.T) {
	s := newTestServer(t)
	seeker := s.login(t, "seeker@test.com")
	company := s.login(t, "company@test.com")

	w := s.do(t, http.MethodPost, "/api/v1/jobs/job-002/applications", seeker, gin.H{"cover_letter": "Hello"})
	require.Equal(t, http.StatusCreated, w.Code)
	var app domain.Application
	decode(t, w, &app)

	for _, token := range []string{seeker, company} {
		w = s.do(t, http.MethodGet, "/api/v1/applications", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var list dto.ListApplicationsResponse
		decode(t, w, &list)
		require.Equal(t, 1, list.Total)
		assert.Equal(t, app.ID, list.Applications[0].ID)
	}

	statusPath := "/api/v1/applications/" + app.ID + "/status"

	w = s.do(t, http.MethodPatch, statusPath, seeker, gin.H{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPatch, statusPath, company, gin.H{"status": "reviewed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &app)
	assert.Equal(t, domain.ApplicationReviewed, app.Status)

	w = s.do(t, http.MethodPatch, statusPath, company, gin.H{"status": "pending"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPatch, statusPath, company, gin.H{"status": "hired"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/api/v1/applications/app-1/status", company, gin.H{"status": "reviewed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/applications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJobLifecycle(t *testing.T) {
	s := newTestServer(t)
	seeker := s.login(t, "seeker@test.com")
	company := s.login(t, "company@test.com")

	w := s.do(t, http.MethodPost, "/api/v1/browse", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var snap dto.BrowseResponse
	decode(t, w, &snap)
	session := "/api/v1/browse/" + snap.SessionID

	posting := gin.H{
		"title":            "Site Reliability Engineer",
		"location":         "Kathmandu",
		"job_type":         "full-time",
		"experience_level": "senior",
		"salary_min":       160000,
		"salary_max":       240000,
		"category":         "Engineering",
		"description":      "Keep the board running.",
		"skills":           []string{"Go", " ", "Prometheus"},
	}

	t.Run("only companies post", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/jobs", seeker, posting)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = s.do(t, http.MethodPost, "/api/v1/jobs", "", posting)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid posting", func(t *testing.T) {
		bad := gin.H{}
		for k, v := range posting {
			bad[k] = v
		}
		bad["salary_min"] = 300000
		w := s.do(t, http.MethodPost, "/api/v1/jobs", company, bad)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	var created domain.Job
	t.Run("create reaches live sessions", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/jobs", company, posting)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		decode(t, w, &created)
		assert.Equal(t, "2", created.EmployerID)
		assert.Equal(t, "TechCorp Nepal", created.EmployerName)
		assert.Equal(t, []string{"Go", "Prometheus"}, created.Skills)
		assert.Equal(t, "NPR", created.Salary.Currency)
		assert.Equal(t, testNow.Add(dto.DefaultApplicationWindow), created.Deadline)

		w = s.do(t, http.MethodGet, session, "", nil)
		decode(t, w, &snap)
		assert.Equal(t, visibleByDefault+1, snap.Pagination.TotalItems)
		assert.Equal(t, created.ID, snap.Items[0].ID)
	})

	t.Run("deactivate own job", func(t *testing.T) {
		w := s.do(t, http.MethodPatch, "/api/v1/jobs/"+created.ID+"/active", company, gin.H{"is_active": false})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = s.do(t, http.MethodGet, session, "", nil)
		decode(t, w, &snap)
		assert.Equal(t, visibleByDefault, snap.Pagination.TotalItems)
	})

	t.Run("other employers' jobs are off limits", func(t *testing.T) {
		w := s.do(t, http.MethodPatch, "/api/v1/jobs/job-005/active", company, gin.H{"is_active": false})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = s.do(t, http.MethodDelete, "/api/v1/jobs/job-005", company, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, "/api/v1/jobs/job-002", company, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = s.do(t, http.MethodGet, "/api/v1/jobs/job-002", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = s.do(t, http.MethodGet, session, "", nil)
		decode(t, w, &snap)
		assert.Equal(t, visibleByDefault-1, snap.Pagination.TotalItems)
	})
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t)
	seeker := s.login(t, "seeker@test.com")
	company := s.login(t, "company@test.com")

	w := s.do(t, http.MethodGet, "/api/v1/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/jobs/job-003/applications", seeker, gin.H{"cover_letter": "Eager to learn."})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/dashboard", seeker, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var board dashboard.Dashboard
	decode(t, w, &board)
	require.NotNil(t, board.Seeker)
	assert.Nil(t, board.Company)
	assert.Equal(t, 1, board.Seeker.Total)
	assert.Equal(t, 1, board.Seeker.Pending)

	w = s.do(t, http.MethodGet, "/api/v1/dashboard", company, nil)
	require.Equal(t, http.StatusOK, w.Code)
	board = dashboard.Dashboard{}
	decode(t, w, &board)
	require.NotNil(t, board.Company)
	assert.Equal(t, 3, board.Company.ActiveJobs)
	assert.Equal(t, 1, board.Company.TotalApplications)
	assert.Equal(t, 1, board.Company.NewApplications)
}
