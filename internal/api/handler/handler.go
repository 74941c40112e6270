package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/cuongbtq/job-board/internal/api/auth"
	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/intake"
	"github.com/cuongbtq/job-board/internal/api/listing"
	"github.com/cuongbtq/job-board/internal/api/pagination"
	"github.com/gin-gonic/gin"
)

const (
	identityKey = "identity"
	tokenKey    = "session_token"
)

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger       *slog.Logger
	Jobs         listing.Store
	Registry     *listing.Registry
	Intake       *intake.Intake
	Auth         *auth.Service
	ItemsPerPage int
	PageDelta    int
	ServiceName  string
	HealthChecks map[string]HealthChecker
	Clock        func() time.Time
}

func (d *Dependencies) itemsPerPage() int {
	if d.ItemsPerPage <= 0 {
		return pagination.DefaultItemsPerPage
	}
	return d.ItemsPerPage
}

func (d *Dependencies) pageDelta() int {
	if d.PageDelta <= 0 {
		return pagination.DefaultDelta
	}
	return d.PageDelta
}

func (d *Dependencies) now() time.Time {
	if d.Clock == nil {
		return time.Now()
	}
	return d.Clock()
}

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	logger   *slog.Logger
	deps     *Dependencies
	jobs     listing.Store
	registry *listing.Registry
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:   deps.Logger,
		deps:     deps,
		jobs:     deps.Jobs,
		registry: deps.Registry,
	}
}

// BrowseHandler serves stateful browse sessions.
type BrowseHandler struct {
	logger   *slog.Logger
	jobs     listing.Store
	registry *listing.Registry
}

func NewBrowseHandler(deps *Dependencies) *BrowseHandler {
	return &BrowseHandler{
		logger:   deps.Logger,
		jobs:     deps.Jobs,
		registry: deps.Registry,
	}
}

type AuthHandler struct {
	logger *slog.Logger
	auth   *auth.Service
}

func NewAuthHandler(deps *Dependencies) *AuthHandler {
	return &AuthHandler{logger: deps.Logger, auth: deps.Auth}
}

type ApplicationHandler struct {
	logger *slog.Logger
	jobs   listing.Store
	intake *intake.Intake
}

func NewApplicationHandler(deps *Dependencies) *ApplicationHandler {
	return &ApplicationHandler{logger: deps.Logger, jobs: deps.Jobs, intake: deps.Intake}
}

type DashboardHandler struct {
	logger *slog.Logger
	jobs   listing.Store
	intake *intake.Intake
}

func NewDashboardHandler(deps *Dependencies) *DashboardHandler {
	return &DashboardHandler{logger: deps.Logger, jobs: deps.Jobs, intake: deps.Intake}
}

// SetIdentity stores the resolved caller and its session token on c.
func SetIdentity(c *gin.Context, token string, who domain.Identity) {
	c.Set(tokenKey, token)
	c.Set(identityKey, who)
}

// IdentityFrom returns the caller resolved by the auth middleware, or the
// anonymous identity.
func IdentityFrom(c *gin.Context) domain.Identity {
	if v, ok := c.Get(identityKey); ok {
		if who, ok := v.(domain.Identity); ok {
			return who
		}
	}
	return domain.Anonymous()
}

// TokenFrom returns the session token of the current request.
func TokenFrom(c *gin.Context) string {
	return c.GetString(tokenKey)
}

func logCall(logger *slog.Logger, name string, c *gin.Context) {
	logger.Info(name+" called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
	)
}
