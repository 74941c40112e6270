package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/handler"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware(allowedOrigins))
	r.Use(IdentityMiddleware(deps.Auth, deps.Logger))

	r.GET("/health", healthHandler(deps))

	jobHandler := handler.NewJobHandler(deps)
	browseHandler := handler.NewBrowseHandler(deps)
	authHandler := handler.NewAuthHandler(deps)
	applicationHandler := handler.NewApplicationHandler(deps)
	dashboardHandler := handler.NewDashboardHandler(deps)

	requireAuth := RequireAuth(deps.Logger)
	requireCompany := RequireRole(domain.RoleCompany, deps.Logger)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		jobs := v1.Group("/jobs")
		{
			jobs.GET("", jobHandler.ListJobs)
			jobs.GET("/:job_id", jobHandler.GetJob)
			jobs.POST("", requireCompany, jobHandler.CreateJob)
			jobs.PATCH("/:job_id/active", requireCompany, jobHandler.SetActive)
			jobs.DELETE("/:job_id", requireCompany, jobHandler.DeleteJob)

			// Role checks happen in the intake so the apply flow reports
			// login before anything else.
			jobs.POST("/:job_id/applications", applicationHandler.Submit)
		}

		browse := v1.Group("/browse")
		{
			browse.POST("", browseHandler.Create)
			browse.GET("/:session_id", browseHandler.Get)
			browse.DELETE("/:session_id", browseHandler.Close)
			browse.PATCH("/:session_id/filters", browseHandler.PatchFilters)
			browse.DELETE("/:session_id/filters", browseHandler.ClearFilters)
			browse.PUT("/:session_id/page", browseHandler.SetPage)
			browse.POST("/:session_id/reload", browseHandler.Reload)
			browse.PUT("/:session_id/selection", browseHandler.Select)
			browse.DELETE("/:session_id/selection", browseHandler.ClearSelection)
		}

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/logout", requireAuth, authHandler.Logout)
			authGroup.GET("/me", requireAuth, authHandler.Me)
			authGroup.PATCH("/me", requireAuth, authHandler.UpdateMe)
		}

		applications := v1.Group("/applications", requireAuth)
		{
			applications.GET("", applicationHandler.List)
			applications.PATCH("/:application_id/status", requireCompany, applicationHandler.UpdateStatus)
		}

		v1.GET("/dashboard", requireAuth, dashboardHandler.Get)
	}

	return r
}

// healthHandler reports "healthy" when every registered dependency answers
// its health check.
func healthHandler(deps *handler.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		status := http.StatusOK
		checks := make(map[string]string, len(deps.HealthChecks))
		for name, checker := range deps.HealthChecks {
			if err := checker.HealthCheck(ctx); err != nil {
				deps.Logger.Warn("Health check failed",
					slog.String("dependency", name),
					slog.String("error", err.Error()),
				)
				checks[name] = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "healthy"
		}

		overall := "healthy"
		if status != http.StatusOK {
			overall = "unhealthy"
		}
		c.JSON(status, gin.H{
			"status":       overall,
			"service":      deps.ServiceName,
			"dependencies": checks,
		})
	}
}
