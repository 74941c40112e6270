package handler

import (
	"net/http"

	"github.com/cuongbtq/job-board/internal/api/dashboard"
	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/gin-gonic/gin"
)

// Get handles GET /api/v1/dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	logCall(h.logger, "GetDashboard", c)

	ctx := c.Request.Context()
	who := IdentityFrom(c)

	apps, err := h.intake.List(ctx, who, 0)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	var jobs []domain.Job
	if who.Role == domain.RoleCompany {
		if jobs, err = h.jobs.ListJobs(ctx); err != nil {
			RespondError(c, h.logger, domain.Fetch("Failed to fetch jobs", err))
			return
		}
	}

	summary, err := dashboard.Summarize(who, jobs, apps)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
