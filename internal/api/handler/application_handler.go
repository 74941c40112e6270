package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Submit handles POST /api/v1/jobs/:job_id/applications
// The intake enforces the caller's identity and role before looking at the
// job, so an unknown job is reported only to a signed-in job seeker.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	jobID := c.Param("job_id")

	h.logger.Info("SubmitApplication called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("job_id", jobID),
	)

	var req dto.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	ctx := c.Request.Context()
	job, err := h.jobs.GetJob(ctx, jobID)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		RespondError(c, h.logger, fetchError(err, "Failed to fetch job"))
		return
	}

	app, err := h.intake.Submit(ctx, job, IdentityFrom(c), req.CoverLetter, req.Resume)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// List handles GET /api/v1/applications
func (h *ApplicationHandler) List(c *gin.Context) {
	logCall(h.logger, "ListApplications", c)

	var req dto.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		RespondError(c, h.logger, domain.Validation("Invalid query parameters", err))
		return
	}

	apps, err := h.intake.List(c.Request.Context(), IdentityFrom(c), req.Limit)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	c.JSON(http.StatusOK, dto.ListApplicationsResponse{Applications: apps, Total: len(apps)})
}

// UpdateStatus handles PATCH /api/v1/applications/:application_id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("application_id")
	logCall(h.logger, "UpdateApplicationStatus", c)

	if _, err := uuid.Parse(id); err != nil {
		RespondError(c, h.logger, domain.Validation("application_id must be a valid UUID", err))
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}
	status, err := domain.ParseApplicationStatus(req.Status)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	app, err := h.intake.UpdateStatus(c.Request.Context(), IdentityFrom(c), id, status)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
