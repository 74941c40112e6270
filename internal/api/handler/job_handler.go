package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/dto"
	"github.com/cuongbtq/job-board/internal/api/filter"
	"github.com/cuongbtq/job-board/internal/api/listing"
	"github.com/cuongbtq/job-board/internal/api/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListJobs handles GET /api/v1/jobs
// Filters the active collection and returns one page of it
func (h *JobHandler) ListJobs(c *gin.Context) {
	h.logger.Info("ListJobs called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
	)

	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		RespondError(c, h.logger, domain.Validation("Invalid query parameters", err))
		return
	}

	filters, err := req.Filters()
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	jobs, err := h.jobs.ListJobs(c.Request.Context())
	if err != nil {
		RespondError(c, h.logger, domain.Fetch("Failed to fetch jobs", err))
		return
	}

	page := req.CurrentPage()
	perPage := h.deps.itemsPerPage()
	filtered := filter.Apply(jobs, filters)
	state := pagination.Compute(len(filtered), perPage, page)

	c.JSON(http.StatusOK, dto.ListJobsResponse{
		Items:      pagination.Slice(filtered, page, perPage),
		Pagination: state,
		Window:     pagination.Window(page, state.TotalPages, h.deps.pageDelta()),
		Filters:    filters,
	})
}

// GetJob handles GET /api/v1/jobs/:job_id
// Returns the job whether or not it is still active
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("job_id")

	h.logger.Info("GetJob called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("job_id", jobID),
	)

	job, err := h.jobs.GetJob(c.Request.Context(), jobID)
	if err != nil {
		RespondError(c, h.logger, fetchError(err, "Failed to fetch job"))
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateJob handles POST /api/v1/jobs
// Posts a job for the signed-in company and adds it to every browse session
func (h *JobHandler) CreateJob(c *gin.Context) {
	logCall(h.logger, "CreateJob", c)

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	who := IdentityFrom(c)
	job, err := req.ToJob(uuid.New().String(), who.User, h.deps.now())
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	if err := h.jobs.CreateJob(c.Request.Context(), job); err != nil {
		h.logger.Error("Failed to create job", slog.String("error", err.Error()))
		RespondError(c, h.logger, domain.Submission("Failed to create job", err))
		return
	}

	h.registry.Each(func(m *listing.Manager) {
		if err := m.AddItem(*job); err != nil {
			h.logger.Debug("Browse session already holds job", slog.String("job_id", job.ID))
		}
	})

	h.logger.Info("Job created",
		slog.String("job_id", job.ID),
		slog.String("employer_id", job.EmployerID),
	)
	c.JSON(http.StatusCreated, job)
}

// SetActive handles PATCH /api/v1/jobs/:job_id/active
// Opens or closes a job owned by the signed-in company
func (h *JobHandler) SetActive(c *gin.Context) {
	jobID := c.Param("job_id")
	logCall(h.logger, "SetActive", c)

	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.authorizeOwner(ctx, IdentityFrom(c), jobID); err != nil {
		RespondError(c, h.logger, err)
		return
	}

	job, err := h.jobs.SetJobActive(ctx, jobID, *req.IsActive)
	if err != nil {
		RespondError(c, h.logger, submissionError(err, "Failed to update job"))
		return
	}

	h.registry.Each(func(m *listing.Manager) {
		m.UpdateItem(*job)
	})

	c.JSON(http.StatusOK, job)
}

// DeleteJob handles DELETE /api/v1/jobs/:job_id
// Removes a job owned by the signed-in company from storage and every browse
// session
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID := c.Param("job_id")
	logCall(h.logger, "DeleteJob", c)

	ctx := c.Request.Context()
	if err := h.authorizeOwner(ctx, IdentityFrom(c), jobID); err != nil {
		RespondError(c, h.logger, err)
		return
	}

	if err := h.jobs.DeleteJob(ctx, jobID); err != nil {
		RespondError(c, h.logger, submissionError(err, "Failed to delete job"))
		return
	}

	h.registry.Each(func(m *listing.Manager) {
		m.RemoveItem(jobID)
	})

	h.logger.Info("Job deleted", slog.String("job_id", jobID))
	c.JSON(http.StatusOK, gin.H{"job_id": jobID, "deleted": true})
}

func (h *JobHandler) authorizeOwner(ctx context.Context, who domain.Identity, jobID string) error {
	if !who.IsAuthenticated || who.User == nil {
		return domain.AuthRequired("Please login to continue.", nil)
	}
	job, err := h.jobs.GetJob(ctx, jobID)
	if err != nil {
		return fetchError(err, "Failed to fetch job")
	}
	if job.EmployerID != who.User.ID {
		return domain.Forbidden("You can only manage your own jobs.", nil)
	}
	return nil
}

// fetchError keeps domain errors as they are and wraps anything else as a
// fetch failure.
func fetchError(err error, message string) error {
	if domain.KindOf(err) != "" {
		return err
	}
	return domain.Fetch(message, err)
}

func submissionError(err error, message string) error {
	if domain.KindOf(err) != "" {
		return err
	}
	return domain.Submission(message, err)
}
