package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/dto"
	"github.com/cuongbtq/job-board/internal/api/listing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Create handles POST /api/v1/browse
// Opens a browse session and loads the collection into it. A failed load
// still returns the session; the snapshot carries the error.
func (h *BrowseHandler) Create(c *gin.Context) {
	logCall(h.logger, "CreateBrowseSession", c)

	id, m := h.registry.Create()
	if err := m.Load(c.Request.Context(), h.jobs); err != nil {
		h.logger.Warn("Initial job load failed",
			slog.String("session_id", id),
			slog.String("error", err.Error()),
		)
	}

	c.JSON(http.StatusCreated, dto.BrowseResponse{SessionID: id, Snapshot: m.Snapshot()})
}

// Get handles GET /api/v1/browse/:session_id
func (h *BrowseHandler) Get(c *gin.Context) {
	logCall(h.logger, "GetBrowseSession", c)

	m, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, m)
}

// PatchFilters handles PATCH /api/v1/browse/:session_id/filters
func (h *BrowseHandler) PatchFilters(c *gin.Context) {
	logCall(h.logger, "PatchFilters", c)

	m, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.FilterPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	m.SetFilters(patch)
	h.respond(c, m)
}

// ClearFilters handles DELETE /api/v1/browse/:session_id/filters
func (h *BrowseHandler) ClearFilters(c *gin.Context) {
	logCall(h.logger, "ClearFilters", c)

	m, ok := h.session(c)
	if !ok {
		return
	}
	m.ClearFilters()
	h.respond(c, m)
}

// SetPage handles PUT /api/v1/browse/:session_id/page
func (h *BrowseHandler) SetPage(c *gin.Context) {
	logCall(h.logger, "SetPage", c)

	m, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.SetPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	m.SetPage(*req.Page)
	h.respond(c, m)
}

// Reload handles POST /api/v1/browse/:session_id/reload
func (h *BrowseHandler) Reload(c *gin.Context) {
	logCall(h.logger, "ReloadBrowseSession", c)

	m, ok := h.session(c)
	if !ok {
		return
	}
	if err := m.Load(c.Request.Context(), h.jobs); err != nil {
		RespondError(c, h.logger, err)
		return
	}
	h.respond(c, m)
}

// Select handles PUT /api/v1/browse/:session_id/selection
func (h *BrowseHandler) Select(c *gin.Context) {
	logCall(h.logger, "SelectJob", c)

	m, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.SelectJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}
	if _, err := m.SelectItem(req.JobID); err != nil {
		RespondError(c, h.logger, err)
		return
	}
	h.respond(c, m)
}

// ClearSelection handles DELETE /api/v1/browse/:session_id/selection
func (h *BrowseHandler) ClearSelection(c *gin.Context) {
	logCall(h.logger, "ClearSelection", c)

	m, ok := h.session(c)
	if !ok {
		return
	}
	m.ClearSelection()
	h.respond(c, m)
}

// Close handles DELETE /api/v1/browse/:session_id
func (h *BrowseHandler) Close(c *gin.Context) {
	logCall(h.logger, "CloseBrowseSession", c)

	if _, ok := h.session(c); !ok {
		return
	}
	h.registry.Delete(c.Param("session_id"))
	c.Status(http.StatusNoContent)
}

// session resolves the :session_id parameter, responding on failure.
func (h *BrowseHandler) session(c *gin.Context) (*listing.Manager, bool) {
	id := c.Param("session_id")
	if _, err := uuid.Parse(id); err != nil {
		RespondError(c, h.logger, domain.Validation("session_id must be a valid UUID", err))
		return nil, false
	}

	m, ok := h.registry.Get(id)
	if !ok {
		RespondError(c, h.logger, domain.NotFound("Browse session not found", nil))
		return nil, false
	}
	return m, true
}

func (h *BrowseHandler) respond(c *gin.Context, m *listing.Manager) {
	c.JSON(http.StatusOK, dto.BrowseResponse{
		SessionID: c.Param("session_id"),
		Snapshot:  m.Snapshot(),
	})
}
