package handler

import (
	"net/http"

	"github.com/cuongbtq/job-board/internal/api/dto"
	"github.com/gin-gonic/gin"
)

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	logCall(h.logger, "Login", c)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	session, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	logCall(h.logger, "Register", c)

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	session, err := h.auth.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	logCall(h.logger, "Logout", c)

	if err := h.auth.Logout(c.Request.Context(), TokenFrom(c)); err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	logCall(h.logger, "Me", c)
	c.JSON(http.StatusOK, IdentityFrom(c))
}

// UpdateMe handles PATCH /api/v1/auth/me
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	logCall(h.logger, "UpdateMe", c)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), TokenFrom(c), req.ToPatch())
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
