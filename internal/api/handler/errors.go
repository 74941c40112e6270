package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/gin-gonic/gin"
)

var kindStatus = map[domain.ErrorKind]int{
	domain.KindValidation:   http.StatusBadRequest,
	domain.KindAuthRequired: http.StatusUnauthorized,
	domain.KindAuthFailed:   http.StatusUnauthorized,
	domain.KindFetch:        http.StatusServiceUnavailable,
	domain.KindSubmission:   http.StatusBadGateway,
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindForbidden:    http.StatusForbidden,
	domain.KindConflict:     http.StatusConflict,
}

// StatusFor maps an error to its HTTP status. Errors outside the domain
// taxonomy are internal errors.
func StatusFor(err error) int {
	if status, ok := kindStatus[domain.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RespondError aborts c with the JSON form of err.
func RespondError(c *gin.Context, logger *slog.Logger, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		logger.Error("Unhandled error",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"kind":      "INTERNAL",
			"retryable": false,
		})
		return
	}

	status := StatusFor(de)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("kind", string(de.Kind)),
			slog.String("error", de.Error()),
		)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":     de.Message,
		"kind":      de.Kind,
		"retryable": de.Retryable(),
	})
}

func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Error("Invalid request body", slog.String("error", err.Error()))
	RespondError(c, logger, domain.Validation("Invalid request body", err))
}
