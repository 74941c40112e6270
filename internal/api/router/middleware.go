package router

import (
	"log/slog"
	"strings"
	"time"

	"github.com/cuongbtq/job-board/internal/api/auth"
	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/handler"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// LoggerMiddleware logs HTTP requests with slog
func LoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		// Process request
		c.Next()

		latency := time.Since(start)

		logger.Info("HTTP Request",
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("query", query),
			slog.String("ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
			slog.Duration("latency", latency),
			slog.Int("body_size", c.Writer.Size()),
		)

		for _, e := range c.Errors {
			logger.Error("Request error",
				slog.String("error", e.Error()),
				slog.Uint64("type", uint64(e.Type)),
			)
		}
	}
}

// CORSMiddleware allows the listed origins, or every origin when none are
// configured.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cors.New(cfg)
}

// bearerToken extracts the token of an "Authorization: Bearer <token>"
// header.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// IdentityMiddleware resolves the bearer token, when present, into the
// request identity. Requests without a usable session continue anonymously.
func IdentityMiddleware(svc *auth.Service, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		who, err := svc.Restore(c.Request.Context(), token)
		switch {
		case err == nil:
			handler.SetIdentity(c, token, who)
		case domain.IsKind(err, domain.KindFetch):
			handler.RespondError(c, logger, err)
			return
		default:
			logger.Debug("Ignoring unusable session token", slog.String("error", err.Error()))
		}
		c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !handler.IdentityFrom(c).IsAuthenticated {
			handler.RespondError(c, logger, domain.AuthRequired("Please login to continue.", nil))
			return
		}
		c.Next()
	}
}

// RequireRole rejects anonymous requests and signed-in users of another role.
func RequireRole(role domain.Role, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		who := handler.IdentityFrom(c)
		if !who.IsAuthenticated {
			handler.RespondError(c, logger, domain.AuthRequired("Please login to continue.", nil))
			return
		}
		if who.Role != role {
			handler.RespondError(c, logger, domain.Forbidden("You do not have access to this page.", nil))
			return
		}
		c.Next()
	}
}
