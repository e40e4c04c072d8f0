package middleware

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/Moxxcompany/lockbay/internal/core/ports"
	"github.com/Moxxcompany/lockbay/internal/metrics"
	"github.com/Moxxcompany/lockbay/pkg/apperror"
	"github.com/Moxxcompany/lockbay/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// HeaderInternalKey authenticates service-to-service calls.
	HeaderInternalKey = "X-Internal-Key"

	// Context keys
	CtxAdminKey = "admin_actor"
)

// AdminAuth validates the bearer token and stores the AdminActor capability
// in the request context. Handlers pass the actor on to the hold manager,
// which re-verifies it before any fund movement.
func AdminAuth(verifier ports.AdminVerifier, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		actor, err := verifier.VerifyToken(c.Request.Context(), authHeader[7:])
		if err != nil {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		c.Set(CtxAdminKey, *actor)
		c.Next()
	}
}

// InternalAuth guards service-to-service routes with a shared key compared
// in constant time. An empty configured key disables the routes entirely.
func InternalAuth(apiKey string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			response.Error(c, apperror.ErrSecurityViolation())
			c.Abort()
			return
		}
		provided := c.GetHeader(HeaderInternalKey)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			log.Warn().Str("client_ip", c.ClientIP()).Msg("internal API key rejected")
			response.Error(c, apperror.ErrSecurityViolation())
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request and
// records its duration.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, c.FullPath()).Observe(latency.Seconds())

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// MaxBodySize returns middleware that limits the request body size.
// Once the limit is exceeded the reader returns an error and the
// request is rejected with 413 Payload Too Large.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
