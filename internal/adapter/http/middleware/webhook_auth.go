package middleware

import (
	"bytes"
	"io"

	"github.com/Moxxcompany/lockbay/config"
	"github.com/Moxxcompany/lockbay/internal/core/ports"
	"github.com/Moxxcompany/lockbay/internal/metrics"
	"github.com/Moxxcompany/lockbay/pkg/apperror"
	"github.com/Moxxcompany/lockbay/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HeaderWebhookSignature carries the provider's HMAC-SHA256 of the raw body.
const HeaderWebhookSignature = "X-Webhook-Signature"

// WebhookSignature verifies the provider's HMAC over the raw request body
// before any JSON parsing happens. The body is restored for the handler.
func WebhookSignature(providers config.ProvidersConfig, sigSvc ports.SignatureService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerName := c.Param("provider")
		pc, ok := providers[providerName]
		if !ok || pc.WebhookSecret == "" {
			metrics.WebhooksTotal.WithLabelValues(providerName, "rejected").Inc()
			log.Warn().Str("provider", providerName).Msg("webhook for unconfigured provider")
			response.Error(c, apperror.ErrInvalidWebhookSignature())
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.Error(c, apperror.Validation("cannot read request body"))
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		signature := c.GetHeader(HeaderWebhookSignature)
		if signature == "" || !sigSvc.Verify(pc.WebhookSecret, body, signature) {
			metrics.WebhooksTotal.WithLabelValues(providerName, "rejected").Inc()
			log.Warn().
				Str("provider", providerName).
				Str("client_ip", c.ClientIP()).
				Msg("webhook signature verification failed")
			response.Error(c, apperror.ErrInvalidWebhookSignature())
			c.Abort()
			return
		}

		c.Next()
	}
}
