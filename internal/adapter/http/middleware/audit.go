package middleware

import (
	"encoding/json"
	"time"

	"github.com/Moxxcompany/lockbay/internal/core/domain"
	"github.com/Moxxcompany/lockbay/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog records successful admin write operations after the response.
// Fund-movement specifics are audited inside the hold manager; this layer
// captures the HTTP surface (who, from where, which endpoint).
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit successful write operations (status 2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			return
		}

		action, resourceType := mapPathToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		var actorID *int64
		if v, exists := c.Get(CtxAdminKey); exists {
			if actor, ok := v.(domain.AdminActor); ok {
				actorID = &actor.AdminID
			}
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})

		auditSvc.Record(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			ActorID:      actorID,
			Action:       action,
			ResourceType: resourceType,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

func mapPathToAction(path, method string) (domain.AuditAction, string) {
	switch {
	case path == "/api/v1/admin/login" && method == "POST":
		return domain.AuditActionAdminLogin, "session"
	case path == "/api/v1/admin/holds/release" && method == "POST":
		return domain.AuditActionReleaseHold, "hold"
	case path == "/api/v1/admin/holds/dispute" && method == "POST":
		return domain.AuditActionDisputeHold, "hold"
	case path == "/webhooks/:provider" && method == "POST":
		return domain.AuditActionWebhookAccepted, "deposit"
	}
	return "", ""
}
