package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited admin or lifecycle action.
type AuditAction string

const (
	AuditActionReleaseHold     AuditAction = "RELEASE_HOLD"
	AuditActionCancelHold      AuditAction = "CANCEL_HOLD"
	AuditActionDisputeHold     AuditAction = "DISPUTE_HOLD"
	AuditActionSystemRelease   AuditAction = "SYSTEM_RELEASE"
	AuditActionAdminLogin      AuditAction = "ADMIN_LOGIN"
	AuditActionSecurityReject  AuditAction = "SECURITY_REJECT"
	AuditActionRetryExhausted  AuditAction = "RETRY_EXHAUSTED"
	AuditActionWebhookAccepted AuditAction = "WEBHOOK_ACCEPTED"
	AuditActionWebhookRejected AuditAction = "WEBHOOK_REJECTED"
)

// AuditLog records a single audited action.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	ActorID      *int64      `json:"actor_id,omitempty"` // admin user ID, nil for system
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
