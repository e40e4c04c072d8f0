package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashoutStatus is the lifecycle state of a cashout or exchange send.
type CashoutStatus string

const (
	CashoutStatusPending    CashoutStatus = "PENDING"
	CashoutStatusProcessing CashoutStatus = "PROCESSING"
	CashoutStatusCompleted  CashoutStatus = "COMPLETED"
	CashoutStatusFailed     CashoutStatus = "FAILED"
)

// FailureType separates infrastructure faults from user mistakes. Technical
// failures are retried per policy; user failures terminate immediately.
type FailureType string

const (
	FailureTypeTechnical FailureType = "TECHNICAL"
	FailureTypeUser      FailureType = "USER"
)

// Cashout is the business entity driving a hold through its lifecycle.
// The same shape backs exchange sends via LinkedType on the hold.
type Cashout struct {
	ID             uuid.UUID       `json:"id"`
	UserID         int64           `json:"user_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	DestinationEnc string          `json:"-"` // AES-256-GCM encrypted payout address
	Provider       string          `json:"provider"`
	Status         CashoutStatus   `json:"status"`

	FailureType           *FailureType `json:"failure_type,omitempty"`
	LastErrorCode         *string      `json:"last_error_code,omitempty"`
	RetryCount            int          `json:"retry_count"`
	NextRetryAt           *time.Time   `json:"next_retry_at,omitempty"`
	TechnicalFailureSince *time.Time   `json:"technical_failure_since,omitempty"`

	HoldID       uuid.UUID `json:"hold_id"`
	HoldTxnID    uuid.UUID `json:"hold_txn_id"`
	ExternalTxID *string   `json:"external_tx_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsTerminal reports whether no further attempt may change this cashout.
// A FAILED cashout with a future NextRetryAt is not terminal: the sweep
// will pick it up again.
func (c *Cashout) IsTerminal() bool {
	if c.Status == CashoutStatusCompleted {
		return true
	}
	return c.Status == CashoutStatusFailed && c.NextRetryAt == nil
}

// RetryDue reports whether the sweep should re-attempt this cashout at now.
func (c *Cashout) RetryDue(now time.Time) bool {
	return c.Status == CashoutStatusFailed &&
		c.FailureType != nil && *c.FailureType == FailureTypeTechnical &&
		c.NextRetryAt != nil && !c.NextRetryAt.After(now)
}
