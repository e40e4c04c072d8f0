package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HoldPurpose identifies the business flow a hold belongs to.
type HoldPurpose string

const (
	HoldPurposeCashout  HoldPurpose = "cashout"
	HoldPurposeExchange HoldPurpose = "exchange"
	HoldPurposeEscrow   HoldPurpose = "escrow"
)

// HoldStatus is the lifecycle state of a hold.
type HoldStatus string

const (
	// HoldStatusHeld means funds are frozen, awaiting an outcome.
	HoldStatusHeld HoldStatus = "HELD"
	// HoldStatusConsumedSent means funds left the system via an external
	// provider. Terminal and irreversible.
	HoldStatusConsumedSent HoldStatus = "CONSUMED_SENT"
	// HoldStatusFailedHeld means the linked operation failed terminally; funds
	// stay frozen until an admin decides.
	HoldStatusFailedHeld HoldStatus = "FAILED_HELD"
	// HoldStatusCancelledHeld means admin cancelled and funds returned. Terminal.
	HoldStatusCancelledHeld HoldStatus = "CANCELLED_HELD"
	// HoldStatusDisputedHeld means under dispute; funds stay frozen.
	HoldStatusDisputedHeld HoldStatus = "DISPUTED_HELD"
	// HoldStatusRefundApproved means admin approved the refund and funds returned.
	// Terminal.
	HoldStatusRefundApproved HoldStatus = "REFUND_APPROVED"
)

// holdTransitions is the authoritative state machine. A transition absent
// here is a hard error, not a logged warning.
var holdTransitions = map[HoldStatus][]HoldStatus{
	HoldStatusHeld: {
		HoldStatusConsumedSent,
		HoldStatusFailedHeld,
		HoldStatusCancelledHeld,
		HoldStatusDisputedHeld,
	},
	HoldStatusFailedHeld: {
		HoldStatusRefundApproved,
		HoldStatusCancelledHeld,
		HoldStatusDisputedHeld,
	},
	HoldStatusDisputedHeld: {
		HoldStatusRefundApproved,
		HoldStatusCancelledHeld,
		HoldStatusFailedHeld,
	},
}

// Hold ties a frozen amount to the cashout/exchange it backs.
type Hold struct {
	ID         uuid.UUID       `json:"id"`
	UserID     int64           `json:"user_id"`
	Currency   string          `json:"currency"`
	Amount     decimal.Decimal `json:"amount"`
	Purpose    HoldPurpose     `json:"purpose"`
	LinkedType string          `json:"linked_type"`
	LinkedID   uuid.UUID       `json:"linked_id"`
	Status     HoldStatus      `json:"status"`
	HoldTxnID  uuid.UUID       `json:"hold_txn_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CanTransition reports whether moving to target is a legal lifecycle step.
func (h *Hold) CanTransition(target HoldStatus) bool {
	for _, next := range holdTransitions[h.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the hold can never change state again.
func (h *Hold) IsTerminal() bool {
	return len(holdTransitions[h.Status]) == 0
}

// FundsLeftSystem reports whether the held funds were sent externally.
// A hold in this state must never be retried or released.
func (h *Hold) FundsLeftSystem() bool {
	return h.Status == HoldStatusConsumedSent
}
