package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntryType is the kind of money movement an entry records.
type LedgerEntryType string

const (
	LedgerTypeHold        LedgerEntryType = "hold"
	LedgerTypeConsume     LedgerEntryType = "consume"
	LedgerTypeRelease     LedgerEntryType = "release"
	LedgerTypeCredit      LedgerEntryType = "credit"
	LedgerTypeDebit       LedgerEntryType = "debit"
	LedgerTypeRefund      LedgerEntryType = "refund"
	LedgerTypeOverpayment LedgerEntryType = "overpayment"
	LedgerTypeFee         LedgerEntryType = "fee"
)

// LedgerEntryStatus finalizes an entry; no other field is ever updated.
type LedgerEntryStatus string

const (
	LedgerStatusCompleted LedgerEntryStatus = "completed"
	LedgerStatusFailed    LedgerEntryStatus = "failed"
)

// LedgerEntry is an immutable audit record of a single balance movement.
// HoldTxnID and ExternalTxID are indexed correlation columns: consume and
// release idempotency checks and webhook deduplication query them directly
// instead of pattern-matching the free-text description.
type LedgerEntry struct {
	ID           uuid.UUID         `json:"id"`
	UserID       int64             `json:"user_id"`
	Type         LedgerEntryType   `json:"type"`
	Amount       decimal.Decimal   `json:"amount"`
	Currency     string            `json:"currency"`
	Status       LedgerEntryStatus `json:"status"`
	Description  string            `json:"description"`
	HoldTxnID    *uuid.UUID        `json:"hold_txn_id,omitempty"`
	ExternalTxID *string           `json:"external_tx_id,omitempty"`
	LinkedType   *string           `json:"linked_type,omitempty"`
	LinkedID     *uuid.UUID        `json:"linked_id,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}
