package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepositKind identifies which flow an inbound payment belongs to.
type DepositKind string

const (
	DepositKindEscrow   DepositKind = "escrow"
	DepositKindExchange DepositKind = "exchange"
	DepositKindWallet   DepositKind = "wallet"
)

// DepositStatus is the confirmation state of an expected inbound payment.
type DepositStatus string

const (
	DepositStatusPendingDeposit      DepositStatus = "PENDING_DEPOSIT"
	DepositStatusPaymentConfirmed    DepositStatus = "PAYMENT_CONFIRMED"
	DepositStatusPaymentInsufficient DepositStatus = "PAYMENT_INSUFFICIENT"
	DepositStatusExpired             DepositStatus = "EXPIRED"
)

// Deposit is an expected inbound payment: an escrow funding leg, an
// exchange funding leg, or a plain wallet top-up. The confirmation
// processor reconciles provider webhooks against it.
type Deposit struct {
	ID               uuid.UUID       `json:"id"`
	Kind             DepositKind     `json:"kind"`
	UserID           int64           `json:"user_id"`
	ExpectedAmount   decimal.Decimal `json:"expected_amount"`
	Currency         string          `json:"currency"`
	Provider         string          `json:"provider"`
	PaymentAddress   string          `json:"payment_address"`
	FeeRate          decimal.Decimal `json:"fee_rate"` // platform fee fraction, e.g. 0.01
	MinConfirmations int             `json:"min_confirmations"`
	Status           DepositStatus   `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
