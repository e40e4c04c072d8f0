package ports

import (
	"context"
	"time"

	"github.com/Moxxcompany/lockbay/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Hold Manager ---

// PlaceHoldRequest asks for funds to be moved from available to frozen.
type PlaceHoldRequest struct {
	UserID     int64
	Currency   string
	Amount     decimal.Decimal
	Purpose    domain.HoldPurpose
	LinkedType string
	LinkedID   uuid.UUID
}

// HoldResult reports the outcome of PlaceHold.
type HoldResult struct {
	Success      bool
	HoldID       uuid.UUID
	HoldTxnID    uuid.UUID
	FrozenAmount decimal.Decimal
	Idempotent   bool // true when a prior hold for the same linked entity was returned
	Error        string
}

// ConsumeHoldRequest finalizes a hold after a successful external send.
type ConsumeHoldRequest struct {
	UserID    int64
	Amount    decimal.Decimal
	HoldTxnID uuid.UUID
	LinkedID  uuid.UUID
}

// ConsumeResult reports the outcome of ConsumeHold.
type ConsumeResult struct {
	Success     bool
	Idempotent  bool // true when a duplicate invocation returned the prior result
	LedgerTxnID uuid.UUID
	Error       string
}

// ReleaseHoldRequest returns frozen funds to the available pool.
type ReleaseHoldRequest struct {
	UserID    int64
	Amount    decimal.Decimal
	HoldTxnID uuid.UUID
	LinkedID  uuid.UUID
	Reason    string
	// Cancel marks the hold CANCELLED_HELD instead of REFUND_APPROVED.
	Cancel bool
}

// ReleaseResult reports the outcome of ReleaseHold.
type ReleaseResult struct {
	Success           bool
	Idempotent        bool
	LedgerTxnID       uuid.UUID
	SecurityViolation bool
	Error             string
}

// HoldManager is the sole mutator of wallet balances. All operations are
// idempotent on their transaction identifiers and serialize on the wallet
// row lock.
type HoldManager interface {
	PlaceHold(ctx context.Context, req PlaceHoldRequest) (*HoldResult, error)
	ConsumeHold(ctx context.Context, req ConsumeHoldRequest) (*ConsumeResult, error)
	// ReleaseHold is admin-only: the AdminActor capability is re-verified
	// before any mutation.
	ReleaseHold(ctx context.Context, admin domain.AdminActor, req ReleaseHoldRequest) (*ReleaseResult, error)
	// ReleaseHoldInternal is reachable only from verified automated recovery
	// jobs; the SystemActor context tag is recorded for audit.
	ReleaseHoldInternal(ctx context.Context, sys domain.SystemActor, req ReleaseHoldRequest) (*ReleaseResult, error)
	// MarkHoldFailed moves HELD -> FAILED_HELD. Funds stay frozen.
	MarkHoldFailed(ctx context.Context, holdTxnID uuid.UUID, reason string) error
	// MarkHoldDisputed moves a hold into DISPUTED_HELD.
	MarkHoldDisputed(ctx context.Context, admin domain.AdminActor, holdTxnID uuid.UUID, reason string) error
	// CreditAvailable credits the available pool (deposits, overpayments).
	CreditAvailable(ctx context.Context, userID int64, currency string, amount decimal.Decimal, entryType domain.LedgerEntryType, description string, externalTxID *string) (*domain.LedgerEntry, error)
}

// --- Cashout / retry orchestration ---

// CashoutRequest is a user-initiated withdrawal.
type CashoutRequest struct {
	UserID      int64
	Amount      decimal.Decimal
	Currency    string
	Destination string
	Provider    string
}

// CashoutService owns the cashout request and send-attempt flow.
type CashoutService interface {
	RequestCashout(ctx context.Context, req CashoutRequest) (*domain.Cashout, error)
	// AttemptSend executes one provider send attempt for the cashout,
	// consuming the hold on success and routing failures to the retry
	// orchestrator.
	AttemptSend(ctx context.Context, cashoutID uuid.UUID) error
}

// RetryOrchestrator decides retry vs. escalate for failed sends and runs
// the periodic retry sweep. Its decisions are always persisted.
type RetryOrchestrator interface {
	HandleFailure(ctx context.Context, cashout *domain.Cashout, cause error, opCtx map[string]string) error
	Sweep(ctx context.Context) (int, error)
}

// --- Payment confirmation ---

// PaymentWebhook is the normalized inbound payment notification.
type PaymentWebhook struct {
	Provider       string
	TxID           string
	ReceivedAmount decimal.Decimal
	Currency       string
	Confirmations  int
	PaymentAddress string
}

// ConfirmationOutcome describes how a webhook was settled.
type ConfirmationOutcome struct {
	Accepted      bool
	Duplicate     bool
	Underpaid     bool
	Overpaid      bool
	CreditedTotal decimal.Decimal
	FeeAmount     decimal.Decimal
	Excess        decimal.Decimal
	DepositStatus domain.DepositStatus
}

// ConfirmationProcessor reconciles provider webhooks against expected
// deposits and drives the hold manager and entity state machines.
type ConfirmationProcessor interface {
	ProcessConfirmation(ctx context.Context, hook PaymentWebhook) (*ConfirmationOutcome, error)
}

// --- External collaborators ---

// WithdrawalResult is the normalized provider send outcome.
type WithdrawalResult struct {
	Success      bool
	ExternalTxID string
	Error        string
}

// PaymentProvider is the normalized contract every external provider
// (Kraken, Fincra, BlockBee) is adapted to.
type PaymentProvider interface {
	Name() string
	CreatePaymentAddress(ctx context.Context, userID int64, currency string) (string, error)
	Withdraw(ctx context.Context, destination string, amount decimal.Decimal, currency string) (*WithdrawalResult, error)
}

// ProviderRegistry resolves a provider adapter by name.
type ProviderRegistry interface {
	Get(name string) (PaymentProvider, bool)
}

// CreateDepositRequest provisions an expected inbound payment.
type CreateDepositRequest struct {
	UserID         int64
	Kind           domain.DepositKind
	ExpectedAmount decimal.Decimal
	Currency       string
	Provider       string
}

// DepositService provisions expected deposits and their payment addresses.
type DepositService interface {
	CreateDeposit(ctx context.Context, req CreateDepositRequest) (*domain.Deposit, error)
	GetDeposit(ctx context.Context, id uuid.UUID) (*domain.Deposit, error)
}

// ReportingService serves read-only wallet, ledger and review queries.
type ReportingService interface {
	GetBalance(ctx context.Context, userID int64, currency string) (*domain.Wallet, error)
	ListLedger(ctx context.Context, userID int64, limit int) ([]domain.LedgerEntry, error)
	ListAwaitingReview(ctx context.Context, limit int) ([]domain.Cashout, error)
}

// AdminVerifier authenticates admin operators and mints AdminActor
// capabilities. IsAdminSecure is the hard gate in front of every
// fund-releasing operation.
type AdminVerifier interface {
	IsAdminSecure(ctx context.Context, adminID int64) (bool, error)
	Login(ctx context.Context, username, password string) (string, time.Time, error)
	VerifyToken(ctx context.Context, token string) (*domain.AdminActor, error)
}

// Notifier is fire-and-forget: failures are logged, never propagated into
// ledger paths.
type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, message string)
	NotifyAdmins(ctx context.Context, message string)
}

// RateOracle converts amounts between currencies. Treated as external;
// results are cached with TTL.
type RateOracle interface {
	// Convert returns the value of amount units of from expressed in to.
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// SignatureService verifies HMAC-SHA256 webhook signatures.
type SignatureService interface {
	Sign(secretKey string, payload []byte) string
	Verify(secretKey string, payload []byte, signature string) bool
}

// DestinationCipher seals payout destinations for storage at rest and
// opens them for a send attempt.
type DestinationCipher interface {
	EncryptDestination(destination string) (string, error)
	DecryptDestination(encrypted string) (string, error)
}

// HashService handles admin password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// AuditService records audited actions asynchronously.
type AuditService interface {
	Record(ctx context.Context, log *domain.AuditLog)
}
