package ports

import (
	"context"
	"time"

	"github.com/Moxxcompany/lockbay/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepository defines persistence for wallets. Methods accepting
// pgx.Tx run inside transaction blocks and rely on the wallet row lock.
type WalletRepository interface {
	// GetForUpdate upserts the wallet if missing and locks its row.
	// Concurrent first-touch never surfaces a uniqueness violation.
	GetForUpdate(ctx context.Context, tx pgx.Tx, userID int64, currency string) (*domain.Wallet, error)
	// Get is a non-locking read. Returns nil, nil when absent.
	Get(ctx context.Context, userID int64, currency string) (*domain.Wallet, error)
	// UpdateBalances writes all three pools. Must hold the row lock.
	UpdateBalances(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error
}

// HoldRepository defines persistence for holds. Hold rows are mutated only
// while holding the owning wallet's lock.
type HoldRepository interface {
	Create(ctx context.Context, tx pgx.Tx, hold *domain.Hold) error
	GetByHoldTxnID(ctx context.Context, holdTxnID uuid.UUID) (*domain.Hold, error)
	GetByHoldTxnIDForUpdate(ctx context.Context, tx pgx.Tx, holdTxnID uuid.UUID) (*domain.Hold, error)
	GetByLinked(ctx context.Context, purpose domain.HoldPurpose, linkedID uuid.UUID) (*domain.Hold, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.HoldStatus) error
}

// LedgerRepository defines persistence for the append-only ledger.
type LedgerRepository interface {
	Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error
	// GetByTypeAndHoldTxn is the consume/release idempotency lookup. It must
	// be called inside the wallet lock so a concurrent duplicate cannot race
	// past a not-yet-visible entry.
	GetByTypeAndHoldTxn(ctx context.Context, tx pgx.Tx, entryType domain.LedgerEntryType, holdTxnID uuid.UUID) (*domain.LedgerEntry, error)
	// GetByExternalTxID deduplicates webhook confirmations.
	GetByExternalTxID(ctx context.Context, userID int64, externalTxID string) (*domain.LedgerEntry, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.LedgerEntry, error)
}

// CashoutRepository defines persistence for cashout/exchange send entities.
type CashoutRepository interface {
	Create(ctx context.Context, c *domain.Cashout) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Cashout, error)
	Update(ctx context.Context, c *domain.Cashout) error
	// ListRetryDue claims failed-technical entities whose next_retry_at has
	// passed. Claimed rows stay invisible to concurrent sweepers until the
	// claim lapses or the attempt rewrites the schedule.
	ListRetryDue(ctx context.Context, now time.Time, limit int) ([]domain.Cashout, error)
	ListAwaitingReview(ctx context.Context, limit int) ([]domain.Cashout, error)
}

// DepositRepository defines persistence for expected inbound payments.
type DepositRepository interface {
	Create(ctx context.Context, d *domain.Deposit) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deposit, error)
	GetByPaymentAddress(ctx context.Context, provider, address string) (*domain.Deposit, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DepositStatus) error
}

// AdminRepository defines persistence for admin operator accounts.
type AdminRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

// AuditRepository persists the admin action audit trail.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RateCache is the injected TTL cache in front of the rate oracle.
// Populated on first miss, invalidated by TTL only.
type RateCache interface {
	Get(ctx context.Context, key string) (decimal.Decimal, bool, error)
	Set(ctx context.Context, key string, value decimal.Decimal, ttl time.Duration) error
}

// DedupeCache is the fast-path seen-txid check in front of the
// authoritative ledger lookup for webhook deduplication.
type DedupeCache interface {
	// CheckAndSet atomically records key, returning true if it was new.
	CheckAndSet(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release drops a recorded key so the provider's redelivery of the
	// same txid is processed instead of dropped as a duplicate.
	Release(ctx context.Context, key string) error
}
