package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Moxxcompany/lockbay/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerRepo implements ports.LedgerRepository. Entries are append-only:
// there is deliberately no update or delete here beyond what Create writes.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

const ledgerSelect = `SELECT id, user_id, type, amount::TEXT, currency, status,
	description, hold_txn_id, external_tx_id, linked_type, linked_id, created_at
	FROM ledger_entries`

// Create appends a ledger entry within a transaction.
func (r *LedgerRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (id, user_id, type, amount, currency, status, description, hold_txn_id, external_tx_id, linked_type, linked_id, created_at)
		VALUES ($1, $2, $3, $4::NUMERIC, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := tx.Exec(ctx, query,
		e.ID, e.UserID, e.Type, e.Amount.String(), e.Currency, e.Status,
		e.Description, e.HoldTxnID, e.ExternalTxID, e.LinkedType, e.LinkedID, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// GetByTypeAndHoldTxn is the consume/release idempotency lookup. It reads
// through the supplied transaction so it observes rows written under the
// same wallet lock.
func (r *LedgerRepo) GetByTypeAndHoldTxn(ctx context.Context, tx pgx.Tx, entryType domain.LedgerEntryType, holdTxnID uuid.UUID) (*domain.LedgerEntry, error) {
	e, err := scanLedgerEntry(tx.QueryRow(ctx, ledgerSelect+` WHERE type = $1 AND hold_txn_id = $2`, entryType, holdTxnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry by hold_txn: %w", err)
	}
	return e, nil
}

// GetByExternalTxID deduplicates inbound payment confirmations.
func (r *LedgerRepo) GetByExternalTxID(ctx context.Context, userID int64, externalTxID string) (*domain.LedgerEntry, error) {
	e, err := scanLedgerEntry(r.pool.QueryRow(ctx, ledgerSelect+` WHERE user_id = $1 AND external_tx_id = $2`, userID, externalTxID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry by external_tx_id: %w", err)
	}
	return e, nil
}

// ListByUser returns the most recent entries for a user.
func (r *LedgerRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, ledgerSelect+` WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var (
		e      domain.LedgerEntry
		amount string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Type, &amount, &e.Currency, &e.Status,
		&e.Description, &e.HoldTxnID, &e.ExternalTxID, &e.LinkedType, &e.LinkedID, &e.CreatedAt); err != nil {
		return nil, err
	}

	var err error
	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse ledger amount: %w", err)
	}
	return &e, nil
}
