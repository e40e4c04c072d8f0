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

// HoldRepo implements ports.HoldRepository.
type HoldRepo struct {
	pool Pool
}

// NewHoldRepo creates a new HoldRepo.
func NewHoldRepo(pool Pool) *HoldRepo {
	return &HoldRepo{pool: pool}
}

const holdSelect = `SELECT id, user_id, currency, amount::TEXT, purpose,
	linked_type, linked_id, status, hold_txn_id, created_at, updated_at
	FROM holds`

// Create inserts a hold row within a transaction. Must hold the owning
// wallet's lock.
func (r *HoldRepo) Create(ctx context.Context, tx pgx.Tx, h *domain.Hold) error {
	query := `INSERT INTO holds (id, user_id, currency, amount, purpose, linked_type, linked_id, status, hold_txn_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4::NUMERIC, $5, $6, $7, $8, $9, $10, $11)`

	_, err := tx.Exec(ctx, query,
		h.ID, h.UserID, h.Currency, h.Amount.String(), h.Purpose,
		h.LinkedType, h.LinkedID, h.Status, h.HoldTxnID, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert hold: %w", err)
	}
	return nil
}

// GetByHoldTxnID fetches a hold by its ledger correlation ID (non-locking).
func (r *HoldRepo) GetByHoldTxnID(ctx context.Context, holdTxnID uuid.UUID) (*domain.Hold, error) {
	h, err := scanHold(r.pool.QueryRow(ctx, holdSelect+` WHERE hold_txn_id = $1`, holdTxnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hold by hold_txn_id: %w", err)
	}
	return h, nil
}

// GetByHoldTxnIDForUpdate locks the hold row. MUST be called within a
// transaction that already holds the wallet lock (lock ordering: wallet
// first, then hold).
func (r *HoldRepo) GetByHoldTxnIDForUpdate(ctx context.Context, tx pgx.Tx, holdTxnID uuid.UUID) (*domain.Hold, error) {
	h, err := scanHold(tx.QueryRow(ctx, holdSelect+` WHERE hold_txn_id = $1 FOR UPDATE`, holdTxnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hold for update: %w", err)
	}
	return h, nil
}

// GetByLinked fetches the hold backing a business entity.
func (r *HoldRepo) GetByLinked(ctx context.Context, purpose domain.HoldPurpose, linkedID uuid.UUID) (*domain.Hold, error) {
	h, err := scanHold(r.pool.QueryRow(ctx, holdSelect+` WHERE purpose = $1 AND linked_id = $2`, purpose, linkedID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hold by linked: %w", err)
	}
	return h, nil
}

// UpdateStatus moves a hold to a new lifecycle state within a transaction.
func (r *HoldRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.HoldStatus) error {
	query := `UPDATE holds SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := tx.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update hold status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("hold not found: %s", id)
	}
	return nil
}

func scanHold(row pgx.Row) (*domain.Hold, error) {
	var (
		h      domain.Hold
		amount string
	)
	if err := row.Scan(&h.ID, &h.UserID, &h.Currency, &amount, &h.Purpose,
		&h.LinkedType, &h.LinkedID, &h.Status, &h.HoldTxnID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}

	var err error
	if h.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse hold amount: %w", err)
	}
	return &h, nil
}
