package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Moxxcompany/lockbay/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CashoutRepo implements ports.CashoutRepository.
type CashoutRepo struct {
	pool Pool
}

// NewCashoutRepo creates a new CashoutRepo.
func NewCashoutRepo(pool Pool) *CashoutRepo {
	return &CashoutRepo{pool: pool}
}

const cashoutCols = `id, user_id, amount::TEXT, currency, destination_enc, provider, status,
	failure_type, last_error_code, retry_count, next_retry_at, technical_failure_since,
	hold_id, hold_txn_id, external_tx_id, created_at, updated_at`

const cashoutSelect = `SELECT ` + cashoutCols + ` FROM cashouts`

// retryLease is how far a sweeper pushes next_retry_at when it claims a
// batch. A sweeper that dies mid-batch forfeits its claim after this long.
const retryLease = 2 * time.Minute

// Create inserts a new cashout entity.
func (r *CashoutRepo) Create(ctx context.Context, c *domain.Cashout) error {
	query := `INSERT INTO cashouts (id, user_id, amount, currency, destination_enc, provider, status,
		failure_type, last_error_code, retry_count, next_retry_at, technical_failure_since,
		hold_id, hold_txn_id, external_tx_id, created_at, updated_at)
		VALUES ($1, $2, $3::NUMERIC, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.UserID, c.Amount.String(), c.Currency, c.DestinationEnc, c.Provider, c.Status,
		c.FailureType, c.LastErrorCode, c.RetryCount, c.NextRetryAt, c.TechnicalFailureSince,
		c.HoldID, c.HoldTxnID, c.ExternalTxID, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cashout: %w", err)
	}
	return nil
}

// GetByID fetches a cashout by ID. Returns nil, nil when absent.
func (r *CashoutRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Cashout, error) {
	c, err := scanCashout(r.pool.QueryRow(ctx, cashoutSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cashout: %w", err)
	}
	return c, nil
}

// Update persists the full retry/lifecycle state of a cashout. The retry
// orchestrator never keeps a scheduling decision in memory only.
func (r *CashoutRepo) Update(ctx context.Context, c *domain.Cashout) error {
	query := `UPDATE cashouts SET status = $1, failure_type = $2, last_error_code = $3,
		retry_count = $4, next_retry_at = $5, technical_failure_since = $6,
		external_tx_id = $7, updated_at = NOW()
		WHERE id = $8`

	tag, err := r.pool.Exec(ctx, query,
		c.Status, c.FailureType, c.LastErrorCode,
		c.RetryCount, c.NextRetryAt, c.TechnicalFailureSince,
		c.ExternalTxID, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update cashout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cashout not found: %s", c.ID)
	}
	return nil
}

// ListRetryDue claims one batch of failed-technical cashouts whose retry
// timer has fired. The claim is a lease: next_retry_at is pushed past the
// lease window in the same statement that picks the rows, so the claim
// survives the statement's own row locks and a concurrent sweeper cannot
// take the same batch. Each attempt rewrites next_retry_at anyway, and a
// sweeper that dies mid-batch just forfeits the lease.
func (r *CashoutRepo) ListRetryDue(ctx context.Context, now time.Time, limit int) ([]domain.Cashout, error) {
	query := `UPDATE cashouts SET next_retry_at = $4 WHERE id IN (
		SELECT id FROM cashouts WHERE status = $1 AND failure_type = $2 AND next_retry_at <= $3
		ORDER BY next_retry_at ASC LIMIT $5 FOR UPDATE SKIP LOCKED)
		RETURNING ` + cashoutCols

	rows, err := r.pool.Query(ctx, query,
		domain.CashoutStatusFailed, domain.FailureTypeTechnical, now, now.Add(retryLease), limit)
	if err != nil {
		return nil, fmt.Errorf("claim retry-due cashouts: %w", err)
	}
	defer rows.Close()
	return collectCashouts(rows)
}

// ListAwaitingReview returns terminally failed cashouts for the admin queue.
func (r *CashoutRepo) ListAwaitingReview(ctx context.Context, limit int) ([]domain.Cashout, error) {
	query := cashoutSelect + ` WHERE status = $1 AND next_retry_at IS NULL
		ORDER BY updated_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, domain.CashoutStatusFailed, limit)
	if err != nil {
		return nil, fmt.Errorf("list cashouts awaiting review: %w", err)
	}
	defer rows.Close()
	return collectCashouts(rows)
}

func collectCashouts(rows pgx.Rows) ([]domain.Cashout, error) {
	var out []domain.Cashout
	for rows.Next() {
		c, err := scanCashout(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cashout: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanCashout(row pgx.Row) (*domain.Cashout, error) {
	var (
		c      domain.Cashout
		amount string
	)
	if err := row.Scan(&c.ID, &c.UserID, &amount, &c.Currency, &c.DestinationEnc, &c.Provider, &c.Status,
		&c.FailureType, &c.LastErrorCode, &c.RetryCount, &c.NextRetryAt, &c.TechnicalFailureSince,
		&c.HoldID, &c.HoldTxnID, &c.ExternalTxID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	var err error
	if c.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse cashout amount: %w", err)
	}
	return &c, nil
}
