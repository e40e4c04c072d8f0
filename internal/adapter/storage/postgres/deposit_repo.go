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

// DepositRepo implements ports.DepositRepository.
type DepositRepo struct {
	pool Pool
}

// NewDepositRepo creates a new DepositRepo.
func NewDepositRepo(pool Pool) *DepositRepo {
	return &DepositRepo{pool: pool}
}

const depositSelect = `SELECT id, kind, user_id, expected_amount::TEXT, currency, provider,
	payment_address, fee_rate::TEXT, min_confirmations, status, created_at, updated_at
	FROM deposits`

// Create inserts a new expected deposit.
func (r *DepositRepo) Create(ctx context.Context, d *domain.Deposit) error {
	query := `INSERT INTO deposits (id, kind, user_id, expected_amount, currency, provider,
		payment_address, fee_rate, min_confirmations, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4::NUMERIC, $5, $6, $7, $8::NUMERIC, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		d.ID, d.Kind, d.UserID, d.ExpectedAmount.String(), d.Currency, d.Provider,
		d.PaymentAddress, d.FeeRate.String(), d.MinConfirmations, d.Status, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deposit: %w", err)
	}
	return nil
}

// GetByID fetches a deposit by ID. Returns nil, nil when absent.
func (r *DepositRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deposit, error) {
	d, err := scanDeposit(r.pool.QueryRow(ctx, depositSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deposit: %w", err)
	}
	return d, nil
}

// GetByPaymentAddress resolves which deposit an inbound webhook targets.
func (r *DepositRepo) GetByPaymentAddress(ctx context.Context, provider, address string) (*domain.Deposit, error) {
	d, err := scanDeposit(r.pool.QueryRow(ctx, depositSelect+` WHERE provider = $1 AND payment_address = $2`, provider, address))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deposit by payment address: %w", err)
	}
	return d, nil
}

// UpdateStatus advances the deposit state machine.
func (r *DepositRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DepositStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE deposits SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update deposit status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deposit not found: %s", id)
	}
	return nil
}

func scanDeposit(row pgx.Row) (*domain.Deposit, error) {
	var (
		d             domain.Deposit
		expected, fee string
	)
	if err := row.Scan(&d.ID, &d.Kind, &d.UserID, &expected, &d.Currency, &d.Provider,
		&d.PaymentAddress, &fee, &d.MinConfirmations, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}

	var err error
	if d.ExpectedAmount, err = decimal.NewFromString(expected); err != nil {
		return nil, fmt.Errorf("parse expected_amount: %w", err)
	}
	if d.FeeRate, err = decimal.NewFromString(fee); err != nil {
		return nil, fmt.Errorf("parse fee_rate: %w", err)
	}
	return &d, nil
}
