package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Moxxcompany/lockbay/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository. Balances are stored as
// NUMERIC and moved as text to keep exact decimal precision.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

const walletSelect = `SELECT user_id, currency,
	available_balance::TEXT, frozen_balance::TEXT, trading_credit::TEXT,
	created_at, updated_at
	FROM wallets WHERE user_id = $1 AND currency = $2`

// GetForUpdate lazily creates the wallet and locks its row. The ON
// CONFLICT DO NOTHING keeps a concurrent first-touch from surfacing a
// uniqueness violation; the subsequent SELECT FOR UPDATE serializes on
// whichever insert won. MUST be called within a transaction.
func (r *WalletRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, userID int64, currency string) (*domain.Wallet, error) {
	upsert := `INSERT INTO wallets (user_id, currency, available_balance, frozen_balance, trading_credit, created_at, updated_at)
		VALUES ($1, $2, 0, 0, 0, NOW(), NOW())
		ON CONFLICT (user_id, currency) DO NOTHING`
	if _, err := tx.Exec(ctx, upsert, userID, currency); err != nil {
		return nil, fmt.Errorf("upsert wallet: %w", err)
	}

	w, err := scanWallet(tx.QueryRow(ctx, walletSelect+` FOR UPDATE`, userID, currency))
	if err != nil {
		return nil, fmt.Errorf("lock wallet: %w", err)
	}
	return w, nil
}

// Get is a non-locking read. Returns nil, nil when the wallet does not
// exist yet.
func (r *WalletRepo) Get(ctx context.Context, userID int64, currency string) (*domain.Wallet, error) {
	w, err := scanWallet(r.pool.QueryRow(ctx, walletSelect, userID, currency))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	return w, nil
}

// UpdateBalances writes all three pools within a transaction. The caller
// must hold the row lock acquired by GetForUpdate.
func (r *WalletRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `UPDATE wallets
		SET available_balance = $1::NUMERIC, frozen_balance = $2::NUMERIC,
		    trading_credit = $3::NUMERIC, updated_at = NOW()
		WHERE user_id = $4 AND currency = $5`

	tag, err := tx.Exec(ctx, query,
		w.Available.String(), w.Frozen.String(), w.TradingCredit.String(),
		w.UserID, w.Currency,
	)
	if err != nil {
		return fmt.Errorf("update wallet balances: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: user %d currency %s", w.UserID, w.Currency)
	}
	return nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var (
		w                         domain.Wallet
		available, frozen, credit string
		createdAt, updatedAt      time.Time
	)
	if err := row.Scan(&w.UserID, &w.Currency, &available, &frozen, &credit, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if w.Available, err = decimal.NewFromString(available); err != nil {
		return nil, fmt.Errorf("parse available_balance: %w", err)
	}
	if w.Frozen, err = decimal.NewFromString(frozen); err != nil {
		return nil, fmt.Errorf("parse frozen_balance: %w", err)
	}
	if w.TradingCredit, err = decimal.NewFromString(credit); err != nil {
		return nil, fmt.Errorf("parse trading_credit: %w", err)
	}
	w.CreatedAt, w.UpdatedAt = createdAt, updatedAt
	return &w, nil
}
