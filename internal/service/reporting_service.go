package service

import (
	"context"
	"fmt"

	"github.com/Moxxcompany/lockbay/internal/core/domain"
	"github.com/Moxxcompany/lockbay/internal/core/ports"
	"github.com/Moxxcompany/lockbay/pkg/apperror"
)

const defaultListLimit = 50

// ReportingServiceImpl implements ports.ReportingService. Read-only; it
// never takes wallet locks.
type ReportingServiceImpl struct {
	walletRepo  ports.WalletRepository
	ledgerRepo  ports.LedgerRepository
	cashoutRepo ports.CashoutRepository
}

// NewReportingService creates a new ReportingServiceImpl.
func NewReportingService(walletRepo ports.WalletRepository, ledgerRepo ports.LedgerRepository, cashoutRepo ports.CashoutRepository) *ReportingServiceImpl {
	return &ReportingServiceImpl{
		walletRepo:  walletRepo,
		ledgerRepo:  ledgerRepo,
		cashoutRepo: cashoutRepo,
	}
}

// GetBalance returns the wallet snapshot for userID and currency.
func (s *ReportingServiceImpl) GetBalance(ctx context.Context, userID int64, currency string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.Get(ctx, userID, currency)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

// ListLedger returns the newest ledger entries for a user.
func (s *ReportingServiceImpl) ListLedger(ctx context.Context, userID int64, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultListLimit
	}
	entries, err := s.ledgerRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list ledger: %w", err))
	}
	return entries, nil
}

// ListAwaitingReview returns terminally failed cashouts whose frozen funds
// are waiting for an admin decision.
func (s *ReportingServiceImpl) ListAwaitingReview(ctx context.Context, limit int) ([]domain.Cashout, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultListLimit
	}
	cashouts, err := s.cashoutRepo.ListAwaitingReview(ctx, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list awaiting review: %w", err))
	}
	return cashouts, nil
}
