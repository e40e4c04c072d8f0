package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Moxxcompany/lockbay/internal/classifier"
	"github.com/Moxxcompany/lockbay/internal/core/domain"
	"github.com/Moxxcompany/lockbay/internal/core/ports"
	"github.com/Moxxcompany/lockbay/internal/metrics"
	"github.com/Moxxcompany/lockbay/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DepositServiceImpl provisions expected inbound payments: it asks the
// provider for a dedicated payment address and records the deposit the
// confirmation processor will later reconcile against.
type DepositServiceImpl struct {
	depositRepo      ports.DepositRepository
	providers        ports.ProviderRegistry
	feeRate          decimal.Decimal
	minConfirmations int
	log              zerolog.Logger
}

// NewDepositService creates a new DepositServiceImpl.
func NewDepositService(
	depositRepo ports.DepositRepository,
	providers ports.ProviderRegistry,
	feeRate decimal.Decimal,
	minConfirmations int,
	log zerolog.Logger,
) *DepositServiceImpl {
	return &DepositServiceImpl{
		depositRepo:      depositRepo,
		providers:        providers,
		feeRate:          feeRate,
		minConfirmations: minConfirmations,
		log:              log,
	}
}

// CreateDeposit provisions a PENDING_DEPOSIT with a fresh payment address.
func (s *DepositServiceImpl) CreateDeposit(ctx context.Context, req ports.CreateDepositRequest) (*domain.Deposit, error) {
	if !req.ExpectedAmount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	provider, ok := s.providers.Get(req.Provider)
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("unknown payment provider %q", req.Provider))
	}

	address, err := provider.CreatePaymentAddress(ctx, req.UserID, req.Currency)
	if err != nil {
		cls := classifier.ClassifyDepositError(err, map[string]string{"provider": req.Provider})
		metrics.Classifications.WithLabelValues(string(cls.Code), string(cls.Type)).Inc()
		s.log.Error().Err(err).
			Str("provider", req.Provider).
			Str("error_code", string(cls.Code)).
			Msg("payment address provisioning failed")
		return nil, apperror.InternalError(fmt.Errorf("create payment address: %w", err))
	}

	now := time.Now().UTC()
	deposit := &domain.Deposit{
		ID:               uuid.New(),
		Kind:             req.Kind,
		UserID:           req.UserID,
		ExpectedAmount:   req.ExpectedAmount,
		Currency:         req.Currency,
		Provider:         req.Provider,
		PaymentAddress:   address,
		FeeRate:          s.feeRate,
		MinConfirmations: s.minConfirmations,
		Status:           domain.DepositStatusPendingDeposit,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.depositRepo.Create(ctx, deposit); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create deposit: %w", err))
	}

	s.log.Info().
		Str("deposit_id", deposit.ID.String()).
		Int64("user_id", req.UserID).
		Str("kind", string(req.Kind)).
		Str("expected", req.ExpectedAmount.String()).
		Str("currency", req.Currency).
		Str("provider", req.Provider).
		Msg("deposit provisioned")
	return deposit, nil
}

// GetDeposit returns a deposit by id.
func (s *DepositServiceImpl) GetDeposit(ctx context.Context, id uuid.UUID) (*domain.Deposit, error) {
	deposit, err := s.depositRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load deposit: %w", err))
	}
	if deposit == nil {
		return nil, apperror.ErrDepositNotFound()
	}
	return deposit, nil
}
