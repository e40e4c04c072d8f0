package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Moxxcompany/lockbay/internal/classifier"
	"github.com/Moxxcompany/lockbay/internal/core/domain"
	"github.com/Moxxcompany/lockbay/internal/core/ports"
	"github.com/Moxxcompany/lockbay/internal/metrics"
	"github.com/Moxxcompany/lockbay/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CashoutServiceImpl owns the cashout lifecycle: request places the hold,
// AttemptSend drives the provider call and routes every failure through the
// retry orchestrator. It never mutates balances itself; the hold manager
// does that.
type CashoutServiceImpl struct {
	cashoutRepo ports.CashoutRepository
	holdRepo    ports.HoldRepository
	holdMgr     ports.HoldManager
	providers   ports.ProviderRegistry
	retryOrch   ports.RetryOrchestrator
	destCipher  ports.DestinationCipher
	notifier    ports.Notifier
	log         zerolog.Logger
}

// NewCashoutService creates a new CashoutServiceImpl.
func NewCashoutService(
	cashoutRepo ports.CashoutRepository,
	holdRepo ports.HoldRepository,
	holdMgr ports.HoldManager,
	providers ports.ProviderRegistry,
	retryOrch ports.RetryOrchestrator,
	destCipher ports.DestinationCipher,
	notifier ports.Notifier,
	log zerolog.Logger,
) *CashoutServiceImpl {
	return &CashoutServiceImpl{
		cashoutRepo: cashoutRepo,
		holdRepo:    holdRepo,
		holdMgr:     holdMgr,
		providers:   providers,
		retryOrch:   retryOrch,
		destCipher:  destCipher,
		notifier:    notifier,
		log:         log,
	}
}

// RequestCashout validates the request, freezes the funds and persists the
// PENDING cashout entity. The hold is keyed to the cashout ID, so a client
// replay of the same cashout never freezes twice.
func (s *CashoutServiceImpl) RequestCashout(ctx context.Context, req ports.CashoutRequest) (*domain.Cashout, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.Destination == "" {
		return nil, apperror.Validation("destination address is required")
	}
	if _, ok := s.providers.Get(req.Provider); !ok {
		return nil, apperror.Validation(fmt.Sprintf("unknown payment provider %q", req.Provider))
	}

	cashoutID := uuid.New()
	holdRes, err := s.holdMgr.PlaceHold(ctx, ports.PlaceHoldRequest{
		UserID:     req.UserID,
		Currency:   req.Currency,
		Amount:     req.Amount,
		Purpose:    domain.HoldPurposeCashout,
		LinkedType: "cashout",
		LinkedID:   cashoutID,
	})
	if err != nil {
		return nil, err
	}
	if !holdRes.Success {
		return nil, apperror.ErrInsufficientBalance()
	}

	destEnc, err := s.destCipher.EncryptDestination(req.Destination)
	if err != nil {
		// Unwind the freshly placed hold so funds are not stranded.
		if _, relErr := s.holdMgr.ReleaseHoldInternal(ctx, domain.SystemActor{Context: "cashout_setup_failure"}, ports.ReleaseHoldRequest{
			UserID:    req.UserID,
			Amount:    req.Amount,
			HoldTxnID: holdRes.HoldTxnID,
			LinkedID:  cashoutID,
			Reason:    "destination encryption failed before cashout creation",
			Cancel:    true,
		}); relErr != nil {
			s.log.Error().Err(relErr).
				Str("hold_txn_id", holdRes.HoldTxnID.String()).
				Msg("CRITICAL: failed to unwind hold after encryption failure")
		}
		return nil, apperror.ErrEncryptionFailure(err)
	}

	now := time.Now().UTC()
	cashout := &domain.Cashout{
		ID:             cashoutID,
		UserID:         req.UserID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		DestinationEnc: destEnc,
		Provider:       req.Provider,
		Status:         domain.CashoutStatusPending,
		HoldID:         holdRes.HoldID,
		HoldTxnID:      holdRes.HoldTxnID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.cashoutRepo.Create(ctx, cashout); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create cashout: %w", err))
	}

	s.log.Info().
		Str("cashout_id", cashout.ID.String()).
		Int64("user_id", req.UserID).
		Str("amount", req.Amount.String()).
		Str("currency", req.Currency).
		Str("provider", req.Provider).
		Msg("cashout requested, funds frozen")
	return cashout, nil
}

// AttemptSend executes one provider send attempt. The double-send guard
// runs before anything else: a hold whose funds already left the system is
// escalated to admin review and the provider is never called again.
func (s *CashoutServiceImpl) AttemptSend(ctx context.Context, cashoutID uuid.UUID) error {
	cashout, err := s.cashoutRepo.GetByID(ctx, cashoutID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load cashout: %w", err))
	}
	if cashout == nil {
		return apperror.ErrCashoutNotFound()
	}
	if cashout.IsTerminal() {
		s.log.Warn().
			Str("cashout_id", cashoutID.String()).
			Str("status", string(cashout.Status)).
			Msg("send attempt on terminal cashout ignored")
		return nil
	}

	hold, err := s.holdRepo.GetByHoldTxnID(ctx, cashout.HoldTxnID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load hold: %w", err))
	}
	if hold == nil {
		return apperror.ErrHoldNotFound()
	}

	if hold.FundsLeftSystem() {
		// Funds already went out on a prior attempt but the cashout never
		// reached COMPLETED. Sending again would pay the user twice.
		metrics.DoubleSendBlocked.Inc()
		s.log.Error().
			Str("cashout_id", cashoutID.String()).
			Str("hold_txn_id", cashout.HoldTxnID.String()).
			Str("hold_status", string(hold.Status)).
			Msg("CRITICAL: double-send blocked, escalating to admin review")
		s.failTerminal(ctx, cashout, string(CodeDoubleSendBlocked))
		s.notifier.NotifyAdmins(ctx, fmt.Sprintf(
			"double-send blocked for cashout %s (hold %s already CONSUMED_SENT); manual reconciliation required",
			cashoutID, cashout.HoldTxnID))
		return apperror.ErrHoldAlreadyConsumed()
	}
	if hold.Status != domain.HoldStatusHeld {
		s.log.Warn().
			Str("cashout_id", cashoutID.String()).
			Str("hold_status", string(hold.Status)).
			Msg("send attempt refused, hold is not in HELD state")
		return apperror.ErrInvalidHoldTransition(string(hold.Status), string(domain.HoldStatusConsumedSent))
	}

	cashout.Status = domain.CashoutStatusProcessing
	cashout.UpdatedAt = time.Now().UTC()
	if err := s.cashoutRepo.Update(ctx, cashout); err != nil {
		return apperror.InternalError(fmt.Errorf("mark cashout processing: %w", err))
	}

	destination, err := s.destCipher.DecryptDestination(cashout.DestinationEnc)
	if err != nil {
		return s.retryOrch.HandleFailure(ctx, cashout, apperror.ErrEncryptionFailure(err), sendOpCtx(cashout))
	}

	provider, ok := s.providers.Get(cashout.Provider)
	if !ok {
		return s.retryOrch.HandleFailure(ctx, cashout,
			fmt.Errorf("provider %q unavailable: service unavailable", cashout.Provider), sendOpCtx(cashout))
	}

	res, err := provider.Withdraw(ctx, destination, cashout.Amount, cashout.Currency)
	if err != nil {
		return s.retryOrch.HandleFailure(ctx, cashout, err, sendOpCtx(cashout))
	}
	if !res.Success {
		return s.retryOrch.HandleFailure(ctx, cashout, errors.New(res.Error), sendOpCtx(cashout))
	}

	return s.finalizeSend(ctx, cashout, res.ExternalTxID)
}

// finalizeSend records the external transaction and consumes the hold. The
// external tx id is persisted before the consume so a crash between the two
// still leaves an auditable trail for reconciliation.
func (s *CashoutServiceImpl) finalizeSend(ctx context.Context, cashout *domain.Cashout, externalTxID string) error {
	cashout.ExternalTxID = &externalTxID
	cashout.UpdatedAt = time.Now().UTC()
	if err := s.cashoutRepo.Update(ctx, cashout); err != nil {
		s.log.Error().Err(err).
			Str("cashout_id", cashout.ID.String()).
			Str("external_tx_id", externalTxID).
			Msg("CRITICAL: funds sent but external tx id not persisted")
	}

	consumeRes, err := s.holdMgr.ConsumeHold(ctx, ports.ConsumeHoldRequest{
		UserID:    cashout.UserID,
		Amount:    cashout.Amount,
		HoldTxnID: cashout.HoldTxnID,
		LinkedID:  cashout.ID,
	})
	if err != nil || !consumeRes.Success {
		// Funds left the system but the ledger does not reflect it yet.
		// Never retried automatically: the double-send guard would trip if
		// the consume actually landed, so this goes straight to admins.
		cls := classifier.ClassifyWalletError(err, sendOpCtx(cashout))
		metrics.Classifications.WithLabelValues(string(cls.Code), string(cls.Type)).Inc()
		s.log.Error().
			AnErr("error", err).
			Str("cashout_id", cashout.ID.String()).
			Str("external_tx_id", externalTxID).
			Str("error_code", string(cls.Code)).
			Msg("CRITICAL: provider send succeeded but hold consume failed")
		s.failTerminal(ctx, cashout, string(CodeConsumeAfterSendFailed))
		s.notifier.NotifyAdmins(ctx, fmt.Sprintf(
			"cashout %s sent externally (tx %s) but hold consume failed; manual reconciliation required",
			cashout.ID, externalTxID))
		return apperror.InternalError(fmt.Errorf("consume after send: %w", err))
	}

	cashout.Status = domain.CashoutStatusCompleted
	cashout.FailureType = nil
	cashout.LastErrorCode = nil
	cashout.NextRetryAt = nil
	cashout.UpdatedAt = time.Now().UTC()
	if err := s.cashoutRepo.Update(ctx, cashout); err != nil {
		return apperror.InternalError(fmt.Errorf("complete cashout: %w", err))
	}

	metrics.HoldsTotal.WithLabelValues("cashout_send", "success").Inc()
	s.log.Info().
		Str("cashout_id", cashout.ID.String()).
		Str("external_tx_id", externalTxID).
		Bool("idempotent_consume", consumeRes.Idempotent).
		Msg("cashout completed")
	s.notifier.NotifyUser(ctx, cashout.UserID, fmt.Sprintf(
		"Your cashout of %s %s has been sent.", cashout.Amount.String(), cashout.Currency))
	return nil
}

// failTerminal parks the cashout in FAILED with no retry scheduled.
func (s *CashoutServiceImpl) failTerminal(ctx context.Context, cashout *domain.Cashout, code string) {
	ft := domain.FailureTypeTechnical
	cashout.Status = domain.CashoutStatusFailed
	cashout.FailureType = &ft
	cashout.LastErrorCode = &code
	cashout.NextRetryAt = nil
	cashout.UpdatedAt = time.Now().UTC()
	if err := s.cashoutRepo.Update(ctx, cashout); err != nil {
		s.log.Error().Err(err).
			Str("cashout_id", cashout.ID.String()).
			Msg("failed to persist terminal cashout failure")
	}
}

func sendOpCtx(c *domain.Cashout) map[string]string {
	return map[string]string{
		"operation":   "cashout_send",
		"entity_type": "cashout",
		"entity_id":   c.ID.String(),
		"provider":    c.Provider,
	}
}

// Sentinel codes for failures that are detected internally rather than
// classified from a provider error.
const (
	CodeDoubleSendBlocked      = "DOUBLE_SEND_BLOCKED"
	CodeConsumeAfterSendFailed = "CONSUME_AFTER_SEND_FAILED"
)
