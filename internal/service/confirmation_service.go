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

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const dedupeTTL = 72 * time.Hour

// ConfirmationServiceImpl reconciles provider payment webhooks against
// expected deposits. Deduplication is two-layered: the immutable ledger is
// authoritative, and a Redis claim on the provider txid serializes
// concurrent identical deliveries. The claim is taken only after every
// read-only gate has passed and is handed back on a processing error, so a
// turned-away or failed delivery stays processable on redelivery.
type ConfirmationServiceImpl struct {
	depositRepo  ports.DepositRepository
	ledgerRepo   ports.LedgerRepository
	holdMgr      ports.HoldManager
	dedupe       ports.DedupeCache
	rates        ports.RateOracle
	notifier     ports.Notifier
	toleranceUSD decimal.Decimal
	log          zerolog.Logger
}

// NewConfirmationService creates a new ConfirmationServiceImpl.
func NewConfirmationService(
	depositRepo ports.DepositRepository,
	ledgerRepo ports.LedgerRepository,
	holdMgr ports.HoldManager,
	dedupe ports.DedupeCache,
	rates ports.RateOracle,
	notifier ports.Notifier,
	toleranceUSD decimal.Decimal,
	log zerolog.Logger,
) *ConfirmationServiceImpl {
	return &ConfirmationServiceImpl{
		depositRepo:  depositRepo,
		ledgerRepo:   ledgerRepo,
		holdMgr:      holdMgr,
		dedupe:       dedupe,
		rates:        rates,
		notifier:     notifier,
		toleranceUSD: toleranceUSD,
		log:          log,
	}
}

// ProcessConfirmation settles one normalized webhook. Business outcomes
// (duplicate, waiting for confirmations, underpaid) are reported in the
// outcome so the handler can acknowledge the provider; errors are reserved
// for infrastructure faults that warrant a provider retry.
func (s *ConfirmationServiceImpl) ProcessConfirmation(ctx context.Context, hook ports.PaymentWebhook) (*ports.ConfirmationOutcome, error) {
	log := s.log.With().
		Str("provider", hook.Provider).
		Str("external_tx_id", hook.TxID).
		Str("payment_address", hook.PaymentAddress).
		Logger()

	deposit, err := s.depositRepo.GetByPaymentAddress(ctx, hook.Provider, hook.PaymentAddress)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup deposit: %w", err))
	}
	if deposit == nil {
		metrics.WebhooksTotal.WithLabelValues(hook.Provider, "unmatched").Inc()
		log.Warn().Msg("webhook for unknown payment address")
		return nil, apperror.ErrDepositNotFound()
	}

	if deposit.Status == domain.DepositStatusPaymentConfirmed {
		metrics.WebhooksTotal.WithLabelValues(hook.Provider, "duplicate").Inc()
		return &ports.ConfirmationOutcome{Duplicate: true, DepositStatus: deposit.Status}, nil
	}

	// The confirmations gate and the ledger lookup run before the txid is
	// claimed: a delivery turned away here must stay processable when the
	// provider redelivers it, and an infrastructure error must stay
	// retryable.
	if hook.Confirmations < deposit.MinConfirmations {
		metrics.WebhooksTotal.WithLabelValues(hook.Provider, "pending_confirmations").Inc()
		log.Info().
			Int("confirmations", hook.Confirmations).
			Int("required", deposit.MinConfirmations).
			Msg("waiting for more confirmations")
		return &ports.ConfirmationOutcome{Accepted: false, DepositStatus: deposit.Status}, nil
	}

	// Authoritative dedupe against the immutable ledger.
	if prior, err := s.ledgerRepo.GetByExternalTxID(ctx, deposit.UserID, hook.TxID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("ledger dedupe: %w", err))
	} else if prior != nil {
		metrics.WebhooksTotal.WithLabelValues(hook.Provider, "duplicate").Inc()
		log.Info().Str("ledger_txn_id", prior.ID.String()).Msg("duplicate webhook dropped by ledger")
		return &ports.ConfirmationOutcome{Duplicate: true, DepositStatus: deposit.Status}, nil
	}

	// Claim the txid. Exactly one of several concurrent identical
	// deliveries gets past this; a cache error degrades to ledger-only
	// dedupe rather than bouncing the payment.
	dedupeKey := hook.Provider + ":" + hook.TxID
	claimed := false
	if fresh, err := s.dedupe.CheckAndSet(ctx, dedupeKey, dedupeTTL); err != nil {
		log.Warn().Err(err).Msg("dedupe cache unavailable, relying on ledger")
	} else if !fresh {
		metrics.WebhooksTotal.WithLabelValues(hook.Provider, "duplicate").Inc()
		log.Info().Msg("duplicate webhook dropped by cache")
		return &ports.ConfirmationOutcome{Duplicate: true, DepositStatus: deposit.Status}, nil
	} else {
		claimed = true
	}

	tolerance := s.toleranceIn(ctx, deposit.Currency)
	shortfall := deposit.ExpectedAmount.Sub(hook.ReceivedAmount)

	var outcome *ports.ConfirmationOutcome
	if shortfall.GreaterThan(tolerance) {
		outcome, err = s.park(ctx, deposit, hook, tolerance, log)
	} else {
		outcome, err = s.settle(ctx, deposit, hook, tolerance, shortfall, log)
	}
	if err != nil && claimed {
		// Hand the claim back so the provider retry is not dropped.
		if relErr := s.dedupe.Release(ctx, dedupeKey); relErr != nil {
			log.Error().Err(relErr).Msg("failed to release dedupe claim after processing error")
		}
	}
	return outcome, err
}

// park marks an underpaid deposit for review without crediting anything.
func (s *ConfirmationServiceImpl) park(ctx context.Context, deposit *domain.Deposit, hook ports.PaymentWebhook, tolerance decimal.Decimal, log zerolog.Logger) (*ports.ConfirmationOutcome, error) {
	if err := s.depositRepo.UpdateStatus(ctx, deposit.ID, domain.DepositStatusPaymentInsufficient); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("mark deposit insufficient: %w", err))
	}
	metrics.WebhooksTotal.WithLabelValues(hook.Provider, "underpaid").Inc()
	log.Warn().
		Str("expected", deposit.ExpectedAmount.String()).
		Str("received", hook.ReceivedAmount.String()).
		Str("tolerance", tolerance.String()).
		Msg("underpayment beyond tolerance, deposit parked for review")
	s.notifier.NotifyUser(ctx, deposit.UserID, fmt.Sprintf(
		"Your payment of %s %s is below the expected %s %s. Support has been notified.",
		hook.ReceivedAmount.String(), deposit.Currency, deposit.ExpectedAmount.String(), deposit.Currency))
	s.notifier.NotifyAdmins(ctx, fmt.Sprintf(
		"deposit %s underpaid: expected %s, received %s %s (tolerance %s)",
		deposit.ID, deposit.ExpectedAmount.String(), hook.ReceivedAmount.String(), deposit.Currency, tolerance.String()))
	return &ports.ConfirmationOutcome{
		Accepted:      false,
		Underpaid:     true,
		DepositStatus: domain.DepositStatusPaymentInsufficient,
	}, nil
}

// settle credits the received funds, takes the platform fee, segregates
// escrow/exchange principal into a hold, and advances the deposit. The
// applied tolerance is stamped into the credit description so every
// accepted shortfall is reconstructible from the ledger alone.
func (s *ConfirmationServiceImpl) settle(ctx context.Context, deposit *domain.Deposit, hook ports.PaymentWebhook, tolerance, shortfall decimal.Decimal, log zerolog.Logger) (*ports.ConfirmationOutcome, error) {
	received := hook.ReceivedAmount
	fee := received.Mul(deposit.FeeRate).Round(8)
	excess := decimal.Zero
	if shortfall.IsNegative() {
		excess = shortfall.Neg()
	}
	// Principal is what backs the deposit itself; the overpaid excess is
	// credited separately and stays spendable.
	principal := received.Sub(fee).Sub(excess)
	net := received.Sub(fee)

	txID := hook.TxID
	desc := fmt.Sprintf("deposit %s confirmed: received %s %s (expected %s, tolerance %s)",
		deposit.Kind, received.String(), deposit.Currency, deposit.ExpectedAmount.String(), tolerance.String())
	if _, err := s.holdMgr.CreditAvailable(ctx, deposit.UserID, deposit.Currency, principal, domain.LedgerTypeCredit, desc, &txID); err != nil {
		return nil, err
	}

	if excess.IsPositive() {
		overDesc := fmt.Sprintf("overpayment on deposit %s: expected %s, received %s",
			deposit.ID, deposit.ExpectedAmount.String(), received.String())
		if _, err := s.holdMgr.CreditAvailable(ctx, deposit.UserID, deposit.Currency, excess, domain.LedgerTypeOverpayment, overDesc, &txID); err != nil {
			log.Error().Err(err).Str("excess", excess.String()).Msg("overpayment credit failed, needs manual posting")
		}
	}

	if fee.IsPositive() {
		feeDesc := fmt.Sprintf("platform fee %s on deposit %s", deposit.FeeRate.String(), deposit.ID)
		if _, err := s.holdMgr.CreditAvailable(ctx, platformUserID, deposit.Currency, fee, domain.LedgerTypeFee, feeDesc, &txID); err != nil {
			// Principal is already credited; the fee leg is recoverable from
			// the ledger, so log and continue rather than fail the webhook.
			log.Error().Err(err).Str("fee", fee.String()).Msg("fee credit failed, needs manual posting")
		}
	}

	// Escrow and exchange principal must not be spendable while the trade
	// is open: freeze it under a hold keyed to the deposit.
	if deposit.Kind == domain.DepositKindEscrow || deposit.Kind == domain.DepositKindExchange {
		purpose := domain.HoldPurposeEscrow
		if deposit.Kind == domain.DepositKindExchange {
			purpose = domain.HoldPurposeExchange
		}
		holdRes, err := s.holdMgr.PlaceHold(ctx, ports.PlaceHoldRequest{
			UserID:     deposit.UserID,
			Currency:   deposit.Currency,
			Amount:     principal,
			Purpose:    purpose,
			LinkedType: "deposit",
			LinkedID:   deposit.ID,
		})
		if err != nil {
			cls := classifier.ClassifyEscrowError(err, map[string]string{"deposit_id": deposit.ID.String()})
			metrics.Classifications.WithLabelValues(string(cls.Code), string(cls.Type)).Inc()
			log.Error().Err(err).Str("error_code", string(cls.Code)).Msg("segregation hold failed")
			return nil, err
		}
		if !holdRes.Success {
			return nil, apperror.InternalError(fmt.Errorf("segregation hold failed for deposit %s: %s", deposit.ID, holdRes.Error))
		}
	}

	if err := s.depositRepo.UpdateStatus(ctx, deposit.ID, domain.DepositStatusPaymentConfirmed); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("confirm deposit: %w", err))
	}

	outcomeLabel := "accepted"
	if excess.IsPositive() {
		outcomeLabel = "overpaid"
	}
	metrics.WebhooksTotal.WithLabelValues(hook.Provider, outcomeLabel).Inc()
	log.Info().
		Str("received", received.String()).
		Str("net", net.String()).
		Str("fee", fee.String()).
		Str("excess", excess.String()).
		Str("kind", string(deposit.Kind)).
		Msg("payment confirmed")
	s.notifier.NotifyUser(ctx, deposit.UserID, fmt.Sprintf(
		"Payment of %s %s confirmed.", received.String(), deposit.Currency))

	return &ports.ConfirmationOutcome{
		Accepted:      true,
		Overpaid:      excess.IsPositive(),
		CreditedTotal: net,
		FeeAmount:     fee,
		Excess:        excess,
		DepositStatus: domain.DepositStatusPaymentConfirmed,
	}, nil
}

// toleranceIn converts the configured USD underpayment tolerance into the
// deposit currency. An oracle failure degrades to zero tolerance: strict is
// the safe direction, an exact payment still settles.
func (s *ConfirmationServiceImpl) toleranceIn(ctx context.Context, currency string) decimal.Decimal {
	if s.toleranceUSD.IsZero() || currency == "USD" {
		return s.toleranceUSD
	}
	tol, err := s.rates.Convert(ctx, s.toleranceUSD, "USD", currency)
	if err != nil {
		s.log.Warn().Err(err).Str("currency", currency).Msg("tolerance conversion failed, using zero tolerance")
		return decimal.Zero
	}
	return tol
}

// platformUserID is the internal wallet that accumulates platform fees.
const platformUserID int64 = 1
