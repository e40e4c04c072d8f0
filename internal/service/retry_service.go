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
)

// RetryServiceImpl is the single decision point for failed sends: classify,
// then either schedule a retry (persisted, so a restart loses nothing) or
// finalize into admin review. It never releases funds; FAILED holds stay
// frozen until an admin acts.
type RetryServiceImpl struct {
	cashoutRepo ports.CashoutRepository
	holdMgr     ports.HoldManager
	notifier    ports.Notifier
	sender      ports.CashoutService
	batchSize   int
	log         zerolog.Logger
}

// NewRetryService creates a new RetryServiceImpl. The sender is wired
// afterwards via SetSender because the cashout service and the orchestrator
// reference each other.
func NewRetryService(
	cashoutRepo ports.CashoutRepository,
	holdMgr ports.HoldManager,
	notifier ports.Notifier,
	batchSize int,
	log zerolog.Logger,
) *RetryServiceImpl {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &RetryServiceImpl{
		cashoutRepo: cashoutRepo,
		holdMgr:     holdMgr,
		notifier:    notifier,
		batchSize:   batchSize,
		log:         log,
	}
}

// SetSender injects the cashout service used by Sweep to re-attempt sends.
func (s *RetryServiceImpl) SetSender(sender ports.CashoutService) {
	s.sender = sender
}

// HandleFailure classifies the cause and persists the resulting decision.
// Technical failures inside the retry budget get a next_retry_at; user
// failures and exhausted budgets finalize to FAILED with the hold parked in
// FAILED_HELD for admin review.
func (s *RetryServiceImpl) HandleFailure(ctx context.Context, cashout *domain.Cashout, cause error, opCtx map[string]string) error {
	cls := classifier.ClassifyOperation(cause, opCtx)
	metrics.Classifications.WithLabelValues(string(cls.Code), string(cls.Type)).Inc()

	code := string(cls.Code)
	now := time.Now().UTC()
	cashout.Status = domain.CashoutStatusFailed
	cashout.FailureType = &cls.Type
	cashout.LastErrorCode = &code
	cashout.UpdatedAt = now

	if cls.Type == domain.FailureTypeTechnical && cashout.TechnicalFailureSince == nil {
		ts := now
		cashout.TechnicalFailureSince = &ts
	}

	if cls.Type == domain.FailureTypeTechnical && classifier.ShouldRetry(cls.Code, cashout.RetryCount) {
		delay := classifier.DelayForAttempt(cls.Code, cashout.RetryCount)
		next := now.Add(delay)
		cashout.RetryCount++
		cashout.NextRetryAt = &next
		if err := s.cashoutRepo.Update(ctx, cashout); err != nil {
			return apperror.InternalError(fmt.Errorf("persist retry schedule: %w", err))
		}

		metrics.RetriesScheduled.WithLabelValues(code).Inc()
		s.log.Warn().Err(cause).
			Str("cashout_id", cashout.ID.String()).
			Str("error_code", code).
			Int("retry_count", cashout.RetryCount).
			Dur("delay", delay).
			Time("next_retry_at", next).
			Msg("send failed, retry scheduled")
		return nil
	}

	// Terminal: user failure, non-retryable code, or budget exhausted.
	cashout.NextRetryAt = nil
	if err := s.cashoutRepo.Update(ctx, cashout); err != nil {
		return apperror.InternalError(fmt.Errorf("persist terminal failure: %w", err))
	}

	reason := fmt.Sprintf("send failed terminally (%s): %v", code, cause)
	if err := s.holdMgr.MarkHoldFailed(ctx, cashout.HoldTxnID, reason); err != nil {
		s.log.Error().Err(err).
			Str("cashout_id", cashout.ID.String()).
			Str("hold_txn_id", cashout.HoldTxnID.String()).
			Msg("failed to park hold in FAILED_HELD")
	}

	if cls.Type == domain.FailureTypeTechnical {
		metrics.RetriesExhausted.Inc()
		s.notifier.NotifyAdmins(ctx, fmt.Sprintf(
			"cashout %s exhausted retries (%s after %d attempts); funds frozen awaiting review",
			cashout.ID, code, cashout.RetryCount))
	} else {
		s.notifier.NotifyUser(ctx, cashout.UserID, fmt.Sprintf(
			"Your cashout of %s %s could not be completed (%s). Support has been notified.",
			cashout.Amount.String(), cashout.Currency, code))
		s.notifier.NotifyAdmins(ctx, fmt.Sprintf(
			"cashout %s failed with user error %s; funds frozen awaiting review", cashout.ID, code))
	}

	s.log.Error().Err(cause).
		Str("cashout_id", cashout.ID.String()).
		Str("error_code", code).
		Str("failure_type", string(cls.Type)).
		Int("retry_count", cashout.RetryCount).
		Msg("send failed terminally, hold parked for admin review")
	return nil
}

// Sweep re-attempts every due technical failure, one batch per run. The
// repository leases the batch on selection, so a concurrent sweeper cannot
// pick up the same rows while the attempts here are still in flight.
func (s *RetryServiceImpl) Sweep(ctx context.Context) (int, error) {
	start := time.Now()
	metrics.SweepRuns.Inc()
	defer func() { metrics.SweepDuration.Observe(time.Since(start).Seconds()) }()

	due, err := s.cashoutRepo.ListRetryDue(ctx, time.Now().UTC(), s.batchSize)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("list retry due: %w", err))
	}
	if len(due) == 0 {
		return 0, nil
	}

	attempted := 0
	for i := range due {
		c := &due[i]
		if err := s.sender.AttemptSend(ctx, c.ID); err != nil {
			// AttemptSend routes its own failures back through HandleFailure;
			// an error here is already persisted, so just log and continue.
			s.log.Warn().Err(err).
				Str("cashout_id", c.ID.String()).
				Msg("sweep attempt did not complete")
		}
		attempted++
		if ctx.Err() != nil {
			break
		}
	}

	s.log.Info().
		Int("due", len(due)).
		Int("attempted", attempted).
		Dur("took", time.Since(start)).
		Msg("retry sweep finished")
	return attempted, nil
}
