package service

import (
	"context"
	"fmt"
	"strconv"
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

// HoldServiceImpl implements ports.HoldManager. It is the sole mutator of
// wallet balances: every operation locks the wallet row, performs its
// idempotency lookup inside the lock, and writes the audit ledger entry in
// the same database transaction, so a concurrent duplicate can never race
// past a not-yet-visible entry.
type HoldServiceImpl struct {
	walletRepo    ports.WalletRepository
	holdRepo      ports.HoldRepository
	ledgerRepo    ports.LedgerRepository
	adminVerifier ports.AdminVerifier
	auditSvc      ports.AuditService
	transactor    ports.DBTransactor
	log           zerolog.Logger
}

// NewHoldService creates a new HoldServiceImpl.
func NewHoldService(
	walletRepo ports.WalletRepository,
	holdRepo ports.HoldRepository,
	ledgerRepo ports.LedgerRepository,
	adminVerifier ports.AdminVerifier,
	auditSvc ports.AuditService,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *HoldServiceImpl {
	return &HoldServiceImpl{
		walletRepo:    walletRepo,
		holdRepo:      holdRepo,
		ledgerRepo:    ledgerRepo,
		adminVerifier: adminVerifier,
		auditSvc:      auditSvc,
		transactor:    transactor,
		log:           log,
	}
}

// PlaceHold atomically moves funds from available to frozen and records
// the hold. Idempotent on (purpose, linked_id): re-invocation returns the
// existing hold without touching balances.
func (s *HoldServiceImpl) PlaceHold(ctx context.Context, req ports.PlaceHoldRequest) (*ports.HoldResult, error) {
	if !req.Amount.IsPositive() {
		return &ports.HoldResult{Success: false, Error: apperror.ErrInvalidAmount().Message}, nil
	}

	// Fast-path idempotency check before taking the lock.
	if existing, err := s.holdRepo.GetByLinked(ctx, req.Purpose, req.LinkedID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("idempotency pre-check: %w", err))
	} else if existing != nil {
		metrics.IdempotentHits.WithLabelValues("place").Inc()
		return priorHoldResult(existing), nil
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetForUpdate(ctx, dbTx, req.UserID, req.Currency)
	if err != nil {
		return nil, apperror.ErrLockTimeout(fmt.Errorf("lock wallet: %w", err))
	}

	// Authoritative idempotency check now that the wallet is locked: a
	// concurrent duplicate committed its hold before releasing this lock.
	if existing, err := s.holdRepo.GetByLinked(ctx, req.Purpose, req.LinkedID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("idempotency check: %w", err))
	} else if existing != nil {
		metrics.IdempotentHits.WithLabelValues("place").Inc()
		return priorHoldResult(existing), nil
	}

	if !wallet.CanCover(req.Amount) {
		metrics.HoldsTotal.WithLabelValues("place", "insufficient").Inc()
		return &ports.HoldResult{Success: false, Error: apperror.ErrInsufficientBalance().Message}, nil
	}

	wallet.Available = wallet.Available.Sub(req.Amount)
	wallet.Frozen = wallet.Frozen.Add(req.Amount)
	if !wallet.CheckInvariants() {
		return nil, apperror.InternalError(fmt.Errorf("balance invariant violated placing hold for user %d", req.UserID))
	}

	if err := s.walletRepo.UpdateBalances(ctx, dbTx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balances: %w", err))
	}

	now := time.Now().UTC()
	holdTxnID := uuid.New()
	hold := &domain.Hold{
		ID:         uuid.New(),
		UserID:     req.UserID,
		Currency:   req.Currency,
		Amount:     req.Amount,
		Purpose:    req.Purpose,
		LinkedType: req.LinkedType,
		LinkedID:   req.LinkedID,
		Status:     domain.HoldStatusHeld,
		HoldTxnID:  holdTxnID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.holdRepo.Create(ctx, dbTx, hold); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create hold: %w", err))
	}

	linkedType := req.LinkedType
	entry := &domain.LedgerEntry{
		ID:          uuid.New(),
		UserID:      req.UserID,
		Type:        domain.LedgerTypeHold,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Status:      domain.LedgerStatusCompleted,
		Description: fmt.Sprintf("hold %s for %s %s", req.Purpose, req.Amount.String(), req.Currency),
		HoldTxnID:   &holdTxnID,
		LinkedType:  &linkedType,
		LinkedID:    &req.LinkedID,
		CreatedAt:   now,
	}
	if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create hold ledger entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	metrics.HoldsTotal.WithLabelValues("place", "success").Inc()
	s.log.Info().
		Int64("user_id", req.UserID).
		Str("currency", req.Currency).
		Str("amount", req.Amount.String()).
		Str("hold_txn_id", holdTxnID.String()).
		Str("purpose", string(req.Purpose)).
		Msg("hold placed")

	return &ports.HoldResult{
		Success:      true,
		HoldID:       hold.ID,
		HoldTxnID:    holdTxnID,
		FrozenAmount: req.Amount,
	}, nil
}

// ConsumeHold finalizes a hold after a successful external send: the
// frozen pool shrinks and nothing is re-credited, because the funds left
// the system. Re-invocation with the same hold_txn_id is detected inside
// the wallet lock and returns the prior result without a second mutation.
func (s *HoldServiceImpl) ConsumeHold(ctx context.Context, req ports.ConsumeHoldRequest) (*ports.ConsumeResult, error) {
	if !req.Amount.IsPositive() {
		return &ports.ConsumeResult{Success: false, Error: apperror.ErrInvalidAmount().Message}, nil
	}

	hold, err := s.holdRepo.GetByHoldTxnID(ctx, req.HoldTxnID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load hold: %w", err))
	}
	if hold == nil {
		return &ports.ConsumeResult{Success: false, Error: apperror.ErrHoldNotFound().Message}, nil
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetForUpdate(ctx, dbTx, req.UserID, hold.Currency)
	if err != nil {
		return nil, apperror.ErrLockTimeout(fmt.Errorf("lock wallet: %w", err))
	}

	if prior, err := s.ledgerRepo.GetByTypeAndHoldTxn(ctx, dbTx, domain.LedgerTypeConsume, req.HoldTxnID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("consume idempotency check: %w", err))
	} else if prior != nil {
		metrics.IdempotentHits.WithLabelValues("consume").Inc()
		s.log.Info().
			Str("hold_txn_id", req.HoldTxnID.String()).
			Str("ledger_txn_id", prior.ID.String()).
			Msg("duplicate consume detected, returning prior result")
		return &ports.ConsumeResult{Success: true, Idempotent: true, LedgerTxnID: prior.ID}, nil
	}

	hold, err = s.holdRepo.GetByHoldTxnIDForUpdate(ctx, dbTx, req.HoldTxnID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock hold: %w", err))
	}
	if hold == nil {
		return &ports.ConsumeResult{Success: false, Error: apperror.ErrHoldNotFound().Message}, nil
	}
	if !hold.CanTransition(domain.HoldStatusConsumedSent) {
		return &ports.ConsumeResult{
			Success: false,
			Error:   apperror.ErrInvalidHoldTransition(string(hold.Status), string(domain.HoldStatusConsumedSent)).Message,
		}, nil
	}

	if wallet.Frozen.Add(domain.BalanceTolerance).LessThan(req.Amount) {
		metrics.HoldsTotal.WithLabelValues("consume", "insufficient_frozen").Inc()
		return &ports.ConsumeResult{Success: false, Error: apperror.ErrInsufficientFrozen().Message}, nil
	}

	wallet.Frozen = wallet.Frozen.Sub(req.Amount)
	if wallet.Frozen.IsNegative() {
		// Sub-tolerance drift only; clamp rather than persist a negative pool.
		wallet.Frozen = decimal.Zero
	}
	if !wallet.CheckInvariants() {
		return nil, apperror.InternalError(fmt.Errorf("balance invariant violated consuming hold %s", req.HoldTxnID))
	}

	if err := s.walletRepo.UpdateBalances(ctx, dbTx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balances: %w", err))
	}
	if err := s.holdRepo.UpdateStatus(ctx, dbTx, hold.ID, domain.HoldStatusConsumedSent); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update hold status: %w", err))
	}

	now := time.Now().UTC()
	holdTxnID := req.HoldTxnID
	entry := &domain.LedgerEntry{
		ID:          uuid.New(),
		UserID:      req.UserID,
		Type:        domain.LedgerTypeConsume,
		Amount:      req.Amount,
		Currency:    hold.Currency,
		Status:      domain.LedgerStatusCompleted,
		Description: fmt.Sprintf("consume hold: %s %s sent externally", req.Amount.String(), hold.Currency),
		HoldTxnID:   &holdTxnID,
		LinkedID:    &req.LinkedID,
		CreatedAt:   now,
	}
	if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create consume ledger entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	metrics.HoldsTotal.WithLabelValues("consume", "success").Inc()
	s.log.Info().
		Int64("user_id", req.UserID).
		Str("hold_txn_id", req.HoldTxnID.String()).
		Str("amount", req.Amount.String()).
		Msg("hold consumed, funds sent externally")

	return &ports.ConsumeResult{Success: true, LedgerTxnID: entry.ID}, nil
}

// ReleaseHold returns frozen funds to the available pool. Admin-only: the
// capability is re-verified before any read or write, and a failed check
// is a hard security rejection with provably zero state change.
func (s *HoldServiceImpl) ReleaseHold(ctx context.Context, admin domain.AdminActor, req ports.ReleaseHoldRequest) (*ports.ReleaseResult, error) {
	ok, err := s.adminVerifier.IsAdminSecure(ctx, admin.AdminID)
	if err != nil {
		return nil, s.verifierError(ctx, admin.AdminID, req.HoldTxnID.String(), err)
	}
	if !ok {
		metrics.SecurityRejections.Inc()
		s.log.Error().
			Int64("admin_id", admin.AdminID).
			Str("hold_txn_id", req.HoldTxnID.String()).
			Msg("SECURITY: release attempted by unverified admin")
		s.recordAudit(ctx, &admin.AdminID, domain.AuditActionSecurityReject, req.HoldTxnID.String(), "release rejected: not an authorized admin")
		return &ports.ReleaseResult{Success: false, SecurityViolation: true, Error: apperror.ErrSecurityViolation().Message}, nil
	}

	actorTag := fmt.Sprintf("[admin:%d]", admin.AdminID)
	res, err := s.release(ctx, req, actorTag)
	if err == nil && res.Success && !res.Idempotent {
		action := domain.AuditActionReleaseHold
		if req.Cancel {
			action = domain.AuditActionCancelHold
		}
		s.recordAudit(ctx, &admin.AdminID, action, req.HoldTxnID.String(), req.Reason)
	}
	return res, err
}

// ReleaseHoldInternal is the automated-recovery variant. It is never
// reachable from user-facing code paths; the system context tag is
// mandatory and lands in the ledger description and audit trail.
func (s *HoldServiceImpl) ReleaseHoldInternal(ctx context.Context, sys domain.SystemActor, req ports.ReleaseHoldRequest) (*ports.ReleaseResult, error) {
	if sys.Context == "" {
		metrics.SecurityRejections.Inc()
		return &ports.ReleaseResult{Success: false, SecurityViolation: true, Error: apperror.ErrMissingSystemContext().Message}, nil
	}

	actorTag := fmt.Sprintf("[system:%s]", sys.Context)
	res, err := s.release(ctx, req, actorTag)
	if err == nil && res.Success && !res.Idempotent {
		s.recordAudit(ctx, nil, domain.AuditActionSystemRelease, req.HoldTxnID.String(), sys.Context)
	}
	return res, err
}

func (s *HoldServiceImpl) release(ctx context.Context, req ports.ReleaseHoldRequest, actorTag string) (*ports.ReleaseResult, error) {
	if !req.Amount.IsPositive() {
		return &ports.ReleaseResult{Success: false, Error: apperror.ErrInvalidAmount().Message}, nil
	}

	hold, err := s.holdRepo.GetByHoldTxnID(ctx, req.HoldTxnID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load hold: %w", err))
	}
	if hold == nil {
		return &ports.ReleaseResult{Success: false, Error: apperror.ErrHoldNotFound().Message}, nil
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetForUpdate(ctx, dbTx, req.UserID, hold.Currency)
	if err != nil {
		return nil, apperror.ErrLockTimeout(fmt.Errorf("lock wallet: %w", err))
	}

	if prior, err := s.ledgerRepo.GetByTypeAndHoldTxn(ctx, dbTx, domain.LedgerTypeRelease, req.HoldTxnID); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("release idempotency check: %w", err))
	} else if prior != nil {
		metrics.IdempotentHits.WithLabelValues("release").Inc()
		return &ports.ReleaseResult{Success: true, Idempotent: true, LedgerTxnID: prior.ID}, nil
	}

	hold, err = s.holdRepo.GetByHoldTxnIDForUpdate(ctx, dbTx, req.HoldTxnID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock hold: %w", err))
	}
	if hold == nil {
		return &ports.ReleaseResult{Success: false, Error: apperror.ErrHoldNotFound().Message}, nil
	}

	target := domain.HoldStatusRefundApproved
	if req.Cancel {
		target = domain.HoldStatusCancelledHeld
	}
	if hold.FundsLeftSystem() {
		return &ports.ReleaseResult{Success: false, Error: apperror.ErrHoldAlreadyConsumed().Message}, nil
	}
	if !hold.CanTransition(target) {
		return &ports.ReleaseResult{
			Success: false,
			Error:   apperror.ErrInvalidHoldTransition(string(hold.Status), string(target)).Message,
		}, nil
	}

	if wallet.Frozen.Add(domain.BalanceTolerance).LessThan(req.Amount) {
		return &ports.ReleaseResult{Success: false, Error: apperror.ErrInsufficientFrozen().Message}, nil
	}

	wallet.Frozen = wallet.Frozen.Sub(req.Amount)
	wallet.Available = wallet.Available.Add(req.Amount)
	if !wallet.CheckInvariants() {
		return nil, apperror.InternalError(fmt.Errorf("balance invariant violated releasing hold %s", req.HoldTxnID))
	}

	if err := s.walletRepo.UpdateBalances(ctx, dbTx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balances: %w", err))
	}
	if err := s.holdRepo.UpdateStatus(ctx, dbTx, hold.ID, target); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update hold status: %w", err))
	}

	now := time.Now().UTC()
	holdTxnID := req.HoldTxnID
	entry := &domain.LedgerEntry{
		ID:          uuid.New(),
		UserID:      req.UserID,
		Type:        domain.LedgerTypeRelease,
		Amount:      req.Amount,
		Currency:    hold.Currency,
		Status:      domain.LedgerStatusCompleted,
		Description: fmt.Sprintf("release hold %s: %s", actorTag, req.Reason),
		HoldTxnID:   &holdTxnID,
		LinkedID:    &req.LinkedID,
		CreatedAt:   now,
	}
	if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create release ledger entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	metrics.HoldsTotal.WithLabelValues("release", "success").Inc()
	s.log.Info().
		Int64("user_id", req.UserID).
		Str("hold_txn_id", req.HoldTxnID.String()).
		Str("amount", req.Amount.String()).
		Str("actor", actorTag).
		Str("target_status", string(target)).
		Msg("hold released, funds returned to available")

	return &ports.ReleaseResult{Success: true, LedgerTxnID: entry.ID}, nil
}

// MarkHoldFailed moves a hold to FAILED_HELD after terminal send failure.
// Funds stay frozen for admin review; nothing is credited back here.
func (s *HoldServiceImpl) MarkHoldFailed(ctx context.Context, holdTxnID uuid.UUID, reason string) error {
	return s.transition(ctx, holdTxnID, domain.HoldStatusFailedHeld, reason)
}

// MarkHoldDisputed moves a hold into dispute. Admin-gated.
func (s *HoldServiceImpl) MarkHoldDisputed(ctx context.Context, admin domain.AdminActor, holdTxnID uuid.UUID, reason string) error {
	ok, err := s.adminVerifier.IsAdminSecure(ctx, admin.AdminID)
	if err != nil {
		return s.verifierError(ctx, admin.AdminID, holdTxnID.String(), err)
	}
	if !ok {
		metrics.SecurityRejections.Inc()
		s.recordAudit(ctx, &admin.AdminID, domain.AuditActionSecurityReject, holdTxnID.String(), "dispute rejected: not an authorized admin")
		return apperror.ErrSecurityViolation()
	}
	if err := s.transition(ctx, holdTxnID, domain.HoldStatusDisputedHeld, reason); err != nil {
		return err
	}
	s.recordAudit(ctx, &admin.AdminID, domain.AuditActionDisputeHold, holdTxnID.String(), reason)
	return nil
}

// verifierError maps an admin verifier failure to a response error. A
// failure that classifies as a security violation is rejected and audited
// like any other unauthorized attempt; anything else is an infrastructure
// fault the caller may retry.
func (s *HoldServiceImpl) verifierError(ctx context.Context, adminID int64, subject string, err error) error {
	cls := classifier.ClassifyAdminError(err, map[string]string{"admin_id": strconv.FormatInt(adminID, 10)})
	if cls.Code == classifier.CodeSecurityViolation {
		metrics.SecurityRejections.Inc()
		s.log.Error().Err(err).
			Int64("admin_id", adminID).
			Str("subject", subject).
			Msg("SECURITY: admin verifier refused actor")
		s.recordAudit(ctx, &adminID, domain.AuditActionSecurityReject, subject, "verifier refused admin: "+err.Error())
		return apperror.ErrSecurityViolation()
	}
	return apperror.InternalError(fmt.Errorf("admin verification: %w", err))
}

func (s *HoldServiceImpl) transition(ctx context.Context, holdTxnID uuid.UUID, target domain.HoldStatus, reason string) error {
	hold, err := s.holdRepo.GetByHoldTxnID(ctx, holdTxnID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load hold: %w", err))
	}
	if hold == nil {
		return apperror.ErrHoldNotFound()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Hold rows are only mutated under the wallet lock, even when no
	// balance moves: it serializes against concurrent consume/release.
	if _, err := s.walletRepo.GetForUpdate(ctx, dbTx, hold.UserID, hold.Currency); err != nil {
		return apperror.ErrLockTimeout(fmt.Errorf("lock wallet: %w", err))
	}

	hold, err = s.holdRepo.GetByHoldTxnIDForUpdate(ctx, dbTx, holdTxnID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock hold: %w", err))
	}
	if hold == nil {
		return apperror.ErrHoldNotFound()
	}
	if hold.Status == target {
		return nil // already there, nothing to do
	}
	if !hold.CanTransition(target) {
		return apperror.ErrInvalidHoldTransition(string(hold.Status), string(target))
	}

	if err := s.holdRepo.UpdateStatus(ctx, dbTx, hold.ID, target); err != nil {
		return apperror.InternalError(fmt.Errorf("update hold status: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Warn().
		Str("hold_txn_id", holdTxnID.String()).
		Str("from", string(hold.Status)).
		Str("to", string(target)).
		Str("reason", reason).
		Msg("hold transitioned, funds remain frozen")
	return nil
}

// CreditAvailable credits the available pool and appends the matching
// ledger entry in one transaction. Used for confirmed deposits and
// overpayment credits.
func (s *HoldServiceImpl) CreditAvailable(ctx context.Context, userID int64, currency string, amount decimal.Decimal, entryType domain.LedgerEntryType, description string, externalTxID *string) (*domain.LedgerEntry, error) {
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetForUpdate(ctx, dbTx, userID, currency)
	if err != nil {
		return nil, apperror.ErrLockTimeout(fmt.Errorf("lock wallet: %w", err))
	}

	wallet.Available = wallet.Available.Add(amount)
	if err := s.walletRepo.UpdateBalances(ctx, dbTx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balances: %w", err))
	}

	entry := &domain.LedgerEntry{
		ID:           uuid.New(),
		UserID:       userID,
		Type:         entryType,
		Amount:       amount,
		Currency:     currency,
		Status:       domain.LedgerStatusCompleted,
		Description:  description,
		ExternalTxID: externalTxID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.ledgerRepo.Create(ctx, dbTx, entry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create credit ledger entry: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Int64("user_id", userID).
		Str("currency", currency).
		Str("amount", amount.String()).
		Str("type", string(entryType)).
		Msg("available balance credited")
	return entry, nil
}

func (s *HoldServiceImpl) recordAudit(ctx context.Context, actorID *int64, action domain.AuditAction, resourceID, details string) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Record(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		ActorID:      actorID,
		Action:       action,
		ResourceType: "hold",
		ResourceID:   resourceID,
		Details:      details,
		CreatedAt:    time.Now().UTC(),
	})
}

func priorHoldResult(h *domain.Hold) *ports.HoldResult {
	return &ports.HoldResult{
		Success:      true,
		HoldID:       h.ID,
		HoldTxnID:    h.HoldTxnID,
		FrozenAmount: h.Amount,
		Idempotent:   true,
	}
}
