package handler

import (
	"strconv"
	"time"

	"github.com/Moxxcompany/lockbay/internal/adapter/http/dto"
	"github.com/Moxxcompany/lockbay/internal/core/domain"
	"github.com/Moxxcompany/lockbay/internal/core/ports"
	"github.com/Moxxcompany/lockbay/pkg/apperror"
	"github.com/Moxxcompany/lockbay/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WalletHandler handles the internal service-to-service API: cashout
// requests, deposit provisioning, and wallet reads.
type WalletHandler struct {
	cashoutSvc   ports.CashoutService
	depositSvc   ports.DepositService
	reportingSvc ports.ReportingService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(cashoutSvc ports.CashoutService, depositSvc ports.DepositService, reportingSvc ports.ReportingService) *WalletHandler {
	return &WalletHandler{
		cashoutSvc:   cashoutSvc,
		depositSvc:   depositSvc,
		reportingSvc: reportingSvc,
	}
}

// RequestCashout handles POST /api/v1/internal/cashouts.
func (h *WalletHandler) RequestCashout(c *gin.Context) {
	var req dto.CashoutCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	cashout, err := h.cashoutSvc.RequestCashout(c.Request.Context(), ports.CashoutRequest{
		UserID:      req.UserID,
		Amount:      amount,
		Currency:    req.Currency,
		Destination: req.Destination,
		Provider:    req.Provider,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toCashoutResponse(cashout))
}

// CreateDeposit handles POST /api/v1/internal/deposits.
func (h *WalletHandler) CreateDeposit(c *gin.Context) {
	var req dto.DepositCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	deposit, err := h.depositSvc.CreateDeposit(c.Request.Context(), ports.CreateDepositRequest{
		UserID:         req.UserID,
		Kind:           domain.DepositKind(req.Kind),
		ExpectedAmount: amount,
		Currency:       req.Currency,
		Provider:       req.Provider,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.DepositResponse{
		ID:             deposit.ID.String(),
		Kind:           string(deposit.Kind),
		UserID:         deposit.UserID,
		ExpectedAmount: deposit.ExpectedAmount.String(),
		Currency:       deposit.Currency,
		Provider:       deposit.Provider,
		PaymentAddress: deposit.PaymentAddress,
		Status:         string(deposit.Status),
		CreatedAt:      deposit.CreatedAt.Format(time.RFC3339),
	})
}

// GetBalance handles GET /api/v1/internal/wallets/:user_id/balance/:currency.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.Validation("invalid user_id"))
		return
	}

	wallet, err := h.reportingSvc.GetBalance(c.Request.Context(), userID, c.Param("currency"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WalletBalanceResponse{
		UserID:        wallet.UserID,
		Currency:      wallet.Currency,
		Available:     wallet.Available.String(),
		Frozen:        wallet.Frozen.String(),
		TradingCredit: wallet.TradingCredit.String(),
	})
}

// ListLedger handles GET /api/v1/internal/wallets/:user_id/ledger.
func (h *WalletHandler) ListLedger(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.Validation("invalid user_id"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.reportingSvc.ListLedger(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.LedgerEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, toLedgerEntryResponse(&entries[i]))
	}
	response.OK(c, dto.LedgerListResponse{Items: items, Total: len(items)})
}

// toCashoutResponse converts domain.Cashout to its DTO.
func toCashoutResponse(c *domain.Cashout) dto.CashoutResponse {
	resp := dto.CashoutResponse{
		ID:            c.ID.String(),
		UserID:        c.UserID,
		Amount:        c.Amount.String(),
		Currency:      c.Currency,
		Provider:      c.Provider,
		Status:        string(c.Status),
		LastErrorCode: c.LastErrorCode,
		RetryCount:    c.RetryCount,
		HoldTxnID:     c.HoldTxnID.String(),
		ExternalTxID:  c.ExternalTxID,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
	if c.FailureType != nil {
		ft := string(*c.FailureType)
		resp.FailureType = &ft
	}
	if c.NextRetryAt != nil {
		next := c.NextRetryAt.Format(time.RFC3339)
		resp.NextRetryAt = &next
	}
	return resp
}

func toLedgerEntryResponse(e *domain.LedgerEntry) dto.LedgerEntryResponse {
	resp := dto.LedgerEntryResponse{
		ID:           e.ID.String(),
		Type:         string(e.Type),
		Amount:       e.Amount.String(),
		Currency:     e.Currency,
		Status:       string(e.Status),
		Description:  e.Description,
		ExternalTxID: e.ExternalTxID,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
	if e.HoldTxnID != nil {
		id := e.HoldTxnID.String()
		resp.HoldTxnID = &id
	}
	return resp
}
