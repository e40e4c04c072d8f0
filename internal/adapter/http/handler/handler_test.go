package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Moxxcompany/lockbay/internal/adapter/http/dto"
	"github.com/Moxxcompany/lockbay/internal/adapter/http/middleware"
	"github.com/Moxxcompany/lockbay/internal/core/domain"
	"github.com/Moxxcompany/lockbay/internal/core/ports"
	"github.com/Moxxcompany/lockbay/internal/core/ports/mocks"
	"github.com/Moxxcompany/lockbay/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(t *testing.T, w *httptest.ResponseRecorder, body interface{}) *gin.Context {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data envelope: %s", w.Body.String())
	return data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	code, _ := resp["error_code"].(string)
	return code
}

// --- Webhook Handler Tests ---

func TestWebhookReceive_Settled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConf := mocks.NewMockConfirmationProcessor(ctrl)
	h := NewWebhookHandler(mockConf)

	mockConf.EXPECT().ProcessConfirmation(gomock.Any(), ports.PaymentWebhook{
		Provider:       "blockbee",
		TxID:           "tx-abc",
		ReceivedAmount: decimal.RequireFromString("100.5"),
		Currency:       "LTC",
		Confirmations:  3,
		PaymentAddress: "ltc1-addr",
	}).Return(&ports.ConfirmationOutcome{
		Accepted:      true,
		DepositStatus: domain.DepositStatusPaymentConfirmed,
	}, nil)

	w := httptest.NewRecorder()
	c := postJSON(t, w, dto.ProviderWebhook{
		TxID:           "tx-abc",
		Amount:         "100.5",
		Currency:       "LTC",
		Confirmations:  3,
		PaymentAddress: "ltc1-addr",
	})
	c.Params = gin.Params{{Key: "provider", Value: "blockbee"}}

	h.Receive(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, true, data["accepted"])
	assert.Equal(t, "PAYMENT_CONFIRMED", data["status"])
}

func TestWebhookReceive_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConf := mocks.NewMockConfirmationProcessor(ctrl)
	h := NewWebhookHandler(mockConf)

	mockConf.EXPECT().ProcessConfirmation(gomock.Any(), gomock.Any()).Return(&ports.ConfirmationOutcome{
		Duplicate:     true,
		DepositStatus: domain.DepositStatusPaymentConfirmed,
	}, nil)

	w := httptest.NewRecorder()
	c := postJSON(t, w, dto.ProviderWebhook{
		TxID:           "tx-abc",
		Amount:         "100.5",
		Currency:       "LTC",
		Confirmations:  3,
		PaymentAddress: "ltc1-addr",
	})
	c.Params = gin.Params{{Key: "provider", Value: "blockbee"}}

	h.Receive(c)

	// Duplicates still ack with 200 so the provider stops redelivering.
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, false, data["accepted"])
	assert.Equal(t, true, data["duplicate"])
}

func TestWebhookReceive_PendingConfirmations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConf := mocks.NewMockConfirmationProcessor(ctrl)
	h := NewWebhookHandler(mockConf)

	mockConf.EXPECT().ProcessConfirmation(gomock.Any(), gomock.Any()).Return(&ports.ConfirmationOutcome{
		DepositStatus: domain.DepositStatusPendingDeposit,
	}, nil)

	w := httptest.NewRecorder()
	c := postJSON(t, w, dto.ProviderWebhook{
		TxID:           "tx-abc",
		Amount:         "100.5",
		Currency:       "LTC",
		Confirmations:  0,
		PaymentAddress: "ltc1-addr",
	})
	c.Params = gin.Params{{Key: "provider", Value: "blockbee"}}

	h.Receive(c)

	assert.Equal(t, http.StatusAccepted, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "PENDING_DEPOSIT", data["status"])
}

func TestWebhookReceive_BindingError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewWebhookHandler(mocks.NewMockConfirmationProcessor(ctrl))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "provider", Value: "blockbee"}}

	h.Receive(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "WAL_004", decodeError(t, w))
}

func TestWebhookReceive_UnknownDeposit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConf := mocks.NewMockConfirmationProcessor(ctrl)
	h := NewWebhookHandler(mockConf)

	mockConf.EXPECT().ProcessConfirmation(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrDepositNotFound())

	w := httptest.NewRecorder()
	c := postJSON(t, w, dto.ProviderWebhook{
		TxID:           "tx-unknown",
		Amount:         "1",
		Currency:       "LTC",
		Confirmations:  1,
		PaymentAddress: "ltc1-nobody",
	})
	c.Params = gin.Params{{Key: "provider", Value: "blockbee"}}

	h.Receive(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PAY_003", decodeError(t, w))
}

// --- Admin Handler Tests ---

func newAdminHandler(ctrl *gomock.Controller) (*AdminHandler, *mocks.MockAdminVerifier, *mocks.MockHoldManager, *mocks.MockReportingService) {
	adminSvc := mocks.NewMockAdminVerifier(ctrl)
	holdMgr := mocks.NewMockHoldManager(ctrl)
	reporting := mocks.NewMockReportingService(ctrl)
	return NewAdminHandler(adminSvc, holdMgr, reporting), adminSvc, holdMgr, reporting
}

func TestAdminLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, adminSvc, _, _ := newAdminHandler(ctrl)

	expiry := time.Now().Add(12 * time.Hour)
	adminSvc.EXPECT().Login(gomock.Any(), "ops", "correct-horse").Return("jwt-token-123", expiry, nil)

	w := httptest.NewRecorder()
	c := postJSON(t, w, dto.LoginRequest{Username: "ops", Password: "correct-horse"})

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "jwt-token-123", data["token"])
	assert.Equal(t, float64(expiry.Unix()), data["expiry"])
}

func TestAdminLogin_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, adminSvc, _, _ := newAdminHandler(ctrl)

	adminSvc.EXPECT().Login(gomock.Any(), "ops", "wrong").Return("", time.Time{}, apperror.ErrInvalidCredentials())

	w := httptest.NewRecorder()
	c := postJSON(t, w, dto.LoginRequest{Username: "ops", Password: "wrong"})

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "SEC_002", decodeError(t, w))
}

func TestAdminLogin_BindingError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _, _ := newAdminHandler(ctrl)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func releaseBody() dto.ReleaseHoldRequest {
	return dto.ReleaseHoldRequest{
		UserID:    42,
		Amount:    "100.5",
		HoldTxnID: uuid.New().String(),
		LinkedID:  uuid.New().String(),
		Reason:    "provider send failed permanently",
		Cancel:    true,
	}
}

func TestReleaseHold_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, holdMgr, _ := newAdminHandler(ctrl)

	body := releaseBody()
	actor := domain.AdminActor{AdminID: 7, Username: "ops"}
	ledgerTxnID := uuid.New()

	holdMgr.EXPECT().ReleaseHold(gomock.Any(), actor, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.AdminActor, req ports.ReleaseHoldRequest) (*ports.ReleaseResult, error) {
			assert.Equal(t, int64(42), req.UserID)
			assert.True(t, req.Amount.Equal(decimal.RequireFromString("100.5")))
			assert.Equal(t, body.HoldTxnID, req.HoldTxnID.String())
			assert.Equal(t, body.LinkedID, req.LinkedID.String())
			assert.True(t, req.Cancel)
			return &ports.ReleaseResult{Success: true, LedgerTxnID: ledgerTxnID}, nil
		})

	w := httptest.NewRecorder()
	c := postJSON(t, w, body)
	c.Set(middleware.CtxAdminKey, actor)

	h.ReleaseHold(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, ledgerTxnID.String(), data["ledger_txn_id"])
}

func TestReleaseHold_NoActorInContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _, _ := newAdminHandler(ctrl)

	w := httptest.NewRecorder()
	c := postJSON(t, w, releaseBody())

	h.ReleaseHold(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "SEC_003", decodeError(t, w))
}

func TestReleaseHold_SecurityViolation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, holdMgr, _ := newAdminHandler(ctrl)

	holdMgr.EXPECT().ReleaseHold(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ports.ReleaseResult{SecurityViolation: true}, nil)

	w := httptest.NewRecorder()
	c := postJSON(t, w, releaseBody())
	c.Set(middleware.CtxAdminKey, domain.AdminActor{AdminID: 7, Username: "ops"})

	h.ReleaseHold(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "SEC_001", decodeError(t, w))
}

func TestReleaseHold_StateConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, holdMgr, _ := newAdminHandler(ctrl)

	holdMgr.EXPECT().ReleaseHold(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ports.ReleaseResult{Success: false, Error: "hold already consumed"}, nil)

	w := httptest.NewRecorder()
	c := postJSON(t, w, releaseBody())
	c.Set(middleware.CtxAdminKey, domain.AdminActor{AdminID: 7, Username: "ops"})

	h.ReleaseHold(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "HOLD_002", decodeError(t, w))
}

func TestReleaseHold_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, holdMgr, _ := newAdminHandler(ctrl)

	holdMgr.EXPECT().ReleaseHold(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrHoldNotFound())

	w := httptest.NewRecorder()
	c := postJSON(t, w, releaseBody())
	c.Set(middleware.CtxAdminKey, domain.AdminActor{AdminID: 7, Username: "ops"})

	h.ReleaseHold(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "HOLD_001", decodeError(t, w))
}

func TestDisputeHold_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, holdMgr, _ := newAdminHandler(ctrl)

	actor := domain.AdminActor{AdminID: 7, Username: "ops"}
	holdTxnID := uuid.New()
	holdMgr.EXPECT().MarkHoldDisputed(gomock.Any(), actor, holdTxnID, "buyer claims non-delivery").Return(nil)

	w := httptest.NewRecorder()
	c := postJSON(t, w, dto.DisputeHoldRequest{
		HoldTxnID: holdTxnID.String(),
		Reason:    "buyer claims non-delivery",
	})
	c.Set(middleware.CtxAdminKey, actor)

	h.DisputeHold(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, true, data["success"])
}

func TestDisputeHold_InvalidTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, holdMgr, _ := newAdminHandler(ctrl)

	holdMgr.EXPECT().MarkHoldDisputed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(apperror.ErrInvalidHoldTransition("CONSUMED_SENT", "DISPUTED_HELD"))

	w := httptest.NewRecorder()
	c := postJSON(t, w, dto.DisputeHoldRequest{
		HoldTxnID: uuid.New().String(),
		Reason:    "buyer claims non-delivery",
	})
	c.Set(middleware.CtxAdminKey, domain.AdminActor{AdminID: 7, Username: "ops"})

	h.DisputeHold(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "HOLD_002", decodeError(t, w))
}

func TestListReviewQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _, reporting := newAdminHandler(ctrl)

	ft := domain.FailureTypeUser
	code := "INSUFFICIENT_FUNDS"
	reporting.EXPECT().ListAwaitingReview(gomock.Any(), 100).Return([]domain.Cashout{
		{
			ID:            uuid.New(),
			UserID:        42,
			Amount:        decimal.RequireFromString("100.5"),
			Currency:      "USD",
			Provider:      "kraken",
			Status:        domain.CashoutStatusFailed,
			FailureType:   &ft,
			LastErrorCode: &code,
			RetryCount:    1,
			HoldTxnID:     uuid.New(),
			CreatedAt:     time.Now(),
		},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/admin/review", nil)

	h.ListReviewQueue(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(1), data["total"])
	items := data["items"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, "FAILED", first["status"])
	assert.Equal(t, "USER", first["failure_type"])
	assert.Equal(t, "INSUFFICIENT_FUNDS", first["last_error_code"])
}

// --- Wallet Handler Tests ---

func newWalletHandler(ctrl *gomock.Controller) (*WalletHandler, *mocks.MockCashoutService, *mocks.MockDepositService, *mocks.MockReportingService) {
	cashoutSvc := mocks.NewMockCashoutService(ctrl)
	depositSvc := mocks.NewMockDepositService(ctrl)
	reporting := mocks.NewMockReportingService(ctrl)
	return NewWalletHandler(cashoutSvc, depositSvc, reporting), cashoutSvc, depositSvc, reporting
}

func TestRequestCashout_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, cashoutSvc, _, _ := newWalletHandler(ctrl)

	cashoutID := uuid.New()
	holdTxnID := uuid.New()
	cashoutSvc.EXPECT().RequestCashout(gomock.Any(), ports.CashoutRequest{
		UserID:      42,
		Amount:      decimal.RequireFromString("100.5"),
		Currency:    "USD",
		Destination: "acct-905812345678",
		Provider:    "fincra",
	}).Return(&domain.Cashout{
		ID:        cashoutID,
		UserID:    42,
		Amount:    decimal.RequireFromString("100.5"),
		Currency:  "USD",
		Provider:  "fincra",
		Status:    domain.CashoutStatusPending,
		HoldTxnID: holdTxnID,
		CreatedAt: time.Now(),
	}, nil)

	w := httptest.NewRecorder()
	c := postJSON(t, w, dto.CashoutCreateRequest{
		UserID:      42,
		Amount:      "100.5",
		Currency:    "USD",
		Destination: "acct-905812345678",
		Provider:    "fincra",
	})

	h.RequestCashout(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, cashoutID.String(), data["id"])
	assert.Equal(t, "PENDING", data["status"])
	assert.Equal(t, holdTxnID.String(), data["hold_txn_id"])
	_, hasRetry := data["next_retry_at"]
	assert.False(t, hasRetry)
}

func TestRequestCashout_InsufficientBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, cashoutSvc, _, _ := newWalletHandler(ctrl)

	cashoutSvc.EXPECT().RequestCashout(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrInsufficientBalance())

	w := httptest.NewRecorder()
	c := postJSON(t, w, dto.CashoutCreateRequest{
		UserID:      42,
		Amount:      "100000",
		Currency:    "USD",
		Destination: "acct-905812345678",
		Provider:    "fincra",
	})

	h.RequestCashout(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, "WAL_001", decodeError(t, w))
}

func TestRequestCashout_RejectsNegativeAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _, _ := newWalletHandler(ctrl)

	w := httptest.NewRecorder()
	c := postJSON(t, w, dto.CashoutCreateRequest{
		UserID:      42,
		Amount:      "-5",
		Currency:    "USD",
		Destination: "acct-905812345678",
		Provider:    "fincra",
	})

	h.RequestCashout(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateDeposit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, depositSvc, _ := newWalletHandler(ctrl)

	depositID := uuid.New()
	depositSvc.EXPECT().CreateDeposit(gomock.Any(), ports.CreateDepositRequest{
		UserID:         42,
		Kind:           domain.DepositKindEscrow,
		ExpectedAmount: decimal.RequireFromString("250"),
		Currency:       "LTC",
		Provider:       "blockbee",
	}).Return(&domain.Deposit{
		ID:             depositID,
		Kind:           domain.DepositKindEscrow,
		UserID:         42,
		ExpectedAmount: decimal.RequireFromString("250"),
		Currency:       "LTC",
		Provider:       "blockbee",
		PaymentAddress: "ltc1-generated",
		Status:         domain.DepositStatusPendingDeposit,
		CreatedAt:      time.Now(),
	}, nil)

	w := httptest.NewRecorder()
	c := postJSON(t, w, dto.DepositCreateRequest{
		UserID:   42,
		Kind:     "escrow",
		Amount:   "250",
		Currency: "LTC",
		Provider: "blockbee",
	})

	h.CreateDeposit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, depositID.String(), data["id"])
	assert.Equal(t, "ltc1-generated", data["payment_address"])
	assert.Equal(t, "PENDING_DEPOSIT", data["status"])
}

func TestCreateDeposit_RejectsUnknownKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _, _ := newWalletHandler(ctrl)

	w := httptest.NewRecorder()
	c := postJSON(t, w, dto.DepositCreateRequest{
		UserID:   42,
		Kind:     "lottery",
		Amount:   "250",
		Currency: "LTC",
		Provider: "blockbee",
	})

	h.CreateDeposit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBalance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _, reporting := newWalletHandler(ctrl)

	reporting.EXPECT().GetBalance(gomock.Any(), int64(42), "USD").Return(&domain.Wallet{
		UserID:        42,
		Currency:      "USD",
		Available:     decimal.RequireFromString("150.25"),
		Frozen:        decimal.RequireFromString("100"),
		TradingCredit: decimal.Zero,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "user_id", Value: "42"}, {Key: "currency", Value: "USD"}}

	h.GetBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(42), data["user_id"])
	assert.Equal(t, "150.25", data["available"])
	assert.Equal(t, "100", data["frozen"])
	assert.Equal(t, "0", data["trading_credit"])
}

func TestGetBalance_InvalidUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _, _ := newWalletHandler(ctrl)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "user_id", Value: "not-a-number"}, {Key: "currency", Value: "USD"}}

	h.GetBalance(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "WAL_004", decodeError(t, w))
}

func TestGetBalance_WalletNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _, reporting := newWalletHandler(ctrl)

	reporting.EXPECT().GetBalance(gomock.Any(), int64(42), "EUR").Return(nil, apperror.ErrWalletNotFound())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "user_id", Value: "42"}, {Key: "currency", Value: "EUR"}}

	h.GetBalance(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "WAL_003", decodeError(t, w))
}

func TestListLedger_DefaultLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _, reporting := newWalletHandler(ctrl)

	holdTxnID := uuid.New()
	reporting.EXPECT().ListLedger(gomock.Any(), int64(42), 50).Return([]domain.LedgerEntry{
		{
			ID:          uuid.New(),
			Type:        domain.LedgerTypeConsume,
			Amount:      decimal.RequireFromString("100.5"),
			Currency:    "USD",
			Status:      domain.LedgerStatusCompleted,
			Description: "cashout sent",
			HoldTxnID:   &holdTxnID,
			CreatedAt:   time.Now(),
		},
		{
			ID:        uuid.New(),
			Type:      domain.LedgerTypeCredit,
			Amount:    decimal.RequireFromString("250"),
			Currency:  "USD",
			Status:    domain.LedgerStatusCompleted,
			CreatedAt: time.Now(),
		},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "user_id", Value: "42"}}

	h.ListLedger(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(2), data["total"])
	items := data["items"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, "consume", first["type"])
	assert.Equal(t, holdTxnID.String(), first["hold_txn_id"])
}

func TestListLedger_ExplicitLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _, reporting := newWalletHandler(ctrl)

	reporting.EXPECT().ListLedger(gomock.Any(), int64(42), 10).Return([]domain.LedgerEntry{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?limit=10", nil)
	c.Params = gin.Params{{Key: "user_id", Value: "42"}}

	h.ListLedger(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(0), data["total"])
}

// --- Health Check Tests ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(ctx context.Context) error { return s.err }
func (s stubChecker) Name() string                   { return s.name }

func TestHealthCheck_AllHealthy(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(stubChecker{name: "postgresql"}, stubChecker{name: "redis"})(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	assert.Len(t, deps, 2)
}

func TestHealthCheck_Degraded(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(
		stubChecker{name: "postgresql"},
		stubChecker{name: "redis", err: errors.New("connection refused")},
	)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
	redis := resp["dependencies"].(map[string]interface{})["redis"].(map[string]interface{})
	assert.Equal(t, "unhealthy", redis["status"])
	assert.Equal(t, "connection refused", redis["error"])
}
