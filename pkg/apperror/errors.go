package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet & Ledger (WAL) ----

func ErrInsufficientBalance() *AppError {
	return New("WAL_001", "Insufficient available balance", http.StatusPaymentRequired)
}

func ErrInsufficientFrozen() *AppError {
	return New("WAL_002", "Insufficient frozen balance for this hold", http.StatusConflict)
}

func ErrWalletNotFound() *AppError {
	return New("WAL_003", "Wallet not found", http.StatusNotFound)
}

func ErrInvalidAmount() *AppError {
	return New("WAL_004", "Invalid amount", http.StatusBadRequest)
}

// ---- Hold lifecycle (HOLD) ----

func ErrHoldNotFound() *AppError {
	return New("HOLD_001", "Hold not found", http.StatusNotFound)
}

func ErrInvalidHoldTransition(from, to string) *AppError {
	return New("HOLD_002", fmt.Sprintf("Illegal hold transition %s -> %s", from, to), http.StatusConflict)
}

func ErrHoldAlreadyConsumed() *AppError {
	return New("HOLD_003", "Funds already sent externally; hold cannot be retried or released", http.StatusConflict)
}

// ---- Payments & confirmations (PAY) ----

func ErrDuplicateConfirmation() *AppError {
	return New("PAY_001", "Payment confirmation already processed", http.StatusConflict)
}

func ErrUnderpayment() *AppError {
	return New("PAY_002", "Received amount below expected beyond tolerance", http.StatusUnprocessableEntity)
}

func ErrDepositNotFound() *AppError {
	return New("PAY_003", "No matching deposit for this payment", http.StatusNotFound)
}

func ErrCashoutNotFound() *AppError {
	return New("PAY_004", "Cashout not found", http.StatusNotFound)
}

func ErrInsufficientConfirmations() *AppError {
	return New("PAY_005", "Not enough confirmations yet", http.StatusAccepted)
}

// ---- Security (SEC) ----

func ErrSecurityViolation() *AppError {
	return New("SEC_001", "Caller is not an authorized admin", http.StatusForbidden)
}

func ErrInvalidCredentials() *AppError {
	return New("SEC_002", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("SEC_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrInvalidWebhookSignature() *AppError {
	return New("SEC_004", "Webhook signature verification failed", http.StatusUnauthorized)
}

func ErrMissingSystemContext() *AppError {
	return New("SEC_005", "Internal release requires a system context tag", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap("SYS_002", "Wallet lock acquisition timeout", http.StatusServiceUnavailable, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a WAL_004-style validation error with a custom message.
func Validation(message string) *AppError {
	return New("WAL_004", message, http.StatusBadRequest)
}
