package dto

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// CashoutCreateRequest is the request body for requesting a cashout.
// Amounts travel as decimal strings to avoid float rounding on the wire.
type CashoutCreateRequest struct {
	UserID      int64  `json:"user_id" binding:"required,gt=0"`
	Amount      string `json:"amount" binding:"required,decimal_amount"`
	Currency    string `json:"currency" binding:"required,min=3,max=10"`
	Destination string `json:"destination" binding:"required,max=256"`
	Provider    string `json:"provider" binding:"required,safe_id"`
}

// CashoutResponse is the response body for cashout state.
type CashoutResponse struct {
	ID            string  `json:"id"`
	UserID        int64   `json:"user_id"`
	Amount        string  `json:"amount"`
	Currency      string  `json:"currency"`
	Provider      string  `json:"provider"`
	Status        string  `json:"status"`
	FailureType   *string `json:"failure_type,omitempty"`
	LastErrorCode *string `json:"last_error_code,omitempty"`
	RetryCount    int     `json:"retry_count"`
	NextRetryAt   *string `json:"next_retry_at,omitempty"`
	HoldTxnID     string  `json:"hold_txn_id"`
	ExternalTxID  *string `json:"external_tx_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// DepositCreateRequest provisions an expected inbound payment.
type DepositCreateRequest struct {
	UserID   int64  `json:"user_id" binding:"required,gt=0"`
	Kind     string `json:"kind" binding:"required,oneof=escrow exchange wallet"`
	Amount   string `json:"amount" binding:"required,decimal_amount"`
	Currency string `json:"currency" binding:"required,min=3,max=10"`
	Provider string `json:"provider" binding:"required,safe_id"`
}

// DepositResponse is the response body for a provisioned deposit.
type DepositResponse struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	UserID         int64  `json:"user_id"`
	ExpectedAmount string `json:"expected_amount"`
	Currency       string `json:"currency"`
	Provider       string `json:"provider"`
	PaymentAddress string `json:"payment_address"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

// ReleaseHoldRequest is the admin request to return frozen funds.
type ReleaseHoldRequest struct {
	UserID    int64  `json:"user_id" binding:"required,gt=0"`
	Amount    string `json:"amount" binding:"required,decimal_amount"`
	HoldTxnID string `json:"hold_txn_id" binding:"required,uuid"`
	LinkedID  string `json:"linked_id" binding:"required,uuid"`
	Reason    string `json:"reason" binding:"required,max=500"`
	Cancel    bool   `json:"cancel"`
}

// ReleaseHoldResponse reports the release outcome.
type ReleaseHoldResponse struct {
	Success     bool   `json:"success"`
	Idempotent  bool   `json:"idempotent"`
	LedgerTxnID string `json:"ledger_txn_id,omitempty"`
}

// DisputeHoldRequest marks a hold as disputed.
type DisputeHoldRequest struct {
	HoldTxnID string `json:"hold_txn_id" binding:"required,uuid"`
	Reason    string `json:"reason" binding:"required,max=500"`
}

// WalletBalanceResponse is the response for a balance query.
type WalletBalanceResponse struct {
	UserID        int64  `json:"user_id"`
	Currency      string `json:"currency"`
	Available     string `json:"available"`
	Frozen        string `json:"frozen"`
	TradingCredit string `json:"trading_credit"`
}

// LedgerEntryResponse is one ledger row.
type LedgerEntryResponse struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Amount       string  `json:"amount"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
	Description  string  `json:"description"`
	HoldTxnID    *string `json:"hold_txn_id,omitempty"`
	ExternalTxID *string `json:"external_tx_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// LedgerListResponse wraps a ledger listing.
type LedgerListResponse struct {
	Items []LedgerEntryResponse `json:"items"`
	Total int                   `json:"total"`
}

// ReviewListResponse wraps the admin review queue.
type ReviewListResponse struct {
	Items []CashoutResponse `json:"items"`
	Total int               `json:"total"`
}

// ProviderWebhook is the raw inbound payment notification body. Providers
// differ in field naming; adapters normalize before this DTO is built, so
// binding stays strict.
type ProviderWebhook struct {
	TxID           string `json:"tx_id" binding:"required,max=128"`
	Amount         string `json:"amount" binding:"required,decimal_amount"`
	Currency       string `json:"currency" binding:"required,min=3,max=10"`
	Confirmations  int    `json:"confirmations" binding:"gte=0"`
	PaymentAddress string `json:"payment_address" binding:"required,max=256"`
}

// WebhookAck is the acknowledgement returned to providers.
type WebhookAck struct {
	Accepted  bool   `json:"accepted"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Status    string `json:"status,omitempty"`
}
