package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceTolerance absorbs sub-cent rounding when checking whether a wallet
// can cover a hold. It is never credited or debited anywhere.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// Wallet holds one user's funds in a single currency, split into three pools.
// Available and Frozen move only through hold/consume/release operations
// executed under the wallet row lock. TradingCredit is a non-withdrawable
// bonus pool.
type Wallet struct {
	UserID        int64           `json:"user_id"`
	Currency      string          `json:"currency"`
	Available     decimal.Decimal `json:"available_balance"`
	Frozen        decimal.Decimal `json:"frozen_balance"`
	TradingCredit decimal.Decimal `json:"trading_credit"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CanCover reports whether the available pool covers amount, allowing the
// standard sub-cent tolerance.
func (w *Wallet) CanCover(amount decimal.Decimal) bool {
	return w.Available.Add(BalanceTolerance).GreaterThanOrEqual(amount)
}

// CheckInvariants reports whether all balance pools are non-negative.
// Mutation paths assert this before committing.
func (w *Wallet) CheckInvariants() bool {
	return !w.Available.IsNegative() && !w.Frozen.IsNegative() && !w.TradingCredit.IsNegative()
}
