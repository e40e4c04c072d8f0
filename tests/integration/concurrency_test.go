package integration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Moxxcompany/lockbay/internal/core/domain"
	"github.com/Moxxcompany/lockbay/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentCashouts_NoOverspend fires 20 concurrent cashout requests
// of 100 USD against a wallet holding exactly 1000. The wallet lock
// serializes the balance checks, so exactly 10 must succeed and the two
// pools must still sum to the initial balance.
func TestConcurrentCashouts_NoOverspend(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.walletRepo.seed(42, "USD", decimal.NewFromInt(1000))

	concurrency := 20
	var wg sync.WaitGroup
	var successCount atomic.Int64
	var insufficientCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			body := fmt.Sprintf(`{"user_id":42,"amount":"100","currency":"USD","destination":"acct-%d","provider":%q}`, idx, testProviderName)
			req, err := http.NewRequest(http.MethodPost, app.server.URL+"/api/v1/internal/cashouts", bytes.NewBufferString(body))
			if err != nil {
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Internal-Key", testInternalKey)

			r, err := http.DefaultClient.Do(req)
			if err != nil {
				return
			}
			defer r.Body.Close()
			_, _ = io.ReadAll(r.Body)

			switch r.StatusCode {
			case http.StatusCreated:
				successCount.Add(1)
			case http.StatusPaymentRequired:
				insufficientCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	t.Logf("cashouts: %d frozen, %d rejected (out of %d)", successCount.Load(), insufficientCount.Load(), concurrency)
	assert.Equal(t, int64(10), successCount.Load(), "exactly 10 cashouts of 100 fit in a 1000 balance")
	assert.Equal(t, int64(10), insufficientCount.Load())

	wallet, err := app.walletRepo.Get(context.Background(), 42, "USD")
	require.NoError(t, err)
	require.NotNil(t, wallet)
	assert.True(t, wallet.Available.Equal(decimal.Zero), "available = %s", wallet.Available)
	assert.True(t, wallet.Frozen.Equal(decimal.NewFromInt(1000)), "frozen = %s", wallet.Frozen)
	assert.True(t, wallet.CheckInvariants())

	holdEntries := app.ledgerRepo.countByType(42, domain.LedgerTypeHold)
	assert.Equal(t, 10, holdEntries, "one hold ledger entry per successful cashout")
}

// TestConcurrentWebhooks_CreditOnce delivers 15 identical payment
// confirmations concurrently. The atomic dedupe check admits exactly one;
// every redelivery is acknowledged without a second credit.
func TestConcurrentWebhooks_CreditOnce(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp := app.internalPost(t, "/api/v1/internal/deposits", map[string]interface{}{
		"user_id":  42,
		"kind":     "wallet",
		"amount":   "100",
		"currency": "USD",
		"provider": testProviderName,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := decodeDataMap(t, resp)
	address := data["payment_address"].(string)

	hook := fmt.Sprintf(`{"tx_id":"tx-race-1","amount":"100","currency":"USD","confirmations":3,"payment_address":%q}`, address)
	signature := app.sigSvc.Sign(testWebhookSecret, []byte(hook))

	concurrency := 15
	var wg sync.WaitGroup
	var acked atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req, err := http.NewRequest(http.MethodPost, app.server.URL+"/webhooks/"+testProviderName, bytes.NewBufferString(hook))
			if err != nil {
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Webhook-Signature", signature)

			r, err := http.DefaultClient.Do(req)
			if err != nil {
				return
			}
			defer r.Body.Close()
			_, _ = io.ReadAll(r.Body)

			if r.StatusCode == http.StatusOK {
				acked.Add(1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int64(concurrency), acked.Load(), "every delivery must be acknowledged")

	credits := app.ledgerRepo.countByType(42, domain.LedgerTypeCredit)
	assert.Equal(t, 1, credits, "the payment must be credited exactly once")

	wallet, err := app.walletRepo.Get(context.Background(), 42, "USD")
	require.NoError(t, err)
	require.NotNil(t, wallet)
	assert.True(t, wallet.Available.Equal(decimal.RequireFromString("99")),
		"available = %s, want 99 (100 minus 1%% fee)", wallet.Available)
}

// TestConcurrentReleases_SingleRefund releases the same hold from 10
// concurrent admin requests. The idempotency check inside the wallet lock
// guarantees the funds move back exactly once.
func TestConcurrentReleases_SingleRefund(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.walletRepo.seed(42, "USD", decimal.NewFromInt(300))

	resp := app.internalPost(t, "/api/v1/internal/cashouts", map[string]interface{}{
		"user_id":     42,
		"amount":      "100",
		"currency":    "USD",
		"destination": "acct-release-race",
		"provider":    testProviderName,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := decodeDataMap(t, resp)
	holdTxnID := data["hold_txn_id"].(string)
	cashoutID := data["id"].(string)

	token := app.adminLogin(t)
	releaseBody := fmt.Sprintf(
		`{"user_id":42,"amount":"100","hold_txn_id":%q,"linked_id":%q,"reason":"user cancelled","cancel":true}`,
		holdTxnID, cashoutID)

	concurrency := 10
	var wg sync.WaitGroup
	var okCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req, err := http.NewRequest(http.MethodPost, app.server.URL+"/api/v1/admin/holds/release", bytes.NewBufferString(releaseBody))
			if err != nil {
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			r, err := http.DefaultClient.Do(req)
			if err != nil {
				return
			}
			defer r.Body.Close()
			_, _ = io.ReadAll(r.Body)

			if r.StatusCode == http.StatusOK {
				okCount.Add(1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int64(concurrency), okCount.Load(), "duplicate releases must succeed idempotently")

	releases := app.ledgerRepo.countByType(42, domain.LedgerTypeRelease)
	assert.Equal(t, 1, releases, "funds must move back exactly once")

	wallet, err := app.walletRepo.Get(context.Background(), 42, "USD")
	require.NoError(t, err)
	require.NotNil(t, wallet)
	assert.True(t, wallet.Available.Equal(decimal.NewFromInt(300)), "available = %s", wallet.Available)
	assert.True(t, wallet.Frozen.Equal(decimal.Zero), "frozen = %s", wallet.Frozen)
}

// TestHoldReleaseRoundTrip_EightDecimalPrecision places and releases a hold
// at satoshi-level precision and verifies the available pool returns to its
// exact pre-hold value with no rounding drift.
func TestHoldReleaseRoundTrip_EightDecimalPrecision(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	initial := decimal.RequireFromString("0.12345678")
	amount := decimal.RequireFromString("0.00000123")
	app.walletRepo.seed(42, "BTC", initial)

	ctx := context.Background()
	linkedID := uuid.New()
	holdRes, err := app.holdMgr.PlaceHold(ctx, ports.PlaceHoldRequest{
		UserID:     42,
		Currency:   "BTC",
		Amount:     amount,
		Purpose:    domain.HoldPurposeCashout,
		LinkedType: "cashout",
		LinkedID:   linkedID,
	})
	require.NoError(t, err)
	require.True(t, holdRes.Success)

	mid, err := app.walletRepo.Get(ctx, 42, "BTC")
	require.NoError(t, err)
	assert.True(t, mid.Available.Equal(initial.Sub(amount)), "available = %s", mid.Available)
	assert.True(t, mid.Frozen.Equal(amount), "frozen = %s", mid.Frozen)

	relRes, err := app.holdMgr.ReleaseHoldInternal(ctx, domain.SystemActor{Context: "precision_check"}, ports.ReleaseHoldRequest{
		UserID:    42,
		Amount:    amount,
		HoldTxnID: holdRes.HoldTxnID,
		LinkedID:  linkedID,
		Reason:    "round trip",
		Cancel:    true,
	})
	require.NoError(t, err)
	require.True(t, relRes.Success)

	final, err := app.walletRepo.Get(ctx, 42, "BTC")
	require.NoError(t, err)
	assert.True(t, final.Available.Equal(initial), "available = %s, want exact %s", final.Available, initial)
	assert.True(t, final.Frozen.Equal(decimal.Zero))
}

// TestConcurrentMixedHoldLifecycles runs many full hold lifecycles in
// parallel directly against the hold manager: each worker freezes funds,
// then either consumes (funds leave the system) or releases (funds return).
// Afterwards the books must balance: initial = available + frozen + consumed.
func TestConcurrentMixedHoldLifecycles(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	initial := decimal.NewFromInt(10000)
	app.walletRepo.seed(42, "USD", initial)

	ctx := context.Background()
	workers := 40
	amount := decimal.NewFromInt(100)

	var wg sync.WaitGroup
	var consumed atomic.Int64
	var released atomic.Int64
	var rejected atomic.Int64

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			linkedID := uuid.New()
			holdRes, err := app.holdMgr.PlaceHold(ctx, ports.PlaceHoldRequest{
				UserID:     42,
				Currency:   "USD",
				Amount:     amount,
				Purpose:    domain.HoldPurposeCashout,
				LinkedType: "cashout",
				LinkedID:   linkedID,
			})
			if err != nil || !holdRes.Success {
				rejected.Add(1)
				return
			}

			if idx%2 == 0 {
				res, err := app.holdMgr.ConsumeHold(ctx, ports.ConsumeHoldRequest{
					UserID:    42,
					Amount:    amount,
					HoldTxnID: holdRes.HoldTxnID,
					LinkedID:  linkedID,
				})
				if err == nil && res.Success {
					consumed.Add(1)
				}
				return
			}

			res, err := app.holdMgr.ReleaseHoldInternal(ctx, domain.SystemActor{Context: "lifecycle_test"}, ports.ReleaseHoldRequest{
				UserID:    42,
				Amount:    amount,
				HoldTxnID: holdRes.HoldTxnID,
				LinkedID:  linkedID,
				Reason:    "returning funds",
				Cancel:    true,
			})
			if err == nil && res.Success {
				released.Add(1)
			}
		}(i)
	}

	wg.Wait()

	t.Logf("lifecycles: %d consumed, %d released, %d rejected (out of %d)",
		consumed.Load(), released.Load(), rejected.Load(), workers)

	// 40 workers at 100 each against 10000: every hold fits, none rejected.
	assert.Equal(t, int64(0), rejected.Load())
	assert.Equal(t, int64(workers), consumed.Load()+released.Load())

	wallet, err := app.walletRepo.Get(ctx, 42, "USD")
	require.NoError(t, err)
	require.NotNil(t, wallet)
	require.True(t, wallet.CheckInvariants(), "pools must be non-negative")

	consumedTotal := amount.Mul(decimal.NewFromInt(consumed.Load()))
	total := wallet.Available.Add(wallet.Frozen).Add(consumedTotal)
	assert.True(t, total.Equal(initial),
		"conservation violated: available %s + frozen %s + consumed %s != %s",
		wallet.Available, wallet.Frozen, consumedTotal, initial)
	assert.True(t, wallet.Frozen.Equal(decimal.Zero), "every hold reached a terminal state")

	consumeEntries := app.ledgerRepo.countByType(42, domain.LedgerTypeConsume)
	releaseEntries := app.ledgerRepo.countByType(42, domain.LedgerTypeRelease)
	assert.Equal(t, int(consumed.Load()), consumeEntries)
	assert.Equal(t, int(released.Load()), releaseEntries)
}
