package service

import (
	"context"
	"errors"
	"testing"

	redisStorage "github.com/Moxxcompany/lockbay/internal/adapter/storage/redis"
	"github.com/Moxxcompany/lockbay/internal/core/domain"
	"github.com/Moxxcompany/lockbay/internal/core/ports"
	"github.com/Moxxcompany/lockbay/internal/core/ports/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type confirmationTestDeps struct {
	svc         *ConfirmationServiceImpl
	depositRepo *mocks.MockDepositRepository
	ledgerRepo  *mocks.MockLedgerRepository
	holdMgr     *mocks.MockHoldManager
	dedupe      *mocks.MockDedupeCache
	rates       *mocks.MockRateOracle
	notifier    *mocks.MockNotifier
	ctrl        *gomock.Controller
}

func setupConfirmationService(t *testing.T, toleranceUSD string) *confirmationTestDeps {
	ctrl := gomock.NewController(t)
	d := &confirmationTestDeps{
		depositRepo: mocks.NewMockDepositRepository(ctrl),
		ledgerRepo:  mocks.NewMockLedgerRepository(ctrl),
		holdMgr:     mocks.NewMockHoldManager(ctrl),
		dedupe:      mocks.NewMockDedupeCache(ctrl),
		rates:       mocks.NewMockRateOracle(ctrl),
		notifier:    mocks.NewMockNotifier(ctrl),
		ctrl:        ctrl,
	}
	d.svc = NewConfirmationService(
		d.depositRepo, d.ledgerRepo, d.holdMgr, d.dedupe,
		d.rates, d.notifier, dec(toleranceUSD), zerolog.Nop(),
	)
	return d
}

func pendingDeposit(kind domain.DepositKind) *domain.Deposit {
	return &domain.Deposit{
		ID:               uuid.New(),
		Kind:             kind,
		UserID:           42,
		ExpectedAmount:   dec("100"),
		Currency:         "USD",
		Provider:         "blockbee",
		PaymentAddress:   "addr-1",
		FeeRate:          dec("0.01"),
		MinConfirmations: 3,
		Status:           domain.DepositStatusPendingDeposit,
	}
}

func walletHook(received string, confirmations int) ports.PaymentWebhook {
	return ports.PaymentWebhook{
		Provider:       "blockbee",
		TxID:           "tx-abc",
		ReceivedAmount: dec(received),
		Currency:       "USD",
		Confirmations:  confirmations,
		PaymentAddress: "addr-1",
	}
}

// ==================== ProcessConfirmation Tests ====================

func TestConfirmationService_Process_ExactPayment_WalletTopUp(t *testing.T) {
	d := setupConfirmationService(t, "1")
	defer d.ctrl.Finish()

	ctx := context.Background()
	deposit := pendingDeposit(domain.DepositKindWallet)
	hook := walletHook("100", 3)

	d.depositRepo.EXPECT().GetByPaymentAddress(ctx, "blockbee", "addr-1").Return(deposit, nil)
	d.dedupe.EXPECT().CheckAndSet(ctx, "blockbee:tx-abc", dedupeTTL).Return(true, nil)
	d.ledgerRepo.EXPECT().GetByExternalTxID(ctx, int64(42), "tx-abc").Return(nil, nil)
	// Principal credit: 100 - 1 fee = 99, no excess.
	d.holdMgr.EXPECT().CreditAvailable(ctx, int64(42), "USD", gomock.Any(), domain.LedgerTypeCredit, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, _ string, amount decimal.Decimal, _ domain.LedgerEntryType, desc string, _ *string) (*domain.LedgerEntry, error) {
			assert.True(t, amount.Equal(dec("99")), "principal was %s", amount)
			assert.Contains(t, desc, "tolerance 1")
			return &domain.LedgerEntry{ID: uuid.New()}, nil
		})
	// Fee credit to the platform wallet.
	d.holdMgr.EXPECT().CreditAvailable(ctx, platformUserID, "USD", gomock.Any(), domain.LedgerTypeFee, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, _ string, amount decimal.Decimal, _ domain.LedgerEntryType, _ string, _ *string) (*domain.LedgerEntry, error) {
			assert.True(t, amount.Equal(dec("1")), "fee was %s", amount)
			return &domain.LedgerEntry{ID: uuid.New()}, nil
		})
	d.depositRepo.EXPECT().UpdateStatus(ctx, deposit.ID, domain.DepositStatusPaymentConfirmed).Return(nil)
	d.notifier.EXPECT().NotifyUser(ctx, int64(42), gomock.Any())

	outcome, err := d.svc.ProcessConfirmation(ctx, hook)
	require.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.False(t, outcome.Overpaid)
	assert.True(t, outcome.CreditedTotal.Equal(dec("99")))
	assert.True(t, outcome.FeeAmount.Equal(dec("1")))
	assert.Equal(t, domain.DepositStatusPaymentConfirmed, outcome.DepositStatus)
}

func TestConfirmationService_Process_ShortfallWithinTolerance_Accepted(t *testing.T) {
	d := setupConfirmationService(t, "1")
	defer d.ctrl.Finish()

	ctx := context.Background()
	deposit := pendingDeposit(domain.DepositKindWallet)
	hook := walletHook("99.50", 3)

	d.depositRepo.EXPECT().GetByPaymentAddress(ctx, "blockbee", "addr-1").Return(deposit, nil)
	d.dedupe.EXPECT().CheckAndSet(ctx, "blockbee:tx-abc", dedupeTTL).Return(true, nil)
	d.ledgerRepo.EXPECT().GetByExternalTxID(ctx, int64(42), "tx-abc").Return(nil, nil)
	d.holdMgr.EXPECT().CreditAvailable(ctx, int64(42), "USD", gomock.Any(), domain.LedgerTypeCredit, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, _ string, amount decimal.Decimal, _ domain.LedgerEntryType, _ string, _ *string) (*domain.LedgerEntry, error) {
			// 99.50 - 0.995 fee = 98.505
			assert.True(t, amount.Equal(dec("98.505")), "principal was %s", amount)
			return &domain.LedgerEntry{ID: uuid.New()}, nil
		})
	d.holdMgr.EXPECT().CreditAvailable(ctx, platformUserID, "USD", gomock.Any(), domain.LedgerTypeFee, gomock.Any(), gomock.Any()).Return(&domain.LedgerEntry{ID: uuid.New()}, nil)
	d.depositRepo.EXPECT().UpdateStatus(ctx, deposit.ID, domain.DepositStatusPaymentConfirmed).Return(nil)
	d.notifier.EXPECT().NotifyUser(ctx, int64(42), gomock.Any())

	outcome, err := d.svc.ProcessConfirmation(ctx, hook)
	require.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.False(t, outcome.Underpaid)
}

func TestConfirmationService_Process_ShortfallBeyondTolerance_Parked(t *testing.T) {
	d := setupConfirmationService(t, "1")
	defer d.ctrl.Finish()

	ctx := context.Background()
	deposit := pendingDeposit(domain.DepositKindWallet)
	hook := walletHook("98", 3)

	d.depositRepo.EXPECT().GetByPaymentAddress(ctx, "blockbee", "addr-1").Return(deposit, nil)
	d.dedupe.EXPECT().CheckAndSet(ctx, "blockbee:tx-abc", dedupeTTL).Return(true, nil)
	d.ledgerRepo.EXPECT().GetByExternalTxID(ctx, int64(42), "tx-abc").Return(nil, nil)
	// Nothing is credited. The deposit is parked for review.
	d.depositRepo.EXPECT().UpdateStatus(ctx, deposit.ID, domain.DepositStatusPaymentInsufficient).Return(nil)
	d.notifier.EXPECT().NotifyUser(ctx, int64(42), gomock.Any())
	d.notifier.EXPECT().NotifyAdmins(ctx, gomock.Any())

	outcome, err := d.svc.ProcessConfirmation(ctx, hook)
	require.NoError(t, err)
	assert.False(t, outcome.Accepted)
	assert.True(t, outcome.Underpaid)
	assert.Equal(t, domain.DepositStatusPaymentInsufficient, outcome.DepositStatus)
}

func TestConfirmationService_Process_Overpayment_SplitCredits(t *testing.T) {
	d := setupConfirmationService(t, "1")
	defer d.ctrl.Finish()

	ctx := context.Background()
	deposit := pendingDeposit(domain.DepositKindWallet)
	hook := walletHook("110", 3)

	d.depositRepo.EXPECT().GetByPaymentAddress(ctx, "blockbee", "addr-1").Return(deposit, nil)
	d.dedupe.EXPECT().CheckAndSet(ctx, "blockbee:tx-abc", dedupeTTL).Return(true, nil)
	d.ledgerRepo.EXPECT().GetByExternalTxID(ctx, int64(42), "tx-abc").Return(nil, nil)
	// received 110, fee 1.1, excess 10, principal 98.9
	d.holdMgr.EXPECT().CreditAvailable(ctx, int64(42), "USD", gomock.Any(), domain.LedgerTypeCredit, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, _ string, amount decimal.Decimal, _ domain.LedgerEntryType, _ string, _ *string) (*domain.LedgerEntry, error) {
			assert.True(t, amount.Equal(dec("98.9")), "principal was %s", amount)
			return &domain.LedgerEntry{ID: uuid.New()}, nil
		})
	d.holdMgr.EXPECT().CreditAvailable(ctx, int64(42), "USD", gomock.Any(), domain.LedgerTypeOverpayment, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, _ string, amount decimal.Decimal, _ domain.LedgerEntryType, _ string, _ *string) (*domain.LedgerEntry, error) {
			assert.True(t, amount.Equal(dec("10")), "excess was %s", amount)
			return &domain.LedgerEntry{ID: uuid.New()}, nil
		})
	d.holdMgr.EXPECT().CreditAvailable(ctx, platformUserID, "USD", gomock.Any(), domain.LedgerTypeFee, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, _ string, amount decimal.Decimal, _ domain.LedgerEntryType, _ string, _ *string) (*domain.LedgerEntry, error) {
			assert.True(t, amount.Equal(dec("1.1")), "fee was %s", amount)
			return &domain.LedgerEntry{ID: uuid.New()}, nil
		})
	d.depositRepo.EXPECT().UpdateStatus(ctx, deposit.ID, domain.DepositStatusPaymentConfirmed).Return(nil)
	d.notifier.EXPECT().NotifyUser(ctx, int64(42), gomock.Any())

	outcome, err := d.svc.ProcessConfirmation(ctx, hook)
	require.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.True(t, outcome.Overpaid)
	assert.True(t, outcome.Excess.Equal(dec("10")))
	assert.True(t, outcome.CreditedTotal.Equal(dec("108.9")))
}

func TestConfirmationService_Process_EscrowDeposit_SegregatesPrincipal(t *testing.T) {
	d := setupConfirmationService(t, "0")
	defer d.ctrl.Finish()

	ctx := context.Background()
	deposit := pendingDeposit(domain.DepositKindEscrow)
	hook := walletHook("100", 3)

	d.depositRepo.EXPECT().GetByPaymentAddress(ctx, "blockbee", "addr-1").Return(deposit, nil)
	d.dedupe.EXPECT().CheckAndSet(ctx, "blockbee:tx-abc", dedupeTTL).Return(true, nil)
	d.ledgerRepo.EXPECT().GetByExternalTxID(ctx, int64(42), "tx-abc").Return(nil, nil)
	d.holdMgr.EXPECT().CreditAvailable(ctx, int64(42), "USD", gomock.Any(), domain.LedgerTypeCredit, gomock.Any(), gomock.Any()).Return(&domain.LedgerEntry{ID: uuid.New()}, nil)
	d.holdMgr.EXPECT().CreditAvailable(ctx, platformUserID, "USD", gomock.Any(), domain.LedgerTypeFee, gomock.Any(), gomock.Any()).Return(&domain.LedgerEntry{ID: uuid.New()}, nil)
	// Escrow principal is immediately re-frozen under a hold keyed to the
	// deposit, so it cannot be spent while the trade is open.
	d.holdMgr.EXPECT().PlaceHold(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, hr ports.PlaceHoldRequest) (*ports.HoldResult, error) {
			assert.Equal(t, domain.HoldPurposeEscrow, hr.Purpose)
			assert.Equal(t, "deposit", hr.LinkedType)
			assert.Equal(t, deposit.ID, hr.LinkedID)
			assert.True(t, hr.Amount.Equal(dec("99")), "segregated %s", hr.Amount)
			return &ports.HoldResult{Success: true, HoldID: uuid.New(), HoldTxnID: uuid.New()}, nil
		})
	d.depositRepo.EXPECT().UpdateStatus(ctx, deposit.ID, domain.DepositStatusPaymentConfirmed).Return(nil)
	d.notifier.EXPECT().NotifyUser(ctx, int64(42), gomock.Any())

	outcome, err := d.svc.ProcessConfirmation(ctx, hook)
	require.NoError(t, err)
	assert.True(t, outcome.Accepted)
}

func TestConfirmationService_Process_DuplicateByCache(t *testing.T) {
	d := setupConfirmationService(t, "1")
	defer d.ctrl.Finish()

	ctx := context.Background()
	deposit := pendingDeposit(domain.DepositKindWallet)

	d.depositRepo.EXPECT().GetByPaymentAddress(ctx, "blockbee", "addr-1").Return(deposit, nil)
	d.ledgerRepo.EXPECT().GetByExternalTxID(ctx, int64(42), "tx-abc").Return(nil, nil)
	// A concurrent delivery already claimed the txid.
	d.dedupe.EXPECT().CheckAndSet(ctx, "blockbee:tx-abc", dedupeTTL).Return(false, nil)

	outcome, err := d.svc.ProcessConfirmation(ctx, walletHook("100", 3))
	require.NoError(t, err)
	assert.True(t, outcome.Duplicate)
	assert.False(t, outcome.Accepted)
}

func TestConfirmationService_Process_DuplicateByLedger(t *testing.T) {
	d := setupConfirmationService(t, "1")
	defer d.ctrl.Finish()

	ctx := context.Background()
	deposit := pendingDeposit(domain.DepositKindWallet)
	prior := &domain.LedgerEntry{ID: uuid.New(), Type: domain.LedgerTypeCredit}

	// The ledger is authoritative and is consulted before the cache; a
	// wiped cache never lets a settled txid through twice.
	d.depositRepo.EXPECT().GetByPaymentAddress(ctx, "blockbee", "addr-1").Return(deposit, nil)
	d.ledgerRepo.EXPECT().GetByExternalTxID(ctx, int64(42), "tx-abc").Return(prior, nil)

	outcome, err := d.svc.ProcessConfirmation(ctx, walletHook("100", 3))
	require.NoError(t, err)
	assert.True(t, outcome.Duplicate)
}

func TestConfirmationService_Process_CacheError_StillSettles(t *testing.T) {
	d := setupConfirmationService(t, "1")
	defer d.ctrl.Finish()

	ctx := context.Background()
	deposit := pendingDeposit(domain.DepositKindWallet)
	hook := walletHook("100", 3)

	// Cache down degrades to ledger-only dedupe; the payment still settles.
	d.depositRepo.EXPECT().GetByPaymentAddress(ctx, "blockbee", "addr-1").Return(deposit, nil)
	d.ledgerRepo.EXPECT().GetByExternalTxID(ctx, int64(42), "tx-abc").Return(nil, nil)
	d.dedupe.EXPECT().CheckAndSet(ctx, "blockbee:tx-abc", dedupeTTL).Return(false, errors.New("redis down"))
	d.holdMgr.EXPECT().CreditAvailable(ctx, int64(42), "USD", gomock.Any(), domain.LedgerTypeCredit, gomock.Any(), gomock.Any()).Return(&domain.LedgerEntry{ID: uuid.New()}, nil)
	d.holdMgr.EXPECT().CreditAvailable(ctx, platformUserID, "USD", gomock.Any(), domain.LedgerTypeFee, gomock.Any(), gomock.Any()).Return(&domain.LedgerEntry{ID: uuid.New()}, nil)
	d.depositRepo.EXPECT().UpdateStatus(ctx, deposit.ID, domain.DepositStatusPaymentConfirmed).Return(nil)
	d.notifier.EXPECT().NotifyUser(ctx, int64(42), gomock.Any())

	outcome, err := d.svc.ProcessConfirmation(ctx, hook)
	require.NoError(t, err)
	assert.True(t, outcome.Accepted)
}

func TestConfirmationService_Process_InsufficientConfirmations_LeavesTxIDUnclaimed(t *testing.T) {
	d := setupConfirmationService(t, "1")
	defer d.ctrl.Finish()

	ctx := context.Background()
	deposit := pendingDeposit(domain.DepositKindWallet)

	// No CheckAndSet expectation: an early delivery must not claim the
	// txid, or the redelivery with enough confirmations would be dropped.
	d.depositRepo.EXPECT().GetByPaymentAddress(ctx, "blockbee", "addr-1").Return(deposit, nil)

	outcome, err := d.svc.ProcessConfirmation(ctx, walletHook("100", 1))
	require.NoError(t, err)
	assert.False(t, outcome.Accepted)
	assert.False(t, outcome.Duplicate)
	assert.Equal(t, domain.DepositStatusPendingDeposit, outcome.DepositStatus)
}

// TestConfirmationService_Process_RedeliverySettles_AfterPendingConfirmations
// drives the same txid through a real Redis-backed dedupe store twice: the
// first delivery arrives before the confirmation threshold and must not
// claim the txid, so the provider's redelivery with enough confirmations
// settles the deposit.
func TestConfirmationService_Process_RedeliverySettles_AfterPendingConfirmations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	depositRepo := mocks.NewMockDepositRepository(ctrl)
	ledgerRepo := mocks.NewMockLedgerRepository(ctrl)
	holdMgr := mocks.NewMockHoldManager(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)
	svc := NewConfirmationService(
		depositRepo, ledgerRepo, holdMgr, redisStorage.NewDedupeStore(rdb),
		mocks.NewMockRateOracle(ctrl), notifier, dec("1"), zerolog.Nop(),
	)

	ctx := context.Background()
	deposit := pendingDeposit(domain.DepositKindWallet)
	depositRepo.EXPECT().GetByPaymentAddress(ctx, "blockbee", "addr-1").Return(deposit, nil).Times(2)

	first, err := svc.ProcessConfirmation(ctx, walletHook("100", 1))
	require.NoError(t, err)
	assert.False(t, first.Accepted)
	assert.False(t, first.Duplicate)

	ledgerRepo.EXPECT().GetByExternalTxID(ctx, int64(42), "tx-abc").Return(nil, nil)
	holdMgr.EXPECT().CreditAvailable(ctx, int64(42), "USD", gomock.Any(), domain.LedgerTypeCredit, gomock.Any(), gomock.Any()).Return(&domain.LedgerEntry{ID: uuid.New()}, nil)
	holdMgr.EXPECT().CreditAvailable(ctx, platformUserID, "USD", gomock.Any(), domain.LedgerTypeFee, gomock.Any(), gomock.Any()).Return(&domain.LedgerEntry{ID: uuid.New()}, nil)
	depositRepo.EXPECT().UpdateStatus(ctx, deposit.ID, domain.DepositStatusPaymentConfirmed).Return(nil)
	notifier.EXPECT().NotifyUser(ctx, int64(42), gomock.Any())

	second, err := svc.ProcessConfirmation(ctx, walletHook("100", 3))
	require.NoError(t, err)
	assert.True(t, second.Accepted, "redelivery with enough confirmations must settle the deposit")
	assert.False(t, second.Duplicate)
}

func TestConfirmationService_Process_SettleError_ReleasesClaim(t *testing.T) {
	d := setupConfirmationService(t, "1")
	defer d.ctrl.Finish()

	ctx := context.Background()
	deposit := pendingDeposit(domain.DepositKindWallet)

	d.depositRepo.EXPECT().GetByPaymentAddress(ctx, "blockbee", "addr-1").Return(deposit, nil)
	d.ledgerRepo.EXPECT().GetByExternalTxID(ctx, int64(42), "tx-abc").Return(nil, nil)
	d.dedupe.EXPECT().CheckAndSet(ctx, "blockbee:tx-abc", dedupeTTL).Return(true, nil)
	d.holdMgr.EXPECT().CreditAvailable(ctx, int64(42), "USD", gomock.Any(), domain.LedgerTypeCredit, gomock.Any(), gomock.Any()).Return(nil, errors.New("wallet lock timeout"))
	// The claim goes back so the provider retry is processed, not dropped.
	d.dedupe.EXPECT().Release(ctx, "blockbee:tx-abc").Return(nil)

	_, err := d.svc.ProcessConfirmation(ctx, walletHook("100", 3))
	require.Error(t, err)
}

func TestConfirmationService_Process_UnknownAddress(t *testing.T) {
	d := setupConfirmationService(t, "1")
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.depositRepo.EXPECT().GetByPaymentAddress(ctx, "blockbee", "addr-1").Return(nil, nil)

	_, err := d.svc.ProcessConfirmation(ctx, walletHook("100", 3))
	assertAppError(t, err, "PAY_003")
}

func TestConfirmationService_Process_ToleranceConvertedToDepositCurrency(t *testing.T) {
	d := setupConfirmationService(t, "1")
	defer d.ctrl.Finish()

	ctx := context.Background()
	deposit := pendingDeposit(domain.DepositKindWallet)
	deposit.Currency = "LTC"
	deposit.ExpectedAmount = dec("2")
	hook := walletHook("1.99", 3)
	hook.Currency = "LTC"

	d.depositRepo.EXPECT().GetByPaymentAddress(ctx, "blockbee", "addr-1").Return(deposit, nil)
	d.dedupe.EXPECT().CheckAndSet(ctx, "blockbee:tx-abc", dedupeTTL).Return(true, nil)
	d.ledgerRepo.EXPECT().GetByExternalTxID(ctx, int64(42), "tx-abc").Return(nil, nil)
	// 1 USD tolerance is 0.02 LTC; a 0.01 LTC shortfall is within it.
	d.rates.EXPECT().Convert(ctx, dec("1"), "USD", "LTC").Return(dec("0.02"), nil)
	d.holdMgr.EXPECT().CreditAvailable(ctx, int64(42), "LTC", gomock.Any(), domain.LedgerTypeCredit, gomock.Any(), gomock.Any()).Return(&domain.LedgerEntry{ID: uuid.New()}, nil)
	d.holdMgr.EXPECT().CreditAvailable(ctx, platformUserID, "LTC", gomock.Any(), domain.LedgerTypeFee, gomock.Any(), gomock.Any()).Return(&domain.LedgerEntry{ID: uuid.New()}, nil)
	d.depositRepo.EXPECT().UpdateStatus(ctx, deposit.ID, domain.DepositStatusPaymentConfirmed).Return(nil)
	d.notifier.EXPECT().NotifyUser(ctx, int64(42), gomock.Any())

	outcome, err := d.svc.ProcessConfirmation(ctx, hook)
	require.NoError(t, err)
	assert.True(t, outcome.Accepted)
}

func TestConfirmationService_Process_OracleFailure_ZeroTolerance(t *testing.T) {
	d := setupConfirmationService(t, "1")
	defer d.ctrl.Finish()

	ctx := context.Background()
	deposit := pendingDeposit(domain.DepositKindWallet)
	deposit.Currency = "LTC"
	deposit.ExpectedAmount = dec("2")
	hook := walletHook("1.99", 3)
	hook.Currency = "LTC"

	d.depositRepo.EXPECT().GetByPaymentAddress(ctx, "blockbee", "addr-1").Return(deposit, nil)
	d.dedupe.EXPECT().CheckAndSet(ctx, "blockbee:tx-abc", dedupeTTL).Return(true, nil)
	d.ledgerRepo.EXPECT().GetByExternalTxID(ctx, int64(42), "tx-abc").Return(nil, nil)
	// Oracle down degrades to zero tolerance: the shortfall parks the deposit.
	d.rates.EXPECT().Convert(ctx, dec("1"), "USD", "LTC").Return(decimal.Zero, errors.New("oracle unreachable"))
	d.depositRepo.EXPECT().UpdateStatus(ctx, deposit.ID, domain.DepositStatusPaymentInsufficient).Return(nil)
	d.notifier.EXPECT().NotifyUser(ctx, int64(42), gomock.Any())
	d.notifier.EXPECT().NotifyAdmins(ctx, gomock.Any())

	outcome, err := d.svc.ProcessConfirmation(ctx, hook)
	require.NoError(t, err)
	assert.True(t, outcome.Underpaid)
}
