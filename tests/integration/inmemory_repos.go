package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Moxxcompany/lockbay/internal/core/domain"
	"github.com/Moxxcompany/lockbay/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[string]*domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[string]*domain.Wallet)}
}

func walletKey(userID int64, currency string) string {
	return fmt.Sprintf("%d:%s", userID, currency)
}

func (r *inMemoryWalletRepo) Get(ctx context.Context, userID int64, currency string) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[walletKey(userID, currency)]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, userID int64, currency string) (*domain.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := walletKey(userID, currency)
	w, ok := r.wallets[key]
	if !ok {
		w = &domain.Wallet{
			UserID:        userID,
			Currency:      currency,
			Available:     decimal.Zero,
			Frozen:        decimal.Zero,
			TradingCredit: decimal.Zero,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
		r.wallets[key] = w
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := walletKey(w.UserID, w.Currency)
	if _, ok := r.wallets[key]; !ok {
		return fmt.Errorf("wallet not found")
	}
	cp := *w
	cp.UpdatedAt = time.Now()
	r.wallets[key] = &cp
	return nil
}

// seed installs a wallet with a starting available balance, bypassing the
// service layer.
func (r *inMemoryWalletRepo) seed(userID int64, currency string, available decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets[walletKey(userID, currency)] = &domain.Wallet{
		UserID:        userID,
		Currency:      currency,
		Available:     available,
		Frozen:        decimal.Zero,
		TradingCredit: decimal.Zero,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// --- In-Memory Hold Repo ---

type inMemoryHoldRepo struct {
	mu    sync.RWMutex
	holds map[uuid.UUID]*domain.Hold
}

func newInMemoryHoldRepo() *inMemoryHoldRepo {
	return &inMemoryHoldRepo{holds: make(map[uuid.UUID]*domain.Hold)}
}

func (r *inMemoryHoldRepo) Create(ctx context.Context, tx pgx.Tx, hold *domain.Hold) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *hold
	r.holds[hold.ID] = &cp
	return nil
}

func (r *inMemoryHoldRepo) GetByHoldTxnID(ctx context.Context, holdTxnID uuid.UUID) (*domain.Hold, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.holds {
		if h.HoldTxnID == holdTxnID {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryHoldRepo) GetByHoldTxnIDForUpdate(ctx context.Context, tx pgx.Tx, holdTxnID uuid.UUID) (*domain.Hold, error) {
	return r.GetByHoldTxnID(ctx, holdTxnID)
}

func (r *inMemoryHoldRepo) GetByLinked(ctx context.Context, purpose domain.HoldPurpose, linkedID uuid.UUID) (*domain.Hold, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.holds {
		if h.Purpose == purpose && h.LinkedID == linkedID {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryHoldRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.HoldStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.holds[id]
	if !ok {
		return fmt.Errorf("hold not found")
	}
	h.Status = status
	h.UpdatedAt = time.Now()
	return nil
}

// --- In-Memory Ledger Repo ---

type inMemoryLedgerRepo struct {
	mu      sync.RWMutex
	entries []domain.LedgerEntry
}

func newInMemoryLedgerRepo() *inMemoryLedgerRepo {
	return &inMemoryLedgerRepo{}
}

func (r *inMemoryLedgerRepo) Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *inMemoryLedgerRepo) GetByTypeAndHoldTxn(ctx context.Context, tx pgx.Tx, entryType domain.LedgerEntryType, holdTxnID uuid.UUID) (*domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.entries {
		e := r.entries[i]
		if e.Type == entryType && e.HoldTxnID != nil && *e.HoldTxnID == holdTxnID {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *inMemoryLedgerRepo) GetByExternalTxID(ctx context.Context, userID int64, externalTxID string) (*domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.entries {
		e := r.entries[i]
		if e.UserID == userID && e.ExternalTxID != nil && *e.ExternalTxID == externalTxID {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *inMemoryLedgerRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.LedgerEntry
	for i := range r.entries {
		if r.entries[i].UserID == userID {
			result = append(result, r.entries[i])
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// countByType tallies entries of one type for a user.
func (r *inMemoryLedgerRepo) countByType(userID int64, entryType domain.LedgerEntryType) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for i := range r.entries {
		if r.entries[i].UserID == userID && r.entries[i].Type == entryType {
			n++
		}
	}
	return n
}

// --- In-Memory Cashout Repo ---

type inMemoryCashoutRepo struct {
	mu       sync.RWMutex
	cashouts map[uuid.UUID]*domain.Cashout
}

func newInMemoryCashoutRepo() *inMemoryCashoutRepo {
	return &inMemoryCashoutRepo{cashouts: make(map[uuid.UUID]*domain.Cashout)}
}

func (r *inMemoryCashoutRepo) Create(ctx context.Context, c *domain.Cashout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.cashouts[c.ID] = &cp
	return nil
}

func (r *inMemoryCashoutRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Cashout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cashouts[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *inMemoryCashoutRepo) Update(ctx context.Context, c *domain.Cashout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cashouts[c.ID]; !ok {
		return fmt.Errorf("cashout not found")
	}
	cp := *c
	cp.UpdatedAt = time.Now()
	r.cashouts[c.ID] = &cp
	return nil
}

func (r *inMemoryCashoutRepo) ListRetryDue(ctx context.Context, now time.Time, limit int) ([]domain.Cashout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Cashout
	for _, c := range r.cashouts {
		if c.RetryDue(now) {
			// Lease the row like the real repository does, so a second
			// sweeper cannot claim the same batch.
			lease := now.Add(2 * time.Minute)
			c.NextRetryAt = &lease
			result = append(result, *c)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func (r *inMemoryCashoutRepo) ListAwaitingReview(ctx context.Context, limit int) ([]domain.Cashout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Cashout
	for _, c := range r.cashouts {
		if c.Status == domain.CashoutStatusFailed && c.NextRetryAt == nil {
			result = append(result, *c)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

// --- In-Memory Deposit Repo ---

type inMemoryDepositRepo struct {
	mu       sync.RWMutex
	deposits map[uuid.UUID]*domain.Deposit
}

func newInMemoryDepositRepo() *inMemoryDepositRepo {
	return &inMemoryDepositRepo{deposits: make(map[uuid.UUID]*domain.Deposit)}
}

func (r *inMemoryDepositRepo) Create(ctx context.Context, d *domain.Deposit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.deposits[d.ID] = &cp
	return nil
}

func (r *inMemoryDepositRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deposit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.deposits[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *inMemoryDepositRepo) GetByPaymentAddress(ctx context.Context, provider, address string) (*domain.Deposit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.deposits {
		if d.Provider == provider && d.PaymentAddress == address {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemoryDepositRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DepositStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deposits[id]
	if !ok {
		return fmt.Errorf("deposit not found")
	}
	d.Status = status
	d.UpdatedAt = time.Now()
	return nil
}

// --- In-Memory Admin Repo ---

type inMemoryAdminRepo struct {
	mu     sync.RWMutex
	admins map[int64]*domain.Admin
}

func newInMemoryAdminRepo() *inMemoryAdminRepo {
	return &inMemoryAdminRepo{admins: make(map[int64]*domain.Admin)}
}

func (r *inMemoryAdminRepo) seed(a *domain.Admin) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[a.ID] = a
}

func (r *inMemoryAdminRepo) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.admins {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// --- In-Memory Audit Repo ---

type inMemoryAuditRepo struct {
	mu   sync.Mutex
	logs []domain.AuditLog
}

func newInMemoryAuditRepo() *inMemoryAuditRepo {
	return &inMemoryAuditRepo{}
}

func (r *inMemoryAuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *log)
	return nil
}

// --- Serializing Transactor ---

// serialTransactor emulates the wallet row lock: Begin blocks until the
// previous transaction commits or rolls back, so balance mutations execute
// one at a time exactly as they would under SELECT FOR UPDATE on a single
// contended wallet row.
type serialTransactor struct {
	mu sync.Mutex
}

func newSerialTransactor() *serialTransactor {
	return &serialTransactor{}
}

func (t *serialTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &serialTx{release: func() { t.mu.Unlock() }}, nil
}

// serialTx is a no-op pgx.Tx that releases the transactor lock on first
// Commit or Rollback.
type serialTx struct {
	once    sync.Once
	release func()
}

func (t *serialTx) done() {
	t.once.Do(t.release)
}

func (t *serialTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *serialTx) Commit(ctx context.Context) error          { t.done(); return nil }
func (t *serialTx) Rollback(ctx context.Context) error        { t.done(); return nil }
func (t *serialTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *serialTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *serialTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *serialTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *serialTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *serialTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *serialTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *serialTx) Conn() *pgx.Conn { return nil }

// --- Stub Provider ---

// stubProvider is a deterministic payment provider. Withdraw outcomes are
// configured per test.
type stubProvider struct {
	name    string
	mu      sync.Mutex
	nextErr error
	result  *ports.WithdrawalResult
	addrSeq int
}

func newStubProvider(name string) *stubProvider {
	return &stubProvider{
		name:   name,
		result: &ports.WithdrawalResult{Success: true, ExternalTxID: "ext-tx-1"},
	}
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) CreatePaymentAddress(ctx context.Context, userID int64, currency string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.addrSeq++
	return fmt.Sprintf("%s-addr-%d-%d", p.name, userID, p.addrSeq), nil
}

func (p *stubProvider) Withdraw(ctx context.Context, destination string, amount decimal.Decimal, currency string) (*ports.WithdrawalResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.nextErr != nil {
		return nil, p.nextErr
	}
	cp := *p.result
	return &cp, nil
}

type stubRegistry struct {
	providers map[string]ports.PaymentProvider
}

func (r *stubRegistry) Get(name string) (ports.PaymentProvider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// identityOracle treats every currency pair as 1:1, which keeps expected
// amounts exact in assertions.
type identityOracle struct{}

func (identityOracle) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	return amount, nil
}
