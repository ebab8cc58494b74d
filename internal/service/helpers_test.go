package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hugohenrick/erp-caixa/internal/adapter/repository"
	"github.com/hugohenrick/erp-caixa/pkg/clock"
	"github.com/hugohenrick/erp-caixa/pkg/idgen"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
)

var epoch = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

var errStoreDown = errors.New("store indisponível")

// flakyStore falha as gravações das chaves marcadas e pode atrasar leituras
type flakyStore struct {
	*repository.MemoryStore
	mu       sync.Mutex
	fail     map[string]bool
	getDelay time.Duration
}

func (s *flakyStore) slowGets(d time.Duration) {
	s.mu.Lock()
	s.getDelay = d
	s.mu.Unlock()
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	d := s.getDelay
	s.mu.Unlock()
	if d > 0 {
		time.Sleep(d)
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *flakyStore) failPuts(key string, fail bool) {
	s.mu.Lock()
	s.fail[key] = fail
	s.mu.Unlock()
}

func (s *flakyStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	fail := s.fail[key]
	s.mu.Unlock()
	if fail {
		return errStoreDown
	}
	return s.MemoryStore.Put(ctx, key, value)
}

type fixture struct {
	store    *flakyStore
	clock    *clock.FakeClock
	catalog  *Catalog
	ledger   *Ledger
	checkout *Checkout
	debts    *Debts
	bills    *Bills
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := &flakyStore{MemoryStore: repository.NewMemoryStore(), fail: make(map[string]bool)}
	clk := clock.Fake(epoch)
	n := 0
	var idMu sync.Mutex
	deps := Deps{
		Store: store,
		IDs: idgen.Func(func() string {
			idMu.Lock()
			defer idMu.Unlock()
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		Clock:  clk,
		Logger: logger.NewNop(),
	}
	catalog := NewCatalog(deps)
	ledger := NewLedger(deps)
	return &fixture{
		store:    store,
		clock:    clk,
		catalog:  catalog,
		ledger:   ledger,
		checkout: NewCheckout(catalog, ledger, deps.Logger),
		debts:    NewDebts(deps, ledger),
		bills:    NewBills(deps, ledger),
	}
}

func (f *fixture) transactionCount(t *testing.T) int {
	t.Helper()
	txs, err := f.ledger.Query(context.Background(), nil)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	return len(txs)
}

// receive espera um valor no canal ou falha o teste
func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for subscription callback")
	}
	var zero T
	return zero
}
