package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/erp-caixa/internal/domain/bill"
	"github.com/hugohenrick/erp-caixa/internal/domain/storage"
	"github.com/hugohenrick/erp-caixa/internal/domain/transaction"
	"github.com/hugohenrick/erp-caixa/pkg/apperror"
	"github.com/shopspring/decimal"
)

func createBill(t *testing.T, f *fixture, name string, due time.Time, category string) *bill.Bill {
	t.Helper()
	b, err := f.bills.Create(context.Background(), bill.NewBill{
		Name:      name,
		Amount:    decimal.RequireFromString("89.90"),
		DueDate:   due,
		Frequency: bill.FrequencyMonthly,
		Category:  category,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return b
}

func TestBillsTogglePaidCreatesOutflow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	internet := createBill(t, f, "Internet", epoch.Add(72*time.Hour), "")

	toggled, err := f.bills.TogglePaid(ctx, internet.ID, true)
	if err != nil {
		t.Fatalf("TogglePaid: %v", err)
	}
	if !toggled.IsPaid {
		t.Fatal("bill not paid after toggle")
	}

	txs, _ := f.ledger.Query(ctx, nil)
	if len(txs) != 1 {
		t.Fatalf("transactions = %d, want 1", len(txs))
	}
	tx := txs[0]
	if tx.Type != transaction.TypeOutflow || tx.Description != "Pago: Internet" || tx.Category != bill.DefaultCategory {
		t.Fatalf("transaction = %+v", tx)
	}
	if !tx.Amount.Equal(decimal.RequireFromString("89.90")) {
		t.Fatalf("Amount = %s", tx.Amount)
	}

	toggled, err = f.bills.TogglePaid(ctx, internet.ID, true)
	if err != nil {
		t.Fatalf("TogglePaid back: %v", err)
	}
	if toggled.IsPaid {
		t.Fatal("bill still paid after second toggle")
	}
	if n := f.transactionCount(t); n != 1 {
		t.Fatalf("transactions after unpaying = %d, want 1", n)
	}
}

func TestBillsTogglePaidUsesBillCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rent := createBill(t, f, "Aluguel", epoch, "Imóvel")

	if _, err := f.bills.TogglePaid(ctx, rent.ID, true); err != nil {
		t.Fatalf("TogglePaid: %v", err)
	}
	txs, _ := f.ledger.Query(ctx, nil)
	if len(txs) != 1 || txs[0].Category != "Imóvel" {
		t.Fatalf("transactions = %+v", txs)
	}
}

func TestBillsTogglePaidWithoutTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	water := createBill(t, f, "Água", epoch, "")

	toggled, err := f.bills.TogglePaid(ctx, water.ID, false)
	if err != nil {
		t.Fatalf("TogglePaid: %v", err)
	}
	if !toggled.IsPaid {
		t.Fatal("bill not paid after toggle")
	}
	if n := f.transactionCount(t); n != 0 {
		t.Fatalf("transactions = %d, want 0", n)
	}
}

func TestBillsTogglePaidNotFound(t *testing.T) {
	f := newFixture(t)
	if _, err := f.bills.TogglePaid(context.Background(), "missing", true); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("TogglePaid = %v, want not found", err)
	}
}

func TestBillsTogglePaidLedgerFailureKeepsToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	power := createBill(t, f, "Luz", epoch, "")

	f.store.failPuts(storage.KeyTransactions, true)
	toggled, err := f.bills.TogglePaid(ctx, power.ID, true)
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("TogglePaid = %v, want store error", err)
	}
	if toggled == nil || !toggled.IsPaid {
		t.Fatalf("toggled = %+v, want paid bill alongside the error", toggled)
	}
	f.store.failPuts(storage.KeyTransactions, false)

	stored, _ := f.bills.Get(ctx, power.ID)
	if !stored.IsPaid {
		t.Fatal("toggle was not persisted")
	}
	if n := f.transactionCount(t); n != 0 {
		t.Fatalf("transactions = %d, want 0", n)
	}
}

func TestBillsList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	createBill(t, f, "Internet", epoch.Add(72*time.Hour), "Serviços")
	power := createBill(t, f, "Luz", epoch.Add(24*time.Hour), "Serviços")
	yearly, err := f.bills.Create(ctx, bill.NewBill{
		Name:      "IPTU",
		Amount:    decimal.NewFromInt(1200),
		DueDate:   epoch.Add(48 * time.Hour),
		Frequency: bill.FrequencyYearly,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	f.bills.TogglePaid(ctx, power.ID, false)

	all, _ := f.bills.List(ctx, nil)
	if got := billNames(all); !equalStrings(got, []string{"Luz", "IPTU", "Internet"}) {
		t.Fatalf("List order = %v", got)
	}

	unpaid := false
	tests := []struct {
		name   string
		filter bill.Filter
		want   []string
	}{
		{"unpaid", bill.Filter{IsPaid: &unpaid}, []string{"IPTU", "Internet"}},
		{"frequency", bill.Filter{Frequency: bill.FrequencyYearly}, []string{yearly.Name}},
		{"search category", bill.Filter{SearchTerm: "serviços"}, []string{"Luz", "Internet"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.bills.List(ctx, &tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if names := billNames(got); !equalStrings(names, tt.want) {
				t.Fatalf("List = %v, want %v", names, tt.want)
			}
		})
	}
}

func TestBillsUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	internet := createBill(t, f, "Internet", epoch, "")

	amount := decimal.NewFromInt(99)
	once := bill.FrequencyOnce
	updated, err := f.bills.Update(ctx, internet.ID, bill.Patch{Amount: &amount, Frequency: &once})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.Amount.Equal(amount) || updated.Frequency != bill.FrequencyOnce || updated.Name != "Internet" {
		t.Fatalf("updated = %+v", updated)
	}

	weekly := bill.Frequency("weekly")
	if _, err := f.bills.Update(ctx, internet.ID, bill.Patch{Frequency: &weekly}); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Update invalid frequency = %v, want validation error", err)
	}
	if _, err := f.bills.Update(ctx, "missing", bill.Patch{Amount: &amount}); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Update missing = %v, want not found", err)
	}

	if err := f.bills.Delete(ctx, internet.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.bills.Delete(ctx, internet.ID); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if _, err := f.bills.Get(ctx, internet.ID); !errors.Is(err, bill.ErrBillNotFound) {
		t.Fatalf("Get after Delete = %v", err)
	}
}

func TestBillsSubscribe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	updates := make(chan []bill.Bill, 4)
	unsubscribe, err := f.bills.Subscribe(ctx, func(bills []bill.Bill) { updates <- bills })
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer unsubscribe()

	receive(t, updates)
	createBill(t, f, "Internet", epoch, "")
	if got := receive(t, updates); len(got) != 1 || got[0].Name != "Internet" {
		t.Fatalf("after Create = %+v", got)
	}
}

func billNames(bills []bill.Bill) []string {
	names := make([]string, len(bills))
	for i, b := range bills {
		names[i] = b.Name
	}
	return names
}
