package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hugohenrick/erp-caixa/internal/domain/product"
	"github.com/hugohenrick/erp-caixa/internal/domain/storage"
	"github.com/hugohenrick/erp-caixa/internal/domain/transaction"
	"github.com/hugohenrick/erp-caixa/pkg/apperror"
	"github.com/shopspring/decimal"
)

func TestSellVariant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shirt := createShirt(t, f)
	small := shirt.Variants[0]

	tx, err := f.checkout.Sell(ctx, SaleRequest{
		Items: []SaleItem{{ProductID: shirt.ID, Quantity: 2, VariantID: small.ID}},
	})
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}

	stored, _ := f.catalog.Get(ctx, shirt.ID)
	if stored.Variants[0].Quantity != 3 {
		t.Fatalf("variant S quantity = %d, want 3", stored.Variants[0].Quantity)
	}
	if stored.TotalQuantity != 6 {
		t.Fatalf("TotalQuantity = %d, want 6", stored.TotalQuantity)
	}

	if tx.Type != transaction.TypeInflow {
		t.Fatalf("Type = %s, want inflow", tx.Type)
	}
	if !tx.Amount.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("Amount = %s, want 40", tx.Amount)
	}
	if tx.Description != "Venta: Shirt x2" {
		t.Fatalf("Description = %q", tx.Description)
	}
	want := transaction.Item{ProductID: shirt.ID, ProductName: "Shirt", Quantity: 2, VariantName: "S", Price: decimal.NewFromInt(20)}
	if len(tx.Items) != 1 {
		t.Fatalf("Items = %+v", tx.Items)
	}
	got := tx.Items[0]
	if got.ProductID != want.ProductID || got.ProductName != want.ProductName || got.Quantity != want.Quantity ||
		got.VariantName != want.VariantName || !got.Price.Equal(want.Price) {
		t.Fatalf("item = %+v, want %+v", got, want)
	}
	if n := f.transactionCount(t); n != 1 {
		t.Fatalf("transactions = %d, want 1", n)
	}
}

func TestSellMultipleItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shirt := createShirt(t, f)
	mug, _ := f.catalog.Create(ctx, product.NewProduct{Name: "Caneca", Price: decimal.RequireFromString("12.50"), StandaloneQuantity: 4})
	hat, _ := f.catalog.Create(ctx, product.NewProduct{Name: "Boné", Price: decimal.NewFromInt(30), StandaloneQuantity: 1})

	tx, err := f.checkout.Sell(ctx, SaleRequest{
		Items: []SaleItem{
			{ProductID: mug.ID, Quantity: 3},
			{ProductID: shirt.ID, Quantity: 1, VariantID: shirt.Variants[1].ID},
			{ProductID: hat.ID, Quantity: 0},
		},
		PaymentMethod: "pix",
	})
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}

	if tx.Description != "Venta: 2 productos" {
		t.Fatalf("Description = %q", tx.Description)
	}
	// 3 × 12.50 + 1 × 20
	if !tx.Amount.Equal(decimal.RequireFromString("57.50")) {
		t.Fatalf("Amount = %s, want 57.50", tx.Amount)
	}
	if tx.PaymentMethod != "pix" {
		t.Fatalf("PaymentMethod = %q", tx.PaymentMethod)
	}
	if len(tx.Items) != 2 || tx.Items[0].ProductName != "Caneca" || tx.Items[1].VariantName != "M" {
		t.Fatalf("Items = %+v", tx.Items)
	}

	storedMug, _ := f.catalog.Get(ctx, mug.ID)
	if storedMug.TotalQuantity != 1 {
		t.Fatalf("mug quantity = %d, want 1", storedMug.TotalQuantity)
	}
	storedShirt, _ := f.catalog.Get(ctx, shirt.ID)
	if storedShirt.Variants[1].Quantity != 2 || storedShirt.TotalQuantity != 7 {
		t.Fatalf("shirt = %+v", storedShirt)
	}
	storedCap, _ := f.catalog.Get(ctx, hat.ID)
	if storedCap.TotalQuantity != 1 {
		t.Fatalf("zero-quantity line changed stock: %d", storedCap.TotalQuantity)
	}
}

func TestSellSingleUnitDescription(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mug, _ := f.catalog.Create(ctx, product.NewProduct{Name: "Caneca", Price: decimal.NewFromInt(10), StandaloneQuantity: 4})

	tx, err := f.checkout.Sell(ctx, SaleRequest{Items: []SaleItem{{ProductID: mug.ID, Quantity: 1}}})
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if tx.Description != "Venta: Caneca" {
		t.Fatalf("Description = %q", tx.Description)
	}
}

func TestSellRejectsBeforeAnyWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shirt := createShirt(t, f)
	mug, _ := f.catalog.Create(ctx, product.NewProduct{Name: "Caneca", Price: decimal.NewFromInt(10), StandaloneQuantity: 4})

	tests := []struct {
		name  string
		items []SaleItem
		want  error
	}{
		{"insufficient stock", []SaleItem{{ProductID: mug.ID, Quantity: 1}, {ProductID: shirt.ID, Quantity: 6, VariantID: shirt.Variants[0].ID}}, apperror.ErrInsufficientStock},
		{"missing product", []SaleItem{{ProductID: mug.ID, Quantity: 1}, {ProductID: "missing", Quantity: 1}}, product.ErrProductNotFound},
		{"missing variant", []SaleItem{{ProductID: mug.ID, Quantity: 1}, {ProductID: shirt.ID, Quantity: 1, VariantID: "missing"}}, product.ErrVariantNotFound},
		{"variant required", []SaleItem{{ProductID: mug.ID, Quantity: 1}, {ProductID: shirt.ID, Quantity: 1}}, apperror.ErrValidation},
		{"duplicate product", []SaleItem{{ProductID: mug.ID, Quantity: 1}, {ProductID: mug.ID, Quantity: 1}}, apperror.ErrValidation},
		{"negative quantity", []SaleItem{{ProductID: mug.ID, Quantity: -1}}, apperror.ErrValidation},
		{"only zero lines", []SaleItem{{ProductID: mug.ID, Quantity: 0}}, apperror.ErrValidation},
		{"empty", nil, apperror.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.checkout.Sell(ctx, SaleRequest{Items: tt.items})
			if !errors.Is(err, tt.want) {
				t.Fatalf("Sell = %v, want %v", err, tt.want)
			}
			storedMug, _ := f.catalog.Get(ctx, mug.ID)
			if storedMug.TotalQuantity != 4 {
				t.Fatalf("mug stock changed to %d", storedMug.TotalQuantity)
			}
			if n := f.transactionCount(t); n != 0 {
				t.Fatalf("transactions = %d, want 0", n)
			}
		})
	}
}

func TestSellLedgerFailureKeepsStockDecrement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mug, _ := f.catalog.Create(ctx, product.NewProduct{Name: "Caneca", Price: decimal.NewFromInt(10), StandaloneQuantity: 4})

	f.store.failPuts(storage.KeyTransactions, true)
	_, err := f.checkout.Sell(ctx, SaleRequest{Items: []SaleItem{{ProductID: mug.ID, Quantity: 3}}})
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("Sell = %v, want store error", err)
	}
	f.store.failPuts(storage.KeyTransactions, false)

	stored, _ := f.catalog.Get(ctx, mug.ID)
	if stored.TotalQuantity != 1 {
		t.Fatalf("stock = %d, want 1 (decrement not rolled back)", stored.TotalQuantity)
	}
	if n := f.transactionCount(t); n != 0 {
		t.Fatalf("transactions = %d, want 0", n)
	}
}

func TestSellConcurrentSalesDecrementExactly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.slowGets(time.Millisecond)

	for round := 0; round < 10; round++ {
		mug, err := f.catalog.Create(ctx, product.NewProduct{Name: "Caneca", Price: decimal.NewFromInt(10), StandaloneQuantity: 10})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = f.checkout.Sell(ctx, SaleRequest{Items: []SaleItem{{ProductID: mug.ID, Quantity: 3}}})
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				t.Fatalf("round %d: Sell: %v", round, err)
			}
		}
		stored, _ := f.catalog.Get(ctx, mug.ID)
		if stored.TotalQuantity != 4 {
			t.Fatalf("round %d: stock = %d, want 4", round, stored.TotalQuantity)
		}
	}
}

func TestSellConcurrentSalesCannotOversell(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.slowGets(time.Millisecond)
	shirt := createShirt(t, f)
	medium := shirt.Variants[1]

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.checkout.Sell(ctx, SaleRequest{
				Items: []SaleItem{{ProductID: shirt.ID, Quantity: 2, VariantID: medium.ID}},
			})
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			if !errors.Is(err, apperror.ErrInsufficientStock) {
				t.Fatalf("Sell = %v, want ErrInsufficientStock", err)
			}
			failed++
		}
	}
	if failed != 1 {
		t.Fatalf("%d of 2 sales failed, want exactly 1", failed)
	}
	stored, _ := f.catalog.Get(ctx, shirt.ID)
	if stored.Variants[1].Quantity != 1 {
		t.Fatalf("variant M quantity = %d, want 1", stored.Variants[1].Quantity)
	}
	if n := f.transactionCount(t); n != 1 {
		t.Fatalf("transactions = %d, want 1", n)
	}
}
