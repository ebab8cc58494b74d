package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/erp-caixa/internal/domain/product"
	"github.com/hugohenrick/erp-caixa/pkg/apperror"
	"github.com/shopspring/decimal"
)

func createShirt(t *testing.T, f *fixture) *product.Product {
	t.Helper()
	p, err := f.catalog.Create(context.Background(), product.NewProduct{
		Name:        "Shirt",
		Price:       decimal.NewFromInt(20),
		Category:    "Roupas",
		HasVariants: true,
		Variants:    []product.Variant{{Name: "S", Quantity: 5}, {Name: "M", Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return p
}

func TestCatalogCreateWithVariants(t *testing.T) {
	f := newFixture(t)
	p := createShirt(t, f)

	if p.TotalQuantity != 8 {
		t.Fatalf("TotalQuantity = %d, want 8", p.TotalQuantity)
	}
	if p.ID == "" || p.Variants[0].ID == "" || p.Variants[1].ID == "" {
		t.Fatalf("ids not assigned: %+v", p)
	}
	if p.Variants[0].ID == p.Variants[1].ID || p.Variants[0].ID == p.ID {
		t.Fatalf("ids not unique: %+v", p)
	}
	if !p.CreatedAt.Equal(epoch) || !p.UpdatedAt.Equal(epoch) {
		t.Fatalf("timestamps = %v / %v, want %v", p.CreatedAt, p.UpdatedAt, epoch)
	}
}

func TestCatalogCreateStandaloneTrims(t *testing.T) {
	f := newFixture(t)
	p, err := f.catalog.Create(context.Background(), product.NewProduct{
		Name:               "  Caneca ",
		Description:        " branca ",
		Price:              decimal.NewFromInt(12),
		StandaloneQuantity: 4,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Name != "Caneca" || p.Description != "branca" {
		t.Fatalf("strings not trimmed: %q %q", p.Name, p.Description)
	}
	if p.TotalQuantity != 4 {
		t.Fatalf("TotalQuantity = %d, want 4", p.TotalQuantity)
	}
}

func TestCatalogCreateRejectsNegativePrice(t *testing.T) {
	f := newFixture(t)
	_, err := f.catalog.Create(context.Background(), product.NewProduct{Name: "x", Price: decimal.NewFromInt(-1)})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Create = %v, want validation error", err)
	}
}

func TestCatalogListSortAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.catalog.Create(ctx, product.NewProduct{Name: "Arroz", Category: "Mercearia", StandaloneQuantity: 50})
	f.clock.Advance(time.Minute)
	f.catalog.Create(ctx, product.NewProduct{Name: "Feijão", Category: "Mercearia", StandaloneQuantity: 3})
	f.clock.Advance(time.Minute)
	f.catalog.Create(ctx, product.NewProduct{Name: "Sabão", Category: "Limpeza", StandaloneQuantity: 10})

	all, err := f.catalog.List(ctx, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Sabão" || all[2].Name != "Arroz" {
		t.Fatalf("List order = %v", names(all))
	}

	low, _ := f.catalog.List(ctx, &product.Filter{LowStock: true})
	if len(low) != 2 {
		t.Fatalf("low stock = %v, want Sabão and Feijão", names(low))
	}

	both, _ := f.catalog.List(ctx, &product.Filter{LowStock: true, Category: "Mercearia"})
	if len(both) != 1 || both[0].Name != "Feijão" {
		t.Fatalf("composed filter = %v", names(both))
	}

	search, _ := f.catalog.List(ctx, &product.Filter{SearchTerm: "LIMP"})
	if len(search) != 1 || search[0].Name != "Sabão" {
		t.Fatalf("search = %v", names(search))
	}

	// atualizar move o produto para o topo
	f.clock.Advance(time.Minute)
	price := decimal.NewFromInt(7)
	f.catalog.Update(ctx, all[2].ID, product.Patch{Price: &price})
	all, _ = f.catalog.List(ctx, nil)
	if all[0].Name != "Arroz" {
		t.Fatalf("List order after update = %v", names(all))
	}
}

func TestCatalogUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, _ := f.catalog.Create(ctx, product.NewProduct{Name: "Caneca", StandaloneQuantity: 4})

	f.clock.Advance(time.Hour)
	qty := 9
	updated, err := f.catalog.Update(ctx, p.ID, product.Patch{StandaloneQuantity: &qty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.TotalQuantity != 9 {
		t.Fatalf("TotalQuantity = %d, want 9", updated.TotalQuantity)
	}
	if !updated.UpdatedAt.Equal(epoch.Add(time.Hour)) {
		t.Fatalf("UpdatedAt = %v", updated.UpdatedAt)
	}

	// sem quantidade no patch o total atual é mantido
	name := "Caneca azul"
	updated, _ = f.catalog.Update(ctx, p.ID, product.Patch{Name: &name})
	if updated.TotalQuantity != 9 {
		t.Fatalf("TotalQuantity after name change = %d, want 9", updated.TotalQuantity)
	}

	// passar a ter variantes faz o total seguir as variantes
	has := true
	variants := []product.Variant{{Name: "Azul", Quantity: 2}, {Name: "Verde", Quantity: 1}}
	updated, _ = f.catalog.Update(ctx, p.ID, product.Patch{HasVariants: &has, Variants: &variants})
	if updated.TotalQuantity != 3 {
		t.Fatalf("TotalQuantity with variants = %d, want 3", updated.TotalQuantity)
	}

	stored, _ := f.catalog.Get(ctx, p.ID)
	if stored.TotalQuantity != 3 || len(stored.Variants) != 2 || stored.Variants[0].ID == "" {
		t.Fatalf("stored product = %+v", stored)
	}

	if _, err := f.catalog.Update(ctx, "missing", product.Patch{Name: &name}); !errors.Is(err, product.ErrProductNotFound) {
		t.Fatalf("Update(missing) = %v, want ErrProductNotFound", err)
	}
}

func TestCatalogUpdateVariantQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := createShirt(t, f)

	updated, err := f.catalog.UpdateVariantQuantity(ctx, p.ID, p.Variants[1].ID, -7)
	if err != nil {
		t.Fatalf("UpdateVariantQuantity: %v", err)
	}
	if updated.Variants[1].Quantity != 0 {
		t.Fatalf("variant quantity = %d, want clamp to 0", updated.Variants[1].Quantity)
	}
	if updated.TotalQuantity != 5 {
		t.Fatalf("TotalQuantity = %d, want 5", updated.TotalQuantity)
	}

	if _, err := f.catalog.UpdateVariantQuantity(ctx, "missing", p.Variants[0].ID, 1); !errors.Is(err, product.ErrProductNotFound) {
		t.Fatalf("missing product = %v", err)
	}
	if _, err := f.catalog.UpdateVariantQuantity(ctx, p.ID, "missing", 1); !errors.Is(err, product.ErrVariantNotFound) {
		t.Fatalf("missing variant = %v", err)
	}
}

func TestCatalogDeleteIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := createShirt(t, f)

	if err := f.catalog.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.catalog.Delete(ctx, p.ID); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if _, err := f.catalog.Get(ctx, p.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Get after delete = %v", err)
	}
}

func TestCatalogCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, c := range []string{"Limpeza", "", "Bebidas", "Limpeza", " Açougue "} {
		f.catalog.Create(ctx, product.NewProduct{Name: "p", Category: c})
	}
	got, err := f.catalog.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	want := []string{"Açougue", "Bebidas", "Limpeza"}
	if len(got) != len(want) {
		t.Fatalf("Categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Categories = %v, want %v", got, want)
		}
	}
}

func TestCatalogSubscribe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	createShirt(t, f)

	updates := make(chan []product.Product, 8)
	unsubscribe, err := f.catalog.Subscribe(ctx, func(items []product.Product) { updates <- items })
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	select {
	case first := <-updates:
		if len(first) != 1 {
			t.Fatalf("initial callback got %d products, want 1", len(first))
		}
	default:
		t.Fatal("callback not invoked synchronously on subscribe")
	}

	f.catalog.Create(ctx, product.NewProduct{Name: "Boné"})
	if got := receive(t, updates); len(got) != 2 {
		t.Fatalf("callback after change got %d products, want 2", len(got))
	}

	// outras coleções não acordam o assinante do catálogo
	f.debts.Create(ctx, debtInput("Acme", epoch.Add(time.Hour)))
	select {
	case <-updates:
		t.Fatal("catalog subscriber woken by debts change")
	case <-time.After(100 * time.Millisecond):
	}

	unsubscribe()
	unsubscribe()
	f.catalog.Create(ctx, product.NewProduct{Name: "Meia"})
	select {
	case <-updates:
		t.Fatal("callback invoked after unsubscribe")
	case <-time.After(100 * time.Millisecond):
	}
}

func names(products []product.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}
