package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hugohenrick/erp-caixa/internal/domain/bill"
	"github.com/hugohenrick/erp-caixa/internal/domain/storage"
	"github.com/hugohenrick/erp-caixa/internal/domain/transaction"
)

// Bills gerencia as contas fixas e recorrentes
type Bills struct {
	deps   Deps
	ledger *Ledger
	bills  storage.Collection[bill.Bill]
	mu     sync.Mutex
}

// NewBills cria uma nova instância de Bills. Os pagamentos são lançados em ledger.
func NewBills(deps Deps, ledger *Ledger) *Bills {
	deps = deps.withDefaults()
	return &Bills{
		deps:   deps,
		ledger: ledger,
		bills:  storage.NewCollection[bill.Bill](deps.Store, storage.KeyBills),
	}
}

// List retorna as contas filtradas, do vencimento mais próximo ao mais distante
func (b *Bills) List(ctx context.Context, filter *bill.Filter) ([]bill.Bill, error) {
	all, err := b.bills.Load(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]bill.Bill, 0, len(all))
	for _, item := range all {
		if filter.Matches(item) {
			result = append(result, item)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DueDate.Before(result[j].DueDate)
	})
	return result, nil
}

// Get busca uma conta pelo ID
func (b *Bills) Get(ctx context.Context, id string) (*bill.Bill, error) {
	all, err := b.bills.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOfBill(all, id)
	if idx < 0 {
		return nil, bill.ErrBillNotFound
	}
	return &all[idx], nil
}

// Create cadastra uma conta
func (b *Bills) Create(ctx context.Context, input bill.NewBill) (*bill.Bill, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	all, err := b.bills.Load(ctx)
	if err != nil {
		return nil, err
	}
	item := input.Build(b.deps.IDs.NewID(), b.deps.Clock.Now())

	if err := b.bills.Save(ctx, append(all, item)); err != nil {
		b.deps.Logger.Error("erro ao salvar conta", "error", err)
		return nil, err
	}
	b.deps.Logger.Info("conta cadastrada", "id", item.ID, "frequency", item.Frequency)
	return &item, nil
}

// Update aplica uma atualização parcial
func (b *Bills) Update(ctx context.Context, id string, patch bill.Patch) (*bill.Bill, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	all, err := b.bills.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOfBill(all, id)
	if idx < 0 {
		return nil, bill.ErrBillNotFound
	}
	all[idx].Apply(patch)
	updated := all[idx]

	if err := b.bills.Save(ctx, all); err != nil {
		b.deps.Logger.Error("erro ao atualizar conta", "id", id, "error", err)
		return nil, err
	}
	b.deps.Logger.Info("conta atualizada", "id", id)
	return &updated, nil
}

// Delete remove a conta; remover uma conta inexistente não é erro
func (b *Bills) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	all, err := b.bills.Load(ctx)
	if err != nil {
		return err
	}
	kept := make([]bill.Bill, 0, len(all))
	for _, item := range all {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if err := b.bills.Save(ctx, kept); err != nil {
		b.deps.Logger.Error("erro ao excluir conta", "id", id, "error", err)
		return err
	}
	b.deps.Logger.Info("conta excluída", "id", id)
	return nil
}

// TogglePaid inverte is_paid e grava a conta. Se ela passou a paga e
// createTransaction é verdadeiro, lança a saída no caixa em seguida; uma
// falha nesse lançamento não desfaz a alteração da conta.
func (b *Bills) TogglePaid(ctx context.Context, id string, createTransaction bool) (*bill.Bill, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	all, err := b.bills.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOfBill(all, id)
	if idx < 0 {
		return nil, bill.ErrBillNotFound
	}
	all[idx].IsPaid = !all[idx].IsPaid
	toggled := all[idx]

	if err := b.bills.Save(ctx, all); err != nil {
		b.deps.Logger.Error("erro ao alternar pagamento da conta", "id", id, "error", err)
		return nil, err
	}
	b.deps.Logger.Info("pagamento da conta alternado", "id", id, "is_paid", toggled.IsPaid)

	if toggled.IsPaid && createTransaction {
		_, err := b.ledger.Add(ctx, transaction.NewTransaction{
			Type:        transaction.TypeOutflow,
			Description: toggled.PaymentDescription(),
			Amount:      toggled.Amount,
			Category:    toggled.PaymentCategory(),
		})
		if err != nil {
			b.deps.Logger.Error("conta marcada como paga mas lançamento falhou", "id", id, "error", err)
			return &toggled, fmt.Errorf("conta marcada como paga, erro ao lançar pagamento: %w", err)
		}
	}
	return &toggled, nil
}

// Subscribe entrega as contas atuais e as repete a cada mudança
// Gravações próximas podem resultar em uma única chamada com o estado mais recente.
func (b *Bills) Subscribe(ctx context.Context, callback func([]bill.Bill)) (func(), error) {
	list := func(ctx context.Context) ([]bill.Bill, error) { return b.List(ctx, nil) }
	return subscribe(ctx, b.bills, b.deps.Logger, list, callback)
}

func indexOfBill(all []bill.Bill, id string) int {
	for i := range all {
		if all[i].ID == id {
			return i
		}
	}
	return -1
}
