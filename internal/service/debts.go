package service

import (
	"context"
	"sort"
	"sync"

	"github.com/hugohenrick/erp-caixa/internal/domain/debt"
	"github.com/hugohenrick/erp-caixa/internal/domain/storage"
	"github.com/hugohenrick/erp-caixa/internal/domain/transaction"
)

// Debts gerencia contas a receber e a pagar
type Debts struct {
	deps   Deps
	ledger *Ledger
	debts  storage.Collection[debt.Entry]
	mu     sync.Mutex
}

// NewDebts cria uma nova instância de Debts. As quitações são lançadas em ledger.
func NewDebts(deps Deps, ledger *Ledger) *Debts {
	deps = deps.withDefaults()
	return &Debts{
		deps:   deps,
		ledger: ledger,
		debts:  storage.NewCollection[debt.Entry](deps.Store, storage.KeyDebts),
	}
}

// List retorna as dívidas com o status avaliado agora, da mais nova à mais antiga
func (d *Debts) List(ctx context.Context, filter *debt.Filter) ([]debt.Entry, error) {
	all, err := d.debts.Load(ctx)
	if err != nil {
		return nil, err
	}
	now := d.deps.Clock.Now()
	result := make([]debt.Entry, 0, len(all))
	for _, e := range all {
		e = e.Evaluated(now)
		if filter.Matches(e) {
			result = append(result, e)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Get busca uma dívida pelo ID, com o status avaliado agora
func (d *Debts) Get(ctx context.Context, id string) (*debt.Entry, error) {
	all, err := d.debts.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOfDebt(all, id)
	if idx < 0 {
		return nil, debt.ErrDebtNotFound
	}
	e := all[idx].Evaluated(d.deps.Clock.Now())
	return &e, nil
}

// Create registra uma dívida; vencimento no passado já nasce vencida
func (d *Debts) Create(ctx context.Context, input debt.NewDebt) (*debt.Entry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	all, err := d.debts.Load(ctx)
	if err != nil {
		return nil, err
	}
	e := input.Build(d.deps.IDs.NewID(), d.deps.Clock.Now())

	if err := d.debts.Save(ctx, append(all, e)); err != nil {
		d.deps.Logger.Error("erro ao salvar dívida", "error", err)
		return nil, err
	}
	d.deps.Logger.Info("dívida registrada", "id", e.ID, "type", e.Type, "status", e.Status)
	return &e, nil
}

// Update aplica uma atualização parcial
func (d *Debts) Update(ctx context.Context, id string, patch debt.Patch) (*debt.Entry, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	all, err := d.debts.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOfDebt(all, id)
	if idx < 0 {
		return nil, debt.ErrDebtNotFound
	}
	all[idx].Apply(patch, d.deps.Clock.Now())
	updated := all[idx]

	if err := d.debts.Save(ctx, all); err != nil {
		d.deps.Logger.Error("erro ao atualizar dívida", "id", id, "error", err)
		return nil, err
	}
	d.deps.Logger.Info("dívida atualizada", "id", id, "status", updated.Status)
	return &updated, nil
}

// Delete remove a dívida; remover uma dívida inexistente não é erro
func (d *Debts) Delete(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	all, err := d.debts.Load(ctx)
	if err != nil {
		return err
	}
	kept := make([]debt.Entry, 0, len(all))
	for _, e := range all {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if err := d.debts.Save(ctx, kept); err != nil {
		d.deps.Logger.Error("erro ao excluir dívida", "id", id, "error", err)
		return err
	}
	d.deps.Logger.Info("dívida excluída", "id", id)
	return nil
}

// MarkAsPaid quita a dívida. O lançamento no caixa é criado antes e a
// dívida só é gravada como paga depois que ele existe.
func (d *Debts) MarkAsPaid(ctx context.Context, id string) (*debt.Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	all, err := d.debts.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOfDebt(all, id)
	if idx < 0 {
		return nil, debt.ErrDebtNotFound
	}
	e := all[idx]
	if e.Status == debt.StatusPaid {
		return nil, debt.ErrAlreadyPaid
	}

	txType := transaction.TypeOutflow
	if e.Type == debt.TypeReceivable {
		txType = transaction.TypeInflow
	}
	tx, err := d.ledger.Add(ctx, transaction.NewTransaction{
		Type:        txType,
		Description: e.SettlementDescription(),
		Amount:      e.Amount,
		Category:    e.Category,
	})
	if err != nil {
		d.deps.Logger.Error("erro ao lançar quitação", "id", id, "error", err)
		return nil, err
	}

	all[idx].MarkPaid(tx.ID, d.deps.Clock.Now())
	paid := all[idx]

	if err := d.debts.Save(ctx, all); err != nil {
		// o lançamento já existe; a dívida continua em aberto
		d.deps.Logger.Error("lançamento criado mas dívida não foi marcada como paga",
			"id", id, "transaction_id", tx.ID, "error", err)
		return nil, err
	}
	d.deps.Logger.Info("dívida quitada", "id", id, "transaction_id", tx.ID)
	return &paid, nil
}

// Stats agrega as dívidas em aberto com o status avaliado agora
func (d *Debts) Stats(ctx context.Context) (debt.Stats, error) {
	entries, err := d.List(ctx, nil)
	if err != nil {
		return debt.Stats{}, err
	}
	return debt.ComputeStats(entries), nil
}

// Subscribe entrega as dívidas atuais e as repete a cada mudança
// Gravações próximas podem resultar em uma única chamada com o estado mais recente.
func (d *Debts) Subscribe(ctx context.Context, callback func([]debt.Entry)) (func(), error) {
	list := func(ctx context.Context) ([]debt.Entry, error) { return d.List(ctx, nil) }
	return subscribe(ctx, d.debts, d.deps.Logger, list, callback)
}

func indexOfDebt(all []debt.Entry, id string) int {
	for i := range all {
		if all[i].ID == id {
			return i
		}
	}
	return -1
}
