package service

import (
	"context"
	"sort"
	"sync"

	"github.com/hugohenrick/erp-caixa/internal/domain/storage"
	"github.com/hugohenrick/erp-caixa/internal/domain/transaction"
)

// Ledger é o livro caixa: só aceita novos lançamentos, nunca altera ou remove
type Ledger struct {
	deps         Deps
	transactions storage.Collection[transaction.Transaction]
	mu           sync.Mutex
}

// NewLedger cria uma nova instância de Ledger
func NewLedger(deps Deps) *Ledger {
	deps = deps.withDefaults()
	return &Ledger{
		deps:         deps,
		transactions: storage.NewCollection[transaction.Transaction](deps.Store, storage.KeyTransactions),
	}
}

// Add registra um novo lançamento
func (l *Ledger) Add(ctx context.Context, input transaction.NewTransaction) (*transaction.Transaction, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.transactions.Load(ctx)
	if err != nil {
		return nil, err
	}
	tx := input.Build(l.deps.IDs.NewID(), l.deps.Clock.Now())

	if err := l.transactions.Save(ctx, append(all, tx)); err != nil {
		l.deps.Logger.Error("erro ao registrar lançamento", "error", err)
		return nil, err
	}
	l.deps.Logger.Info("lançamento registrado", "id", tx.ID, "type", tx.Type, "amount", tx.Amount.String())
	return &tx, nil
}

// Query retorna os lançamentos filtrados, do mais recente ao mais antigo
func (l *Ledger) Query(ctx context.Context, filter *transaction.Filter) ([]transaction.Transaction, error) {
	all, err := l.transactions.Load(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]transaction.Transaction, 0, len(all))
	for _, tx := range all {
		if filter.Matches(tx) {
			result = append(result, tx)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

// Get busca um lançamento pelo ID
func (l *Ledger) Get(ctx context.Context, id string) (*transaction.Transaction, error) {
	all, err := l.transactions.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, transaction.ErrTransactionNotFound
}

// Summary totaliza entradas, saídas e saldo dos lançamentos filtrados
func (l *Ledger) Summary(ctx context.Context, filter *transaction.Filter) (transaction.Summary, error) {
	txs, err := l.Query(ctx, filter)
	if err != nil {
		return transaction.Summary{}, err
	}
	return transaction.Summarize(txs), nil
}

// Subscribe entrega os lançamentos atuais e os repete a cada mudança
// Gravações próximas podem resultar em uma única chamada com o estado mais recente.
func (l *Ledger) Subscribe(ctx context.Context, callback func([]transaction.Transaction)) (func(), error) {
	list := func(ctx context.Context) ([]transaction.Transaction, error) { return l.Query(ctx, nil) }
	return subscribe(ctx, l.transactions, l.deps.Logger, list, callback)
}
