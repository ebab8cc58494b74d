package storage

import (
	"context"

	"github.com/hugohenrick/erp-caixa/pkg/notify"
)

// Chaves fixas sob as quais cada coleção é gravada
const (
	KeyProducts     = "inventory_products"
	KeyTransactions = "cashier_transactions"
	KeyBills        = "app_bills"
	KeyDebts        = "debts"
)

// Keys lista todas as chaves conhecidas
var Keys = []string{KeyProducts, KeyTransactions, KeyBills, KeyDebts}

// IsKnownKey verifica se key é uma das chaves de coleção
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Store define o contrato de persistência: a unidade de gravação é a
// coleção inteira e toda gravação emite um evento de mudança para a chave.
type Store interface {
	// Get retorna o conteúdo serializado da chave, ou nil se nunca foi gravada
	Get(ctx context.Context, key string) ([]byte, error)

	// Put substitui o conteúdo da chave e notifica os assinantes
	Put(ctx context.Context, key string, value []byte) error

	// OnChange registra handler para eventos da chave e retorna a função
	// idempotente de cancelamento
	OnChange(key string, handler notify.Handler) func()

	// Close libera os recursos do store
	Close() error
}
