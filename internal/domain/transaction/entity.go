package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/erp-caixa/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrTransactionNotFound = fmt.Errorf("transação não encontrada: %w", apperror.ErrNotFound)
	ErrInvalidType         = fmt.Errorf("tipo de transação inválido: %w", apperror.ErrValidation)
	ErrNegativeAmount      = fmt.Errorf("valor não pode ser negativo: %w", apperror.ErrValidation)
)

// Type define a direção do fluxo de caixa
type Type string

const (
	TypeInflow  Type = "inflow"  // Entrada
	TypeOutflow Type = "outflow" // Saída
)

// IsValid verifica se o tipo é conhecido
func (t Type) IsValid() bool {
	return t == TypeInflow || t == TypeOutflow
}

// Item é o retrato de um item vendido no momento da venda
type Item struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	VariantName string          `json:"variant_name,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// Subtotal retorna preço × quantidade
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Transaction representa um lançamento imutável do livro caixa
type Transaction struct {
	ID            string          `json:"id"`
	Type          Type            `json:"type"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Timestamp     time.Time       `json:"timestamp"`
	Category      string          `json:"category,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Items         []Item          `json:"items,omitempty"`
}

// NewTransaction contém os dados para registrar um lançamento
type NewTransaction struct {
	Type          Type
	Description   string
	Amount        decimal.Decimal
	Category      string
	PaymentMethod string
	Items         []Item
}

// Validate verifica tipo e valor
func (n NewTransaction) Validate() error {
	if !n.Type.IsValid() {
		return ErrInvalidType
	}
	if n.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// Build cria o lançamento com id e horário
func (n NewTransaction) Build(id string, now time.Time) Transaction {
	var items []Item
	if len(n.Items) > 0 {
		items = append([]Item(nil), n.Items...)
	}
	return Transaction{
		ID:            id,
		Type:          n.Type,
		Description:   strings.TrimSpace(n.Description),
		Amount:        n.Amount,
		Timestamp:     now,
		Category:      strings.TrimSpace(n.Category),
		PaymentMethod: strings.TrimSpace(n.PaymentMethod),
		Items:         items,
	}
}

// Filter define os filtros de consulta do livro caixa
type Filter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Type       Type
	SearchTerm string
}

// EndOfDay retorna 23:59:59.999 do dia de t, no fuso de t
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Matches verifica se o lançamento atende ao filtro
func (f *Filter) Matches(tx Transaction) bool {
	if f == nil {
		return true
	}
	if f.StartDate != nil && tx.Timestamp.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && tx.Timestamp.After(EndOfDay(*f.EndDate)) {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.SearchTerm)); term != "" {
		if !strings.Contains(strings.ToLower(tx.Description), term) &&
			!strings.Contains(strings.ToLower(tx.Category), term) {
			return false
		}
	}
	return true
}

// Summary totaliza entradas e saídas
type Summary struct {
	TotalInflow  decimal.Decimal `json:"total_inflow"`
	TotalOutflow decimal.Decimal `json:"total_outflow"`
	Balance      decimal.Decimal `json:"balance"`
	Count        int             `json:"count"`
}

// Summarize calcula o resumo de uma lista de lançamentos
func Summarize(txs []Transaction) Summary {
	s := Summary{TotalInflow: decimal.Zero, TotalOutflow: decimal.Zero}
	for _, tx := range txs {
		switch tx.Type {
		case TypeInflow:
			s.TotalInflow = s.TotalInflow.Add(tx.Amount)
		case TypeOutflow:
			s.TotalOutflow = s.TotalOutflow.Add(tx.Amount)
		}
		s.Count++
	}
	s.Balance = s.TotalInflow.Sub(s.TotalOutflow)
	return s
}
