package bill

import (
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/erp-caixa/pkg/apperror"
	"github.com/shopspring/decimal"
)

// DefaultCategory é a categoria usada no lançamento quando a conta não tem uma
const DefaultCategory = "Gastos Fijos"

var (
	ErrBillNotFound     = fmt.Errorf("conta não encontrada: %w", apperror.ErrNotFound)
	ErrEmptyName        = fmt.Errorf("nome não pode ser vazio: %w", apperror.ErrValidation)
	ErrNegativeAmount   = fmt.Errorf("valor não pode ser negativo: %w", apperror.ErrValidation)
	ErrInvalidFrequency = fmt.Errorf("frequência inválida: %w", apperror.ErrValidation)
	ErrMissingDueDate   = fmt.Errorf("data de vencimento obrigatória: %w", apperror.ErrValidation)
)

// Frequency define a recorrência da conta
type Frequency string

const (
	FrequencyOnce    Frequency = "once"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// IsValid verifica se a frequência é conhecida
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyOnce, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Bill representa uma conta fixa ou recorrente
type Bill struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   time.Time       `json:"due_date"`
	Frequency Frequency       `json:"frequency"`
	Category  string          `json:"category,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	IsPaid    bool            `json:"is_paid"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentCategory retorna a categoria do lançamento de pagamento
func (b Bill) PaymentCategory() string {
	if b.Category == "" {
		return DefaultCategory
	}
	return b.Category
}

// PaymentDescription retorna a descrição do lançamento de pagamento
func (b Bill) PaymentDescription() string {
	return "Pago: " + b.Name
}

// NewBill contém os dados para cadastrar uma conta
type NewBill struct {
	Name      string
	Amount    decimal.Decimal
	DueDate   time.Time
	Frequency Frequency
	Category  string
	Notes     string
	IsPaid    bool
}

// Validate verifica nome, valor, vencimento e frequência
func (n NewBill) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return ErrEmptyName
	}
	if n.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if n.DueDate.IsZero() {
		return ErrMissingDueDate
	}
	if !n.Frequency.IsValid() {
		return ErrInvalidFrequency
	}
	return nil
}

// Build cria a conta
func (n NewBill) Build(id string, now time.Time) Bill {
	return Bill{
		ID:        id,
		Name:      strings.TrimSpace(n.Name),
		Amount:    n.Amount,
		DueDate:   n.DueDate,
		Frequency: n.Frequency,
		Category:  strings.TrimSpace(n.Category),
		Notes:     strings.TrimSpace(n.Notes),
		IsPaid:    n.IsPaid,
		CreatedAt: now,
	}
}

// Patch contém a atualização parcial de uma conta
type Patch struct {
	Name      *string
	Amount    *decimal.Decimal
	DueDate   *time.Time
	Frequency *Frequency
	Category  *string
	Notes     *string
	IsPaid    *bool
}

// Validate verifica os campos presentes no patch
func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrEmptyName
	}
	if p.Amount != nil && p.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if p.DueDate != nil && p.DueDate.IsZero() {
		return ErrMissingDueDate
	}
	if p.Frequency != nil && !p.Frequency.IsValid() {
		return ErrInvalidFrequency
	}
	return nil
}

// Apply aplica o patch sobre a conta
func (b *Bill) Apply(patch Patch) {
	if patch.Name != nil {
		b.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Amount != nil {
		b.Amount = *patch.Amount
	}
	if patch.DueDate != nil {
		b.DueDate = *patch.DueDate
	}
	if patch.Frequency != nil {
		b.Frequency = *patch.Frequency
	}
	if patch.Category != nil {
		b.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Notes != nil {
		b.Notes = strings.TrimSpace(*patch.Notes)
	}
	if patch.IsPaid != nil {
		b.IsPaid = *patch.IsPaid
	}
}

// Filter define os filtros de listagem
type Filter struct {
	IsPaid     *bool
	Frequency  Frequency
	SearchTerm string
}

// Matches verifica se a conta atende ao filtro
func (f *Filter) Matches(b Bill) bool {
	if f == nil {
		return true
	}
	if f.IsPaid != nil && b.IsPaid != *f.IsPaid {
		return false
	}
	if f.Frequency != "" && b.Frequency != f.Frequency {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.SearchTerm)); term != "" {
		if !strings.Contains(strings.ToLower(b.Name), term) &&
			!strings.Contains(strings.ToLower(b.Category), term) &&
			!strings.Contains(strings.ToLower(b.Notes), term) {
			return false
		}
	}
	return true
}
