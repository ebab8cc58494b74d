package debt

import (
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/erp-caixa/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrDebtNotFound   = fmt.Errorf("dívida não encontrada: %w", apperror.ErrNotFound)
	ErrAlreadyPaid    = fmt.Errorf("dívida já está marcada como paga: %w", apperror.ErrAlreadyPaid)
	ErrInvalidType    = fmt.Errorf("tipo de dívida inválido: %w", apperror.ErrValidation)
	ErrEmptyParty     = fmt.Errorf("contraparte não pode ser vazia: %w", apperror.ErrValidation)
	ErrNegativeAmount = fmt.Errorf("valor não pode ser negativo: %w", apperror.ErrValidation)
	ErrMissingDueDate = fmt.Errorf("data de vencimento obrigatória: %w", apperror.ErrValidation)
)

// Type define se a dívida é a receber ou a pagar
type Type string

const (
	TypeReceivable Type = "receivable" // A receber
	TypePayable    Type = "payable"    // A pagar
)

// IsValid verifica se o tipo é conhecido
func (t Type) IsValid() bool {
	return t == TypeReceivable || t == TypePayable
}

// Status representa o estado da dívida
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Entry representa uma conta a receber ou a pagar
type Entry struct {
	ID                  string          `json:"id"`
	Type                Type            `json:"type"`
	Counterparty        string          `json:"counterparty"`
	Amount              decimal.Decimal `json:"amount"`
	Description         string          `json:"description"`
	DueDate             time.Time       `json:"due_date"`
	Status              Status          `json:"status"`
	CreatedAt           time.Time       `json:"created_at"`
	Category            string          `json:"category,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	PaidAt              *time.Time      `json:"paid_at,omitempty"`
	LinkedTransactionID string          `json:"linked_transaction_id,omitempty"`
}

// DeriveStatus calcula o status efetivo: uma dívida pendente com
// vencimento no passado está vencida. Os demais estados não mudam.
func DeriveStatus(status Status, dueDate, now time.Time) Status {
	if status == StatusPending && dueDate.Before(now) {
		return StatusOverdue
	}
	return status
}

// Evaluated retorna uma cópia com o status derivado em now
func (e Entry) Evaluated(now time.Time) Entry {
	e.Status = DeriveStatus(e.Status, e.DueDate, now)
	return e
}

// IsOpen verifica se a dívida ainda não foi quitada
func (e Entry) IsOpen() bool {
	return e.Status != StatusPaid
}

// MarkPaid leva a dívida ao estado terminal, vinculada ao lançamento
func (e *Entry) MarkPaid(transactionID string, now time.Time) {
	paidAt := now
	e.Status = StatusPaid
	e.PaidAt = &paidAt
	e.LinkedTransactionID = transactionID
}

// SettlementDescription retorna a descrição do lançamento de quitação
func (e Entry) SettlementDescription() string {
	prefix := "Pago"
	if e.Type == TypeReceivable {
		prefix = "Cobro"
	}
	return fmt.Sprintf("%s: %s - %s", prefix, e.Counterparty, e.Description)
}

// NewDebt contém os dados para registrar uma dívida
type NewDebt struct {
	Type         Type
	Counterparty string
	Amount       decimal.Decimal
	Description  string
	DueDate      time.Time
	Category     string
	Notes        string
}

// Validate verifica tipo, contraparte, valor e vencimento
func (n NewDebt) Validate() error {
	if !n.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(n.Counterparty) == "" {
		return ErrEmptyParty
	}
	if n.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if n.DueDate.IsZero() {
		return ErrMissingDueDate
	}
	return nil
}

// Build cria a dívida com status inicial derivado do vencimento
func (n NewDebt) Build(id string, now time.Time) Entry {
	return Entry{
		ID:           id,
		Type:         n.Type,
		Counterparty: strings.TrimSpace(n.Counterparty),
		Amount:       n.Amount,
		Description:  strings.TrimSpace(n.Description),
		DueDate:      n.DueDate,
		Status:       DeriveStatus(StatusPending, n.DueDate, now),
		CreatedAt:    now,
		Category:     strings.TrimSpace(n.Category),
		Notes:        strings.TrimSpace(n.Notes),
	}
}

// Patch contém a atualização parcial; o status só muda via quitação
type Patch struct {
	Type         *Type
	Counterparty *string
	Amount       *decimal.Decimal
	Description  *string
	DueDate      *time.Time
	Category     *string
	Notes        *string
}

// Validate verifica os campos presentes no patch
func (p Patch) Validate() error {
	if p.Type != nil && !p.Type.IsValid() {
		return ErrInvalidType
	}
	if p.Counterparty != nil && strings.TrimSpace(*p.Counterparty) == "" {
		return ErrEmptyParty
	}
	if p.Amount != nil && p.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if p.DueDate != nil && p.DueDate.IsZero() {
		return ErrMissingDueDate
	}
	return nil
}

// Apply aplica o patch. O status é normalizado para o valor derivado e,
// se o vencimento mudou com a dívida pendente, é derivado de novo contra a
// nova data; uma dívida vencida nunca volta a pendente.
func (e *Entry) Apply(patch Patch, now time.Time) {
	e.Status = DeriveStatus(e.Status, e.DueDate, now)

	if patch.Type != nil {
		e.Type = *patch.Type
	}
	if patch.Counterparty != nil {
		e.Counterparty = strings.TrimSpace(*patch.Counterparty)
	}
	if patch.Amount != nil {
		e.Amount = *patch.Amount
	}
	if patch.Description != nil {
		e.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		e.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Notes != nil {
		e.Notes = strings.TrimSpace(*patch.Notes)
	}
	if patch.DueDate != nil && !patch.DueDate.Equal(e.DueDate) {
		e.DueDate = *patch.DueDate
		e.Status = DeriveStatus(e.Status, e.DueDate, now)
	}
}

// Filter define os filtros de listagem
type Filter struct {
	Type       Type
	Status     Status
	SearchTerm string
}

// Matches verifica se a dívida (já avaliada) atende ao filtro
func (f *Filter) Matches(e Entry) bool {
	if f == nil {
		return true
	}
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.SearchTerm)); term != "" {
		if !strings.Contains(strings.ToLower(e.Counterparty), term) &&
			!strings.Contains(strings.ToLower(e.Description), term) &&
			!strings.Contains(strings.ToLower(e.Category), term) {
			return false
		}
	}
	return true
}

// Stats agrega as dívidas em aberto
type Stats struct {
	TotalReceivable    decimal.Decimal `json:"total_receivable"`
	TotalPayable       decimal.Decimal `json:"total_payable"`
	OverdueReceivables int             `json:"overdue_receivables"`
	OverduePayables    int             `json:"overdue_payables"`
	NetBalance         decimal.Decimal `json:"net_balance"`
	PendingCount       int             `json:"pending_count"`
}

// ComputeStats agrega uma lista de dívidas já avaliadas
func ComputeStats(entries []Entry) Stats {
	s := Stats{TotalReceivable: decimal.Zero, TotalPayable: decimal.Zero}
	for _, e := range entries {
		if !e.IsOpen() {
			continue
		}
		s.PendingCount++
		overdue := e.Status == StatusOverdue
		switch e.Type {
		case TypeReceivable:
			s.TotalReceivable = s.TotalReceivable.Add(e.Amount)
			if overdue {
				s.OverdueReceivables++
			}
		case TypePayable:
			s.TotalPayable = s.TotalPayable.Add(e.Amount)
			if overdue {
				s.OverduePayables++
			}
		}
	}
	s.NetBalance = s.TotalReceivable.Sub(s.TotalPayable)
	return s
}
