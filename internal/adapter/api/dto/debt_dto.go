package dto

import (
	"time"

	"github.com/hugohenrick/erp-caixa/internal/domain/debt"
	"github.com/shopspring/decimal"
)

// DebtRequest representa a requisição de cadastro de dívida
type DebtRequest struct {
	Type         debt.Type       `json:"type" binding:"required" enums:"receivable,payable"`
	Counterparty string          `json:"counterparty" binding:"required"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
	Description  string          `json:"description"`
	DueDate      time.Time       `json:"due_date"`
	Category     string          `json:"category"`
	Notes        string          `json:"notes"`
}

// DebtUpdateRequest representa a atualização parcial de dívida
type DebtUpdateRequest struct {
	Type         *debt.Type       `json:"type"`
	Counterparty *string          `json:"counterparty"`
	Amount       *decimal.Decimal `json:"amount" swaggertype:"string"`
	Description  *string          `json:"description"`
	DueDate      *time.Time       `json:"due_date"`
	Category     *string          `json:"category"`
	Notes        *string          `json:"notes"`
}

// DebtListResponse representa a listagem de dívidas
type DebtListResponse struct {
	Debts []debt.Entry `json:"debts"`
	Total int          `json:"total"`
}

// ToNewDebt converte a requisição para o domínio
func (r DebtRequest) ToNewDebt() debt.NewDebt {
	return debt.NewDebt{
		Type:         r.Type,
		Counterparty: r.Counterparty,
		Amount:       r.Amount,
		Description:  r.Description,
		DueDate:      r.DueDate,
		Category:     r.Category,
		Notes:        r.Notes,
	}
}

// ToPatch converte a requisição para o domínio
func (r DebtUpdateRequest) ToPatch() debt.Patch {
	return debt.Patch{
		Type:         r.Type,
		Counterparty: r.Counterparty,
		Amount:       r.Amount,
		Description:  r.Description,
		DueDate:      r.DueDate,
		Category:     r.Category,
		Notes:        r.Notes,
	}
}

// ToDebtListResponse monta a resposta de listagem
func ToDebtListResponse(entries []debt.Entry) DebtListResponse {
	return DebtListResponse{Debts: entries, Total: len(entries)}
}
