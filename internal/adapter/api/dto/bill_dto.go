package dto

import (
	"time"

	"github.com/hugohenrick/erp-caixa/internal/domain/bill"
	"github.com/shopspring/decimal"
)

// BillRequest representa a requisição de cadastro de conta
type BillRequest struct {
	Name      string          `json:"name" binding:"required"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"89.90"`
	DueDate   time.Time       `json:"due_date"`
	Frequency bill.Frequency  `json:"frequency" binding:"required" enums:"once,monthly,yearly"`
	Category  string          `json:"category"`
	Notes     string          `json:"notes"`
	IsPaid    bool            `json:"is_paid"`
}

// BillUpdateRequest representa a atualização parcial de conta
type BillUpdateRequest struct {
	Name      *string          `json:"name"`
	Amount    *decimal.Decimal `json:"amount" swaggertype:"string"`
	DueDate   *time.Time       `json:"due_date"`
	Frequency *bill.Frequency  `json:"frequency"`
	Category  *string          `json:"category"`
	Notes     *string          `json:"notes"`
	IsPaid    *bool            `json:"is_paid"`
}

// BillListResponse representa a listagem de contas
type BillListResponse struct {
	Bills []bill.Bill `json:"bills"`
	Total int         `json:"total"`
}

// ToNewBill converte a requisição para o domínio
func (r BillRequest) ToNewBill() bill.NewBill {
	return bill.NewBill{
		Name:      r.Name,
		Amount:    r.Amount,
		DueDate:   r.DueDate,
		Frequency: r.Frequency,
		Category:  r.Category,
		Notes:     r.Notes,
		IsPaid:    r.IsPaid,
	}
}

// ToPatch converte a requisição para o domínio
func (r BillUpdateRequest) ToPatch() bill.Patch {
	return bill.Patch{
		Name:      r.Name,
		Amount:    r.Amount,
		DueDate:   r.DueDate,
		Frequency: r.Frequency,
		Category:  r.Category,
		Notes:     r.Notes,
		IsPaid:    r.IsPaid,
	}
}

// ToBillListResponse monta a resposta de listagem
func ToBillListResponse(bills []bill.Bill) BillListResponse {
	return BillListResponse{Bills: bills, Total: len(bills)}
}
