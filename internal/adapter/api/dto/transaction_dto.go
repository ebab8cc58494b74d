package dto

import (
	"github.com/hugohenrick/erp-caixa/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// TransactionItemRequest representa um item vendido informado manualmente
type TransactionItemRequest struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name" binding:"required"`
	Quantity    int             `json:"quantity"`
	VariantName string          `json:"variant_name"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
}

// TransactionRequest representa a requisição de lançamento manual
type TransactionRequest struct {
	Type          transaction.Type         `json:"type" binding:"required" enums:"inflow,outflow"`
	Description   string                   `json:"description"`
	Amount        decimal.Decimal          `json:"amount" swaggertype:"string" example:"150.00"`
	Category      string                   `json:"category"`
	PaymentMethod string                   `json:"payment_method"`
	Items         []TransactionItemRequest `json:"items"`
}

// TransactionListResponse representa a listagem de lançamentos
type TransactionListResponse struct {
	Transactions []transaction.Transaction `json:"transactions"`
	Total        int                       `json:"total"`
}

// ToNewTransaction converte a requisição para o domínio
func (r TransactionRequest) ToNewTransaction() transaction.NewTransaction {
	var items []transaction.Item
	for _, item := range r.Items {
		items = append(items, transaction.Item{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			VariantName: item.VariantName,
			Price:       item.Price,
		})
	}
	return transaction.NewTransaction{
		Type:          r.Type,
		Description:   r.Description,
		Amount:        r.Amount,
		Category:      r.Category,
		PaymentMethod: r.PaymentMethod,
		Items:         items,
	}
}

// ToTransactionListResponse monta a resposta de listagem
func ToTransactionListResponse(txs []transaction.Transaction) TransactionListResponse {
	return TransactionListResponse{Transactions: txs, Total: len(txs)}
}
