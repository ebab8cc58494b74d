package dto

import "github.com/hugohenrick/erp-caixa/internal/service"

// SaleItemRequest representa uma linha da venda
type SaleItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	VariantID string `json:"variant_id"`
}

// SaleRequest representa a requisição de venda
type SaleRequest struct {
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	Category      string            `json:"category"`
	PaymentMethod string            `json:"payment_method"`
}

// ToSaleRequest converte a requisição para o serviço de checkout
func (r SaleRequest) ToSaleRequest() service.SaleRequest {
	items := make([]service.SaleItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, service.SaleItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			VariantID: item.VariantID,
		})
	}
	return service.SaleRequest{
		Items:         items,
		Category:      r.Category,
		PaymentMethod: r.PaymentMethod,
	}
}
