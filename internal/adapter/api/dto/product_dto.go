package dto

import (
	"github.com/hugohenrick/erp-caixa/internal/domain/product"
	"github.com/shopspring/decimal"
)

// VariantRequest representa uma variante na requisição de produto
type VariantRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity"`
	SKU      string `json:"sku"`
}

// ProductRequest representa a requisição de criação de produto
type ProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Price       decimal.Decimal  `json:"price" swaggertype:"string" example:"19.90"`
	Category    string           `json:"category"`
	HasVariants bool             `json:"has_variants"`
	Variants    []VariantRequest `json:"variants"`
	Quantity    int              `json:"quantity"`
}

// ProductUpdateRequest representa a atualização parcial de produto
type ProductUpdateRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Image       *string           `json:"image"`
	Price       *decimal.Decimal  `json:"price" swaggertype:"string"`
	Category    *string           `json:"category"`
	HasVariants *bool             `json:"has_variants"`
	Variants    *[]VariantRequest `json:"variants"`
	Quantity    *int              `json:"quantity"`
}

// VariantQuantityRequest representa a definição do estoque de uma variante
type VariantQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// ProductListResponse representa a listagem de produtos
type ProductListResponse struct {
	Products []product.Product `json:"products"`
	Total    int               `json:"total"`
}

// CategoryListResponse representa a listagem de categorias
type CategoryListResponse struct {
	Categories []string `json:"categories"`
}

func toVariants(req []VariantRequest) []product.Variant {
	variants := make([]product.Variant, 0, len(req))
	for _, v := range req {
		variants = append(variants, product.Variant{ID: v.ID, Name: v.Name, Quantity: v.Quantity, SKU: v.SKU})
	}
	return variants
}

// ToNewProduct converte a requisição para o domínio
func (r ProductRequest) ToNewProduct() product.NewProduct {
	return product.NewProduct{
		Name:               r.Name,
		Price:              r.Price,
		Description:        r.Description,
		Image:              r.Image,
		Category:           r.Category,
		HasVariants:        r.HasVariants,
		Variants:           toVariants(r.Variants),
		StandaloneQuantity: r.Quantity,
	}
}

// ToPatch converte a requisição para o domínio
func (r ProductUpdateRequest) ToPatch() product.Patch {
	patch := product.Patch{
		Name:               r.Name,
		Price:              r.Price,
		Description:        r.Description,
		Image:              r.Image,
		Category:           r.Category,
		HasVariants:        r.HasVariants,
		StandaloneQuantity: r.Quantity,
	}
	if r.Variants != nil {
		variants := toVariants(*r.Variants)
		patch.Variants = &variants
	}
	return patch
}

// ToProductListResponse monta a resposta de listagem
func ToProductListResponse(products []product.Product) ProductListResponse {
	return ProductListResponse{Products: products, Total: len(products)}
}
