package product

import (
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/erp-caixa/pkg/apperror"
	"github.com/shopspring/decimal"
)

// LowStockThreshold é o limite (inclusivo) para o filtro de estoque baixo
const LowStockThreshold = 10

var (
	ErrProductNotFound = fmt.Errorf("produto não encontrado: %w", apperror.ErrNotFound)
	ErrVariantNotFound = fmt.Errorf("variante não encontrada: %w", apperror.ErrNotFound)
	ErrEmptyName       = fmt.Errorf("nome não pode ser vazio: %w", apperror.ErrValidation)
	ErrNegativePrice   = fmt.Errorf("preço não pode ser negativo: %w", apperror.ErrValidation)
	ErrNegativeStock   = fmt.Errorf("quantidade não pode ser negativa: %w", apperror.ErrValidation)
)

// Variant representa uma opção comprável do produto (tamanho, cor...)
type Variant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	SKU      string `json:"sku,omitempty"`
}

// Product representa um produto do catálogo
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Image         string          `json:"image,omitempty"`
	Price         decimal.Decimal `json:"price"`
	TotalQuantity int             `json:"total_quantity"`
	HasVariants   bool            `json:"has_variants"`
	Variants      []Variant       `json:"variants"`
	Category      string          `json:"category,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewProduct contém os dados para criar um produto
type NewProduct struct {
	Name               string
	Price              decimal.Decimal
	Description        string
	Image              string
	Category           string
	HasVariants        bool
	Variants           []Variant
	StandaloneQuantity int
}

// Patch contém a atualização parcial de um produto; campos nil mantêm o valor atual
type Patch struct {
	Name               *string
	Price              *decimal.Decimal
	Description        *string
	Image              *string
	Category           *string
	HasVariants        *bool
	Variants           *[]Variant
	StandaloneQuantity *int
}

// ComputeTotal aplica a regra do estoque total: a soma das variantes quando
// o produto tem variantes, senão a quantidade avulsa.
func ComputeTotal(hasVariants bool, variants []Variant, standalone int) int {
	if hasVariants && len(variants) > 0 {
		return SumVariants(variants)
	}
	return standalone
}

// SumVariants soma as quantidades das variantes
func SumVariants(variants []Variant) int {
	total := 0
	for _, v := range variants {
		total += v.Quantity
	}
	return total
}

// Validate verifica nome, preço e quantidades
func (n NewProduct) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return ErrEmptyName
	}
	if n.Price.IsNegative() {
		return ErrNegativePrice
	}
	if n.StandaloneQuantity < 0 {
		return ErrNegativeStock
	}
	return validateVariants(n.Variants)
}

// Validate verifica os campos presentes no patch
func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price != nil && p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.StandaloneQuantity != nil && *p.StandaloneQuantity < 0 {
		return ErrNegativeStock
	}
	if p.Variants != nil {
		return validateVariants(*p.Variants)
	}
	return nil
}

func validateVariants(variants []Variant) error {
	for _, v := range variants {
		if strings.TrimSpace(v.Name) == "" {
			return fmt.Errorf("variante sem nome: %w", apperror.ErrValidation)
		}
		if v.Quantity < 0 {
			return ErrNegativeStock
		}
	}
	return nil
}

// PrepareVariants normaliza as variantes, atribuindo id às que não têm
func PrepareVariants(variants []Variant, newID func() string) []Variant {
	prepared := make([]Variant, 0, len(variants))
	for _, v := range variants {
		if v.ID == "" {
			v.ID = newID()
		}
		v.Name = strings.TrimSpace(v.Name)
		v.SKU = strings.TrimSpace(v.SKU)
		prepared = append(prepared, v)
	}
	return prepared
}

// Apply aplica o patch sobre o produto e recalcula o estoque total
func (p *Product) Apply(patch Patch, newID func() string, now time.Time) {
	standalone := p.TotalQuantity
	if patch.StandaloneQuantity != nil {
		standalone = *patch.StandaloneQuantity
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Image != nil {
		p.Image = strings.TrimSpace(*patch.Image)
	}
	if patch.Category != nil {
		p.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.HasVariants != nil {
		p.HasVariants = *patch.HasVariants
	}
	if patch.Variants != nil {
		p.Variants = PrepareVariants(*patch.Variants, newID)
	}
	p.TotalQuantity = ComputeTotal(p.HasVariants, p.Variants, standalone)
	p.UpdatedAt = now
}

// FindVariant retorna o índice da variante com id, ou -1
func (p *Product) FindVariant(id string) int {
	for i, v := range p.Variants {
		if v.ID == id {
			return i
		}
	}
	return -1
}

// SetVariantQuantity altera a quantidade da variante (mínimo zero) e
// recalcula o total como a soma das variantes.
func (p *Product) SetVariantQuantity(variantID string, quantity int, now time.Time) error {
	idx := p.FindVariant(variantID)
	if idx < 0 {
		return ErrVariantNotFound
	}
	if quantity < 0 {
		quantity = 0
	}
	p.Variants[idx].Quantity = quantity
	p.TotalQuantity = SumVariants(p.Variants)
	p.UpdatedAt = now
	return nil
}

// IsLowStock verifica se o estoque total está no limite de estoque baixo
func (p *Product) IsLowStock() bool {
	return p.TotalQuantity <= LowStockThreshold
}

// Filter define os filtros de listagem; todos combinados com E lógico
type Filter struct {
	SearchTerm string
	Category   string
	LowStock   bool
}

// Matches verifica se o produto atende ao filtro
func (f *Filter) Matches(p Product) bool {
	if f == nil {
		return true
	}
	if term := strings.ToLower(strings.TrimSpace(f.SearchTerm)); term != "" {
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) &&
			!strings.Contains(strings.ToLower(p.Category), term) {
			return false
		}
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.LowStock && !p.IsLowStock() {
		return false
	}
	return true
}
