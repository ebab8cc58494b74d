package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hugohenrick/erp-caixa/internal/domain/product"
	"github.com/hugohenrick/erp-caixa/internal/domain/storage"
)

// Catalog gerencia os produtos, suas variantes e o estoque
type Catalog struct {
	deps     Deps
	products storage.Collection[product.Product]
	mu       sync.Mutex
}

// NewCatalog cria uma nova instância de Catalog
func NewCatalog(deps Deps) *Catalog {
	deps = deps.withDefaults()
	return &Catalog{
		deps:     deps,
		products: storage.NewCollection[product.Product](deps.Store, storage.KeyProducts),
	}
}

// List retorna os produtos, do atualizado mais recentemente ao mais antigo
func (c *Catalog) List(ctx context.Context, filter *product.Filter) ([]product.Product, error) {
	all, err := c.products.Load(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]product.Product, 0, len(all))
	for _, p := range all {
		if filter.Matches(p) {
			result = append(result, p)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

// Get busca um produto pelo ID
func (c *Catalog) Get(ctx context.Context, id string) (*product.Product, error) {
	all, err := c.products.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, product.ErrProductNotFound
}

// Create cadastra um novo produto
func (c *Catalog) Create(ctx context.Context, input product.NewProduct) (*product.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.products.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := c.deps.Clock.Now()
	id := c.deps.IDs.NewID()
	variants := product.PrepareVariants(input.Variants, c.deps.IDs.NewID)
	p := product.Product{
		ID:            id,
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		Image:         strings.TrimSpace(input.Image),
		Price:         input.Price,
		TotalQuantity: product.ComputeTotal(input.HasVariants, variants, input.StandaloneQuantity),
		HasVariants:   input.HasVariants,
		Variants:      variants,
		Category:      strings.TrimSpace(input.Category),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := c.products.Save(ctx, append(all, p)); err != nil {
		c.deps.Logger.Error("erro ao salvar produto", "error", err)
		return nil, err
	}
	c.deps.Logger.Info("produto criado", "id", p.ID, "total_quantity", p.TotalQuantity)
	return &p, nil
}

// Update aplica uma atualização parcial e recalcula o estoque total
func (c *Catalog) Update(ctx context.Context, id string, patch product.Patch) (*product.Product, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.products.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOfProduct(all, id)
	if idx < 0 {
		return nil, product.ErrProductNotFound
	}

	all[idx].Apply(patch, c.deps.IDs.NewID, c.deps.Clock.Now())
	updated := all[idx]

	if err := c.products.Save(ctx, all); err != nil {
		c.deps.Logger.Error("erro ao atualizar produto", "id", id, "error", err)
		return nil, err
	}
	c.deps.Logger.Info("produto atualizado", "id", id, "total_quantity", updated.TotalQuantity)
	return &updated, nil
}

// Delete remove o produto; remover um produto inexistente não é erro
func (c *Catalog) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.products.Load(ctx)
	if err != nil {
		return err
	}
	kept := make([]product.Product, 0, len(all))
	for _, p := range all {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	if err := c.products.Save(ctx, kept); err != nil {
		c.deps.Logger.Error("erro ao excluir produto", "id", id, "error", err)
		return err
	}
	c.deps.Logger.Info("produto excluído", "id", id, "existed", len(kept) != len(all))
	return nil
}

// UpdateVariantQuantity altera o estoque de uma variante (mínimo zero)
func (c *Catalog) UpdateVariantQuantity(ctx context.Context, productID, variantID string, quantity int) (*product.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.products.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOfProduct(all, productID)
	if idx < 0 {
		return nil, product.ErrProductNotFound
	}
	if err := all[idx].SetVariantQuantity(variantID, quantity, c.deps.Clock.Now()); err != nil {
		return nil, err
	}
	updated := all[idx]

	if err := c.products.Save(ctx, all); err != nil {
		c.deps.Logger.Error("erro ao atualizar estoque da variante", "id", productID, "variant_id", variantID, "error", err)
		return nil, err
	}
	c.deps.Logger.Info("estoque da variante atualizado", "id", productID, "variant_id", variantID, "total_quantity", updated.TotalQuantity)
	return &updated, nil
}

// takeStock confere e baixa o estoque de todas as linhas de uma venda sob o
// lock do catálogo, gravando a coleção uma única vez.
func (c *Catalog) takeStock(ctx context.Context, items []SaleItem) ([]saleLine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.products.Load(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := resolveSale(all, items)
	if err != nil {
		return nil, err
	}

	now := c.deps.Clock.Now()
	for _, line := range lines {
		p := &all[line.index]
		remaining := line.available - line.item.Quantity
		if line.variant != nil {
			if err := p.SetVariantQuantity(line.variant.ID, remaining, now); err != nil {
				return nil, err
			}
			continue
		}
		p.Apply(product.Patch{StandaloneQuantity: &remaining}, c.deps.IDs.NewID, now)
	}

	if err := c.products.Save(ctx, all); err != nil {
		c.deps.Logger.Error("erro ao baixar estoque da venda", "lines", len(lines), "error", err)
		return nil, fmt.Errorf("erro ao baixar estoque: %w", err)
	}
	c.deps.Logger.Info("estoque baixado para venda", "lines", len(lines))
	return lines, nil
}

// Categories retorna as categorias distintas em ordem alfabética
func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	all, err := c.products.Load(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	categories := []string{}
	for _, p := range all {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// Subscribe entrega a lista atual e a repete a cada mudança no catálogo
// Gravações próximas podem resultar em uma única chamada com o estado mais recente.
func (c *Catalog) Subscribe(ctx context.Context, callback func([]product.Product)) (func(), error) {
	list := func(ctx context.Context) ([]product.Product, error) { return c.List(ctx, nil) }
	return subscribe(ctx, c.products, c.deps.Logger, list, callback)
}

func indexOfProduct(all []product.Product, id string) int {
	for i := range all {
		if all[i].ID == id {
			return i
		}
	}
	return -1
}
