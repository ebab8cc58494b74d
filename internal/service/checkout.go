package service

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-caixa/internal/domain/product"
	"github.com/hugohenrick/erp-caixa/internal/domain/transaction"
	"github.com/hugohenrick/erp-caixa/pkg/apperror"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
	"github.com/shopspring/decimal"
)

// SaleItem é uma linha da venda; VariantID vazio vende o estoque avulso
type SaleItem struct {
	ProductID string
	Quantity  int
	VariantID string
}

// SaleRequest contém as linhas da venda, no máximo uma por produto
type SaleRequest struct {
	Items         []SaleItem
	Category      string
	PaymentMethod string
}

// Checkout registra vendas: baixa o estoque no catálogo e lança a entrada no caixa
type Checkout struct {
	catalog *Catalog
	ledger  *Ledger
	logger  logger.Logger
}

// NewCheckout cria uma nova instância de Checkout
func NewCheckout(catalog *Catalog, ledger *Ledger, log logger.Logger) *Checkout {
	if log == nil {
		log = logger.NewNop()
	}
	return &Checkout{catalog: catalog, ledger: ledger, logger: log}
}

type saleLine struct {
	item      SaleItem
	index     int
	product   product.Product
	variant   *product.Variant
	available int
}

// Sell confere todas as linhas contra o estoque atual e baixa o estoque do
// catálogo em uma única gravação; depois registra um único lançamento de
// entrada. A baixa não é desfeita se o lançamento falhar.
func (c *Checkout) Sell(ctx context.Context, req SaleRequest) (*transaction.Transaction, error) {
	lines, err := c.catalog.takeStock(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	items := make([]transaction.Item, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		item := transaction.Item{
			ProductID:   line.product.ID,
			ProductName: line.product.Name,
			Quantity:    line.item.Quantity,
			Price:       line.product.Price,
		}
		if line.variant != nil {
			item.VariantName = line.variant.Name
		}
		total = total.Add(item.Subtotal())
		items = append(items, item)
	}

	tx, err := c.ledger.Add(ctx, transaction.NewTransaction{
		Type:          transaction.TypeInflow,
		Description:   saleDescription(items),
		Amount:        total,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		Items:         items,
	})
	if err != nil {
		c.logger.Error("estoque baixado mas lançamento da venda falhou", "lines", len(lines), "error", err)
		return nil, fmt.Errorf("erro ao registrar venda: %w", err)
	}

	c.logger.Info("venda registrada", "transaction_id", tx.ID, "lines", len(items), "amount", tx.Amount.String())
	return tx, nil
}

// resolveSale descarta linhas com quantidade zero e confere produto,
// variante e estoque de todas as linhas contra o catálogo carregado.
func resolveSale(all []product.Product, items []SaleItem) ([]saleLine, error) {
	seen := make(map[string]bool)
	lines := make([]saleLine, 0, len(items))

	for _, item := range items {
		if item.Quantity < 0 {
			return nil, fmt.Errorf("quantidade negativa para o produto %s: %w", item.ProductID, apperror.ErrValidation)
		}
		if item.Quantity == 0 {
			continue
		}
		if seen[item.ProductID] {
			return nil, fmt.Errorf("produto %s repetido na venda: %w", item.ProductID, apperror.ErrValidation)
		}
		seen[item.ProductID] = true

		idx := indexOfProduct(all, item.ProductID)
		if idx < 0 {
			return nil, product.ErrProductNotFound
		}
		p := all[idx]

		line := saleLine{item: item, index: idx, product: p, available: p.TotalQuantity}
		switch {
		case item.VariantID != "":
			vi := p.FindVariant(item.VariantID)
			if vi < 0 {
				return nil, product.ErrVariantNotFound
			}
			v := p.Variants[vi]
			line.variant = &v
			line.available = v.Quantity
		case p.HasVariants && len(p.Variants) > 0:
			return nil, fmt.Errorf("produto %s exige a escolha de uma variante: %w", p.Name, apperror.ErrValidation)
		}

		if item.Quantity > line.available {
			return nil, fmt.Errorf("%s: disponível %d, solicitado %d: %w",
				p.Name, line.available, item.Quantity, apperror.ErrInsufficientStock)
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("venda sem itens: %w", apperror.ErrValidation)
	}
	return lines, nil
}

func saleDescription(items []transaction.Item) string {
	if len(items) == 1 {
		desc := "Venta: " + items[0].ProductName
		if items[0].Quantity > 1 {
			desc += fmt.Sprintf(" x%d", items[0].Quantity)
		}
		return desc
	}
	return fmt.Sprintf("Venta: %d productos", len(items))
}
