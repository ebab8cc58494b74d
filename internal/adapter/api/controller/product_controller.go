package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-caixa/internal/domain/product"
	"github.com/hugohenrick/erp-caixa/internal/service"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
)

// ProductController gerencia as requisições relacionadas ao catálogo
type ProductController struct {
	catalog *service.Catalog
	logger  logger.Logger
}

// NewProductController cria uma nova instância de ProductController
func NewProductController(catalog *service.Catalog, logger logger.Logger) *ProductController {
	return &ProductController{
		catalog: catalog,
		logger:  logger,
	}
}

// List retorna os produtos do catálogo
// @Summary Listar produtos
// @Description Retorna os produtos, do mais recentemente alterado ao mais antigo
// @Tags products
// @Produce json
// @Param search query string false "Busca por nome, descrição ou categoria"
// @Param category query string false "Categoria exata"
// @Param low_stock query bool false "Apenas produtos com estoque baixo"
// @Success 200 {object} dto.ProductListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [get]
func (c *ProductController) List(ctx *gin.Context) {
	lowStock, err := queryBool(ctx, "low_stock")
	if err != nil {
		respondError(ctx, c.logger, "parâmetro low_stock inválido", err)
		return
	}
	filter := &product.Filter{
		SearchTerm: ctx.Query("search"),
		Category:   ctx.Query("category"),
		LowStock:   lowStock != nil && *lowStock,
	}

	products, err := c.catalog.List(ctx, filter)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar produtos", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductListResponse(products))
}

// Categories retorna as categorias em uso
// @Summary Listar categorias
// @Tags products
// @Produce json
// @Success 200 {object} dto.CategoryListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/categories [get]
func (c *ProductController) Categories(ctx *gin.Context) {
	categories, err := c.catalog.Categories(ctx)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar categorias", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryListResponse{Categories: categories})
}

// Get retorna um produto pelo ID
// @Summary Buscar produto
// @Tags products
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} product.Product
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	p, err := c.catalog.Get(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar produto", err)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

// Create cria um novo produto
// @Summary Criar produto
// @Description Cria um produto; com variantes, o estoque total é a soma delas
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 201 {object} product.Product
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.ProductRequest
	if !bindJSON(ctx, &req) {
		return
	}

	p, err := c.catalog.Create(ctx, req.ToNewProduct())
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar produto", err)
		return
	}

	ctx.JSON(http.StatusCreated, p)
}

// Update atualiza parcialmente um produto
// @Summary Atualizar produto
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID do produto"
// @Param product body dto.ProductUpdateRequest true "Campos a alterar"
// @Success 200 {object} product.Product
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	var req dto.ProductUpdateRequest
	if !bindJSON(ctx, &req) {
		return
	}

	p, err := c.catalog.Update(ctx, ctx.Param("id"), req.ToPatch())
	if err != nil {
		respondError(ctx, c.logger, "erro ao atualizar produto", err)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

// Delete remove um produto
// @Summary Excluir produto
// @Tags products
// @Param id path string true "ID do produto"
// @Success 204
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	if err := c.catalog.Delete(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, "erro ao excluir produto", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UpdateVariantQuantity define o estoque de uma variante
// @Summary Definir estoque da variante
// @Description Quantidades negativas são gravadas como zero
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID do produto"
// @Param variantId path string true "ID da variante"
// @Param quantity body dto.VariantQuantityRequest true "Nova quantidade"
// @Success 200 {object} product.Product
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id}/variants/{variantId}/quantity [patch]
func (c *ProductController) UpdateVariantQuantity(ctx *gin.Context) {
	var req dto.VariantQuantityRequest
	if !bindJSON(ctx, &req) {
		return
	}

	p, err := c.catalog.UpdateVariantQuantity(ctx, ctx.Param("id"), ctx.Param("variantId"), *req.Quantity)
	if err != nil {
		respondError(ctx, c.logger, "erro ao atualizar estoque da variante", err)
		return
	}

	ctx.JSON(http.StatusOK, p)
}
