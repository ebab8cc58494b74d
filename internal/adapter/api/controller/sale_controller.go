package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-caixa/internal/service"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
)

// SaleController gerencia o registro de vendas
type SaleController struct {
	checkout *service.Checkout
	logger   logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(checkout *service.Checkout, logger logger.Logger) *SaleController {
	return &SaleController{
		checkout: checkout,
		logger:   logger,
	}
}

// Create registra uma venda
// @Summary Registrar venda
// @Description Baixa o estoque de cada item e lança uma entrada no caixa com o total
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.SaleRequest true "Itens da venda"
// @Success 201 {object} transaction.Transaction
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [post]
func (c *SaleController) Create(ctx *gin.Context) {
	var req dto.SaleRequest
	if !bindJSON(ctx, &req) {
		return
	}

	tx, err := c.checkout.Sell(ctx, req.ToSaleRequest())
	if err != nil {
		respondError(ctx, c.logger, "erro ao registrar venda", err)
		return
	}

	ctx.JSON(http.StatusCreated, tx)
}
