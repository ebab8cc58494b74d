package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-caixa/internal/domain/debt"
	"github.com/hugohenrick/erp-caixa/internal/service"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
)

// DebtController gerencia as requisições de contas a receber e a pagar
type DebtController struct {
	debts  *service.Debts
	logger logger.Logger
}

// NewDebtController cria uma nova instância de DebtController
func NewDebtController(debts *service.Debts, logger logger.Logger) *DebtController {
	return &DebtController{
		debts:  debts,
		logger: logger,
	}
}

// List retorna as dívidas
// @Summary Listar dívidas
// @Description O status vencida é calculado no momento da consulta
// @Tags debts
// @Produce json
// @Param type query string false "receivable ou payable"
// @Param status query string false "pending, paid ou overdue"
// @Param search query string false "Busca por contraparte, descrição ou categoria"
// @Success 200 {object} dto.DebtListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /debts [get]
func (c *DebtController) List(ctx *gin.Context) {
	filter := &debt.Filter{
		Type:       debt.Type(ctx.Query("type")),
		Status:     debt.Status(ctx.Query("status")),
		SearchTerm: ctx.Query("search"),
	}

	entries, err := c.debts.List(ctx, filter)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar dívidas", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDebtListResponse(entries))
}

// Stats agrega as dívidas em aberto
// @Summary Estatísticas de dívidas
// @Tags debts
// @Produce json
// @Success 200 {object} debt.Stats
// @Failure 500 {object} dto.ErrorResponse
// @Router /debts/stats [get]
func (c *DebtController) Stats(ctx *gin.Context) {
	stats, err := c.debts.Stats(ctx)
	if err != nil {
		respondError(ctx, c.logger, "erro ao calcular estatísticas", err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// Get retorna uma dívida pelo ID
// @Summary Buscar dívida
// @Tags debts
// @Produce json
// @Param id path string true "ID da dívida"
// @Success 200 {object} debt.Entry
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /debts/{id} [get]
func (c *DebtController) Get(ctx *gin.Context) {
	entry, err := c.debts.Get(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar dívida", err)
		return
	}

	ctx.JSON(http.StatusOK, entry)
}

// Create registra uma dívida
// @Summary Registrar dívida
// @Tags debts
// @Accept json
// @Produce json
// @Param debt body dto.DebtRequest true "Dados da dívida"
// @Success 201 {object} debt.Entry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /debts [post]
func (c *DebtController) Create(ctx *gin.Context) {
	var req dto.DebtRequest
	if !bindJSON(ctx, &req) {
		return
	}

	entry, err := c.debts.Create(ctx, req.ToNewDebt())
	if err != nil {
		respondError(ctx, c.logger, "erro ao registrar dívida", err)
		return
	}

	ctx.JSON(http.StatusCreated, entry)
}

// Update atualiza parcialmente uma dívida
// @Summary Atualizar dívida
// @Description O status não é alterável por aqui; use a quitação
// @Tags debts
// @Accept json
// @Produce json
// @Param id path string true "ID da dívida"
// @Param debt body dto.DebtUpdateRequest true "Campos a alterar"
// @Success 200 {object} debt.Entry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /debts/{id} [put]
func (c *DebtController) Update(ctx *gin.Context) {
	var req dto.DebtUpdateRequest
	if !bindJSON(ctx, &req) {
		return
	}

	entry, err := c.debts.Update(ctx, ctx.Param("id"), req.ToPatch())
	if err != nil {
		respondError(ctx, c.logger, "erro ao atualizar dívida", err)
		return
	}

	ctx.JSON(http.StatusOK, entry)
}

// Delete remove uma dívida
// @Summary Excluir dívida
// @Tags debts
// @Param id path string true "ID da dívida"
// @Success 204
// @Failure 500 {object} dto.ErrorResponse
// @Router /debts/{id} [delete]
func (c *DebtController) Delete(ctx *gin.Context) {
	if err := c.debts.Delete(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, "erro ao excluir dívida", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Pay quita uma dívida
// @Summary Quitar dívida
// @Description Lança a entrada (a receber) ou saída (a pagar) no caixa e marca a dívida como paga
// @Tags debts
// @Produce json
// @Param id path string true "ID da dívida"
// @Success 200 {object} debt.Entry
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /debts/{id}/pay [post]
func (c *DebtController) Pay(ctx *gin.Context) {
	entry, err := c.debts.MarkAsPaid(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao quitar dívida", err)
		return
	}

	ctx.JSON(http.StatusOK, entry)
}
