package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-caixa/internal/domain/bill"
	"github.com/hugohenrick/erp-caixa/internal/service"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
)

// BillController gerencia as requisições de contas fixas
type BillController struct {
	bills  *service.Bills
	logger logger.Logger
}

// NewBillController cria uma nova instância de BillController
func NewBillController(bills *service.Bills, logger logger.Logger) *BillController {
	return &BillController{
		bills:  bills,
		logger: logger,
	}
}

// List retorna as contas
// @Summary Listar contas
// @Tags bills
// @Produce json
// @Param is_paid query bool false "Filtra por situação de pagamento"
// @Param frequency query string false "once, monthly ou yearly"
// @Param search query string false "Busca por nome, categoria ou observações"
// @Success 200 {object} dto.BillListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /bills [get]
func (c *BillController) List(ctx *gin.Context) {
	isPaid, err := queryBool(ctx, "is_paid")
	if err != nil {
		respondError(ctx, c.logger, "parâmetro is_paid inválido", err)
		return
	}
	filter := &bill.Filter{
		IsPaid:     isPaid,
		Frequency:  bill.Frequency(ctx.Query("frequency")),
		SearchTerm: ctx.Query("search"),
	}

	bills, err := c.bills.List(ctx, filter)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar contas", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillListResponse(bills))
}

// Get retorna uma conta pelo ID
// @Summary Buscar conta
// @Tags bills
// @Produce json
// @Param id path string true "ID da conta"
// @Success 200 {object} bill.Bill
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /bills/{id} [get]
func (c *BillController) Get(ctx *gin.Context) {
	b, err := c.bills.Get(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar conta", err)
		return
	}

	ctx.JSON(http.StatusOK, b)
}

// Create cadastra uma conta
// @Summary Cadastrar conta
// @Tags bills
// @Accept json
// @Produce json
// @Param bill body dto.BillRequest true "Dados da conta"
// @Success 201 {object} bill.Bill
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /bills [post]
func (c *BillController) Create(ctx *gin.Context) {
	var req dto.BillRequest
	if !bindJSON(ctx, &req) {
		return
	}

	b, err := c.bills.Create(ctx, req.ToNewBill())
	if err != nil {
		respondError(ctx, c.logger, "erro ao cadastrar conta", err)
		return
	}

	ctx.JSON(http.StatusCreated, b)
}

// Update atualiza parcialmente uma conta
// @Summary Atualizar conta
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "ID da conta"
// @Param bill body dto.BillUpdateRequest true "Campos a alterar"
// @Success 200 {object} bill.Bill
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /bills/{id} [put]
func (c *BillController) Update(ctx *gin.Context) {
	var req dto.BillUpdateRequest
	if !bindJSON(ctx, &req) {
		return
	}

	b, err := c.bills.Update(ctx, ctx.Param("id"), req.ToPatch())
	if err != nil {
		respondError(ctx, c.logger, "erro ao atualizar conta", err)
		return
	}

	ctx.JSON(http.StatusOK, b)
}

// Delete remove uma conta
// @Summary Excluir conta
// @Tags bills
// @Param id path string true "ID da conta"
// @Success 204
// @Failure 500 {object} dto.ErrorResponse
// @Router /bills/{id} [delete]
func (c *BillController) Delete(ctx *gin.Context) {
	if err := c.bills.Delete(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, "erro ao excluir conta", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// TogglePaid alterna a situação de pagamento
// @Summary Alternar pagamento
// @Description Ao marcar como paga, lança uma saída no caixa, a menos que create_transaction=false.
// @Description Se o lançamento falhar, a conta continua paga e a resposta é 500.
// @Tags bills
// @Produce json
// @Param id path string true "ID da conta"
// @Param create_transaction query bool false "Lançar a saída no caixa (padrão true)"
// @Success 200 {object} bill.Bill
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /bills/{id}/toggle-paid [post]
func (c *BillController) TogglePaid(ctx *gin.Context) {
	createTransaction, err := queryBool(ctx, "create_transaction")
	if err != nil {
		respondError(ctx, c.logger, "parâmetro create_transaction inválido", err)
		return
	}

	b, err := c.bills.TogglePaid(ctx, ctx.Param("id"), createTransaction == nil || *createTransaction)
	if err != nil {
		respondError(ctx, c.logger, "erro ao alternar pagamento da conta", err)
		return
	}

	ctx.JSON(http.StatusOK, b)
}
