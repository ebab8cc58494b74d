package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-caixa/internal/domain/transaction"
	"github.com/hugohenrick/erp-caixa/internal/service"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
)

// TransactionController gerencia as requisições do livro caixa
type TransactionController struct {
	ledger *service.Ledger
	logger logger.Logger
}

// NewTransactionController cria uma nova instância de TransactionController
func NewTransactionController(ledger *service.Ledger, logger logger.Logger) *TransactionController {
	return &TransactionController{
		ledger: ledger,
		logger: logger,
	}
}

func (c *TransactionController) filterFromQuery(ctx *gin.Context) (*transaction.Filter, error) {
	start, err := dto.ParseDate(ctx.Query("start_date"))
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseDate(ctx.Query("end_date"))
	if err != nil {
		return nil, err
	}
	return &transaction.Filter{
		StartDate:  start,
		EndDate:    end,
		Type:       transaction.Type(ctx.Query("type")),
		SearchTerm: ctx.Query("search"),
	}, nil
}

// List consulta os lançamentos
// @Summary Listar lançamentos
// @Description Retorna os lançamentos do mais recente ao mais antigo; end_date inclui o dia inteiro
// @Tags transactions
// @Produce json
// @Param start_date query string false "Data inicial (2006-01-02 ou RFC 3339)"
// @Param end_date query string false "Data final (2006-01-02 ou RFC 3339)"
// @Param type query string false "inflow ou outflow"
// @Param search query string false "Busca por descrição ou categoria"
// @Success 200 {object} dto.TransactionListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions [get]
func (c *TransactionController) List(ctx *gin.Context) {
	filter, err := c.filterFromQuery(ctx)
	if err != nil {
		respondError(ctx, c.logger, "filtro inválido", err)
		return
	}

	txs, err := c.ledger.Query(ctx, filter)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar lançamentos", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(txs))
}

// Summary totaliza os lançamentos
// @Summary Resumo do caixa
// @Tags transactions
// @Produce json
// @Param start_date query string false "Data inicial"
// @Param end_date query string false "Data final"
// @Param type query string false "inflow ou outflow"
// @Param search query string false "Busca por descrição ou categoria"
// @Success 200 {object} transaction.Summary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/summary [get]
func (c *TransactionController) Summary(ctx *gin.Context) {
	filter, err := c.filterFromQuery(ctx)
	if err != nil {
		respondError(ctx, c.logger, "filtro inválido", err)
		return
	}

	summary, err := c.ledger.Summary(ctx, filter)
	if err != nil {
		respondError(ctx, c.logger, "erro ao calcular resumo", err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// Get retorna um lançamento pelo ID
// @Summary Buscar lançamento
// @Tags transactions
// @Produce json
// @Param id path string true "ID do lançamento"
// @Success 200 {object} transaction.Transaction
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions/{id} [get]
func (c *TransactionController) Get(ctx *gin.Context) {
	tx, err := c.ledger.Get(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar lançamento", err)
		return
	}

	ctx.JSON(http.StatusOK, tx)
}

// Create registra um lançamento manual
// @Summary Registrar lançamento
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.TransactionRequest true "Dados do lançamento"
// @Success 201 {object} transaction.Transaction
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions [post]
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.TransactionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	tx, err := c.ledger.Add(ctx, req.ToNewTransaction())
	if err != nil {
		respondError(ctx, c.logger, "erro ao registrar lançamento", err)
		return
	}

	ctx.JSON(http.StatusCreated, tx)
}
