package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-caixa/pkg/apperror"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
	"github.com/spf13/cast"
)

// statusFor traduz o tipo do erro para o status HTTP
func statusFor(err error) int {
	switch apperror.Kind(err) {
	case apperror.ErrNotFound:
		return http.StatusNotFound
	case apperror.ErrAlreadyPaid, apperror.ErrInsufficientStock:
		return http.StatusConflict
	case apperror.ErrValidation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError escreve a resposta de erro; só os erros internos são logados
func respondError(ctx *gin.Context, log logger.Logger, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(message, "path", ctx.FullPath(), "error", err)
	}
	ctx.JSON(status, dto.NewErrorResponse(status, message, err.Error()))
}

// bindJSON decodifica o corpo e responde 400 em caso de falha
func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return false
	}
	return true
}

// queryBool lê um parâmetro booleano; ausente retorna nil
func queryBool(ctx *gin.Context, name string) (*bool, error) {
	raw, ok := ctx.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := cast.ToBoolE(raw)
	if err != nil {
		return nil, errors.Join(apperror.ErrValidation, err)
	}
	return &value, nil
}
