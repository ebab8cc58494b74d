package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/controller"
)

// RegisterDebtRoutes registra as rotas de contas a receber e a pagar
func RegisterDebtRoutes(r *gin.RouterGroup, debtController *controller.DebtController) {
	debts := r.Group("/debts")
	{
		debts.GET("", debtController.List)
		debts.POST("", debtController.Create)
		debts.GET("/stats", debtController.Stats)
		debts.GET("/:id", debtController.Get)
		debts.PUT("/:id", debtController.Update)
		debts.DELETE("/:id", debtController.Delete)
		debts.POST("/:id/pay", debtController.Pay)
	}
}
