package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/controller"
)

// RegisterTransactionRoutes registra as rotas do livro caixa; não há alteração nem exclusão
func RegisterTransactionRoutes(r *gin.RouterGroup, transactionController *controller.TransactionController) {
	transactions := r.Group("/transactions")
	{
		transactions.GET("", transactionController.List)
		transactions.POST("", transactionController.Create)
		transactions.GET("/summary", transactionController.Summary)
		transactions.GET("/:id", transactionController.Get)
	}
}
