package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/controller"
)

// RegisterBillRoutes registra as rotas de contas fixas
func RegisterBillRoutes(r *gin.RouterGroup, billController *controller.BillController) {
	bills := r.Group("/bills")
	{
		bills.GET("", billController.List)
		bills.POST("", billController.Create)
		bills.GET("/:id", billController.Get)
		bills.PUT("/:id", billController.Update)
		bills.DELETE("/:id", billController.Delete)
		bills.POST("/:id/toggle-paid", billController.TogglePaid)
	}
}
