package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/controller"
)

// RegisterSaleRoutes registra as rotas de vendas
func RegisterSaleRoutes(r *gin.RouterGroup, saleController *controller.SaleController) {
	r.POST("/sales", saleController.Create)
}
