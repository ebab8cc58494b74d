package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/controller"
)

// RegisterProductRoutes registra as rotas do catálogo de produtos
func RegisterProductRoutes(r *gin.RouterGroup, productController *controller.ProductController) {
	products := r.Group("/products")
	{
		products.GET("", productController.List)
		products.POST("", productController.Create)
		products.GET("/categories", productController.Categories)
		products.GET("/:id", productController.Get)
		products.PUT("/:id", productController.Update)
		products.DELETE("/:id", productController.Delete)
		products.PATCH("/:id/variants/:variantId/quantity", productController.UpdateVariantQuantity)
	}
}
