package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/controller"
)

// RegisterEventRoutes registra o stream de mudanças das coleções
func RegisterEventRoutes(r *gin.RouterGroup, eventController *controller.EventController) {
	r.GET("/events/:key", eventController.Stream)
}
