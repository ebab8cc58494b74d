package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
)

// RequestLogger registra uma linha por requisição; respostas 5xx vão para Error
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("requisição falhou", fields...)
		case status >= 400:
			log.Warn("requisição rejeitada", fields...)
		default:
			log.Debug("requisição atendida", fields...)
		}
	}
}
