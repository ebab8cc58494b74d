package controller

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-caixa/internal/domain/storage"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
	jsoniter "github.com/json-iterator/go"
)

// DefaultKeepAlive é o intervalo entre comentários de keep-alive no stream
const DefaultKeepAlive = 25 * time.Second

// ChangeEvent é o dado do evento "change": a chave e o conteúdo atual da coleção
type ChangeEvent struct {
	Key   string              `json:"key"`
	Value jsoniter.RawMessage `json:"value" swaggertype:"object"`
}

// EventController publica as mudanças das coleções via Server-Sent Events
type EventController struct {
	store     storage.Store
	logger    logger.Logger
	keepAlive time.Duration
}

// NewEventController cria uma nova instância de EventController
func NewEventController(store storage.Store, logger logger.Logger) *EventController {
	return &EventController{
		store:     store,
		logger:    logger,
		keepAlive: DefaultKeepAlive,
	}
}

// Stream mantém a conexão aberta e envia um evento "change" com o conteúdo
// atual da coleção a cada gravação da chave
// @Summary Stream de mudanças
// @Description Envia "ready" ao conectar e "change" com {key, value} após cada gravação
// @Tags events
// @Produce text/event-stream
// @Param key path string true "inventory_products, cashier_transactions, app_bills ou debts"
// @Success 200 {string} string "event stream"
// @Failure 404 {object} dto.ErrorResponse
// @Router /events/{key} [get]
func (c *EventController) Stream(ctx *gin.Context) {
	key := ctx.Param("key")
	if !storage.IsKnownKey(key) {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "coleção desconhecida", key))
		return
	}

	changes := make(chan struct{}, 1)
	stop := storage.Watch(c.store, key, func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer stop()

	c.logger.Debug("cliente conectado ao stream", "key", key, "remote", ctx.ClientIP())
	ctx.SSEvent("ready", key)
	ctx.Writer.Flush()

	ticker := time.NewTicker(c.keepAlive)
	defer ticker.Stop()

	done := ctx.Request.Context().Done()
	ctx.Stream(func(w io.Writer) bool {
		select {
		case <-done:
			return false
		case <-changes:
			payload, err := c.changeEvent(ctx.Request.Context(), key)
			if err != nil {
				c.logger.Error("erro ao montar evento de mudança", "key", key, "error", err)
				return false
			}
			ctx.SSEvent("change", payload)
			return true
		case <-ticker.C:
			_, err := io.WriteString(w, ": keep-alive\n\n")
			return err == nil
		}
	})
	c.logger.Debug("cliente desconectado do stream", "key", key)
}

// changeEvent relê a coleção e serializa o evento; gravações agrupadas
// chegam como um único evento com o estado mais recente.
func (c *EventController) changeEvent(ctx context.Context, key string) (string, error) {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if raw == nil {
		raw = []byte("null")
	}
	payload, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(ChangeEvent{Key: key, Value: raw})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}
