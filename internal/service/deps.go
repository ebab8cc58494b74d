package service

import (
	"context"

	"github.com/hugohenrick/erp-caixa/internal/domain/storage"
	"github.com/hugohenrick/erp-caixa/pkg/clock"
	"github.com/hugohenrick/erp-caixa/pkg/idgen"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
)

// Deps reúne as dependências comuns a todos os gerenciadores
type Deps struct {
	Store  storage.Store
	IDs    idgen.Generator
	Clock  clock.Clock
	Logger logger.Logger
}

func (d Deps) withDefaults() Deps {
	if d.IDs == nil {
		d.IDs = idgen.UUID{}
	}
	if d.Clock == nil {
		d.Clock = clock.Real()
	}
	if d.Logger == nil {
		d.Logger = logger.NewNop()
	}
	return d
}

// subscribe entrega a lista atual imediatamente e de novo após cada mudança da coleção
func subscribe[T any](ctx context.Context, coll storage.Collection[T], log logger.Logger,
	list func(context.Context) ([]T, error), callback func([]T)) (func(), error) {
	items, err := list(ctx)
	if err != nil {
		return nil, err
	}
	callback(items)

	return coll.Watch(func() {
		items, err := list(context.Background())
		if err != nil {
			log.Error("erro ao reler coleção após mudança", "key", coll.Key(), "error", err)
			return
		}
		callback(items)
	}), nil
}
