package storage

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Collection lê e grava uma coleção tipada sob uma chave fixa
type Collection[T any] struct {
	store Store
	key   string
}

// NewCollection cria uma Collection para key
func NewCollection[T any](store Store, key string) Collection[T] {
	return Collection[T]{store: store, key: key}
}

// Key retorna a chave da coleção
func (c Collection[T]) Key() string {
	return c.key
}

// Load lê a coleção inteira. Uma chave ausente resulta em coleção vazia.
func (c Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler coleção %s: %w", c.key, err)
	}
	items := []T{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("erro ao decodificar coleção %s: %w", c.key, err)
	}
	return items, nil
}

// Save grava a coleção inteira
func (c Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("erro ao codificar coleção %s: %w", c.key, err)
	}
	if err := c.store.Put(ctx, c.key, raw); err != nil {
		return fmt.Errorf("erro ao gravar coleção %s: %w", c.key, err)
	}
	return nil
}

// Watch chama onChange após cada mudança da coleção
func (c Collection[T]) Watch(onChange func()) func() {
	return Watch(c.store, c.key, onChange)
}
