package repository

import (
	"context"
	"sync"

	"github.com/hugohenrick/erp-caixa/internal/domain/storage"
	"github.com/hugohenrick/erp-caixa/pkg/notify"
)

// MemoryStore implementa storage.Store em memória
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
	hub  *notify.Hub
}

var _ storage.Store = (*MemoryStore)(nil)

// NewMemoryStore cria uma nova instância de MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
		hub:  notify.NewHub(),
	}
}

// Get implementa storage.Store.Get
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), raw...), nil
}

// Put implementa storage.Store.Put
func (s *MemoryStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := append([]byte(nil), value...)
	s.mu.Lock()
	s.data[key] = stored
	s.mu.Unlock()

	s.hub.Publish(notify.Event{Key: key, Value: append([]byte(nil), stored...)})
	return nil
}

// OnChange implementa storage.Store.OnChange
func (s *MemoryStore) OnChange(key string, handler notify.Handler) func() {
	return s.hub.Subscribe(key, handler)
}

// Close implementa storage.Store.Close
func (s *MemoryStore) Close() error {
	return nil
}
