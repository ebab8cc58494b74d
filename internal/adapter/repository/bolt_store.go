package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hugohenrick/erp-caixa/internal/domain/storage"
	"github.com/hugohenrick/erp-caixa/pkg/notify"
	"go.etcd.io/bbolt"
)

var collectionsBucket = []byte("collections")

// BoltStore implementa storage.Store sobre um arquivo bbolt local
type BoltStore struct {
	db  *bbolt.DB
	hub *notify.Hub
}

var _ storage.Store = (*BoltStore)(nil)

// NewBoltStore abre (ou cria) o arquivo em path
func NewBoltStore(path string) (*BoltStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("erro ao criar diretório de dados: %w", err)
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir arquivo bbolt: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(collectionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao criar bucket: %w", err)
	}

	return &BoltStore{db: db, hub: notify.NewHub()}, nil
}

// Get implementa storage.Store.Get
func (s *BoltStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(collectionsBucket).Get([]byte(key))
		if raw != nil {
			// o slice retornado pelo bbolt só é válido dentro da transação
			value = append([]byte(nil), raw...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao ler chave %s: %w", key, err)
	}
	return value, nil
}

// Put implementa storage.Store.Put
func (s *BoltStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(collectionsBucket).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("erro ao gravar chave %s: %w", key, err)
	}

	s.hub.Publish(notify.Event{Key: key, Value: append([]byte(nil), value...)})
	return nil
}

// OnChange implementa storage.Store.OnChange
func (s *BoltStore) OnChange(key string, handler notify.Handler) func() {
	return s.hub.Subscribe(key, handler)
}

// Close implementa storage.Store.Close
func (s *BoltStore) Close() error {
	return s.db.Close()
}
