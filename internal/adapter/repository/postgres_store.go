package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/erp-caixa/internal/domain/storage"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
	"github.com/hugohenrick/erp-caixa/pkg/notify"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChangeChannel é o canal LISTEN/NOTIFY usado para anunciar gravações
const ChangeChannel = "erp_caixa_changes"

// PostgresStore implementa storage.Store sobre a tabela kv_store. Cada
// gravação é publicada aos assinantes locais após o commit e emite
// pg_notify na mesma transação; Listen converte as notificações de outros
// processos em eventos locais. Com Listen ativo, uma gravação local chega
// duas vezes aos assinantes, que apenas relêem a coleção.
type PostgresStore struct {
	db     *pgxpool.Pool
	hub    *notify.Hub
	logger logger.Logger
}

var _ storage.Store = (*PostgresStore)(nil)

// NewPostgresStore cria uma nova instância de PostgresStore
func NewPostgresStore(db *pgxpool.Pool, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		hub:    notify.NewHub(),
		logger: log,
	}
}

// Get implementa storage.Store.Get
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx, "SELECT value FROM kv_store WHERE key = $1", key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao ler chave %s: %w", key, err)
	}
	return value, nil
}

// Put implementa storage.Store.Put
func (s *PostgresStore) Put(ctx context.Context, key string, value []byte) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("erro ao gravar chave %s: %w", key, err)
	}

	if _, err := tx.Exec(ctx, "SELECT pg_notify($1, $2)", ChangeChannel, key); err != nil {
		return fmt.Errorf("erro ao notificar mudança de %s: %w", key, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("erro ao fazer commit: %w", err)
	}

	s.hub.Publish(notify.Event{Key: key, Value: append([]byte(nil), value...)})
	return nil
}

// OnChange implementa storage.Store.OnChange
func (s *PostgresStore) OnChange(key string, handler notify.Handler) func() {
	return s.hub.Subscribe(key, handler)
}

// Listen mantém uma conexão dedicada em LISTEN até ctx ser cancelado,
// reconectando após falhas.
func (s *PostgresStore) Listen(ctx context.Context) error {
	for {
		err := s.listenOnce(ctx)
		if ctx.Err() != nil {
			return nil
		}
		s.logger.Warn("conexão de notificações perdida, reconectando", "error", err)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(2 * time.Second):
		}
	}
}

func (s *PostgresStore) listenOnce(ctx context.Context) error {
	conn, err := s.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("erro ao adquirir conexão do pool: %w", err)
	}
	defer releaseListener(conn, s.logger)

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ChangeChannel}.Sanitize()); err != nil {
		return fmt.Errorf("erro ao executar LISTEN: %w", err)
	}
	s.logger.Info("aguardando notificações de mudança", "channel", ChangeChannel)

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		value, err := s.Get(ctx, n.Payload)
		if err != nil {
			s.logger.Error("erro ao reler coleção notificada", "key", n.Payload, "error", err)
			continue
		}
		s.hub.Publish(notify.Event{Key: n.Payload, Value: value})
	}
}

// releaseListener cancela as assinaturas antes de devolver a conexão ao
// pool; se o UNLISTEN falhar a conexão é fechada e não volta ao pool.
func releaseListener(conn *pgxpool.Conn, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := conn.Exec(ctx, "UNLISTEN *"); err != nil {
		log.Debug("descartando conexão de notificações", "error", err)
		raw := conn.Hijack()
		_ = raw.Close(ctx)
		return
	}
	conn.Release()
}

// Close implementa storage.Store.Close. O pool pertence ao chamador.
func (s *PostgresStore) Close() error {
	return nil
}
