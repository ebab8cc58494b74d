package database

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
)

// Direction indica o sentido da migração
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// RunMigrations aplica (ou desfaz) as migrações de migrationsPath no banco databaseURL
func RunMigrations(databaseURL, migrationsPath string, direction Direction, log logger.Logger) error {
	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return fmt.Errorf("erro ao resolver caminho das migrações: %w", err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absPath), databaseURL)
	if err != nil {
		return fmt.Errorf("erro ao criar migrate: %w", err)
	}
	defer m.Close()

	switch direction {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return fmt.Errorf("direção de migração desconhecida: %q", direction)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("nenhuma migração pendente", "direction", direction)
		return nil
	}
	if err != nil {
		return fmt.Errorf("erro ao aplicar migrações (%s): %w", direction, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("erro ao ler versão do schema: %w", err)
	}
	log.Info("migrações aplicadas", "direction", direction, "version", version, "dirty", dirty)
	return nil
}
