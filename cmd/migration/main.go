package main

import (
	"log"
	"os"

	"github.com/hugohenrick/erp-caixa/internal/infrastructure/config"
	"github.com/hugohenrick/erp-caixa/internal/infrastructure/database"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro na configuração: %v", err)
	}

	var (
		path  = flag.StringP("path", "p", cfg.MigrationsPath, "diretório com os arquivos de migração")
		down  = flag.Bool("down", false, "desfaz todas as migrações em vez de aplicá-las")
		dbURL = flag.String("database-url", cfg.Database.ConnectionString(), "URL de conexão com o PostgreSQL")
	)
	flag.Parse()

	appLogger, err := logger.NewLogger(logger.Config{Mode: cfg.LogMode})
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}

	direction := database.Up
	if *down {
		direction = database.Down
	}

	if err := database.RunMigrations(*dbURL, *path, direction, appLogger); err != nil {
		appLogger.Error("erro ao executar migrações", "error", err)
		os.Exit(1)
	}
}
