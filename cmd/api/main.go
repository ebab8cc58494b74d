package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hugohenrick/erp-caixa/internal/infrastructure/config"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
	"github.com/joho/godotenv"
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

	appLogger, err := logger.NewLogger(logger.Config{
		Mode:       cfg.LogMode,
		FileEnable: cfg.LogFileEnable,
		Filename:   cfg.LogFilename,
	})
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	if zl, ok := appLogger.(*logger.ZapLogger); ok {
		defer zl.Sync()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Criar aplicação
	app, err := NewApp(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("erro ao inicializar aplicação", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	// Iniciar o servidor
	if err := app.Run(ctx); err != nil {
		appLogger.Error("aplicação encerrada com erro", "error", err)
		os.Exit(1)
	}
	appLogger.Info("aplicação encerrada")
}
