package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	"github.com/hugohenrick/erp-caixa/docs"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-caixa/internal/adapter/api/route"
	"github.com/hugohenrick/erp-caixa/internal/adapter/repository"
	"github.com/hugohenrick/erp-caixa/internal/domain/storage"
	"github.com/hugohenrick/erp-caixa/internal/infrastructure/config"
	"github.com/hugohenrick/erp-caixa/internal/infrastructure/database"
	"github.com/hugohenrick/erp-caixa/internal/service"
	"github.com/hugohenrick/erp-caixa/pkg/logger"
	"github.com/hugohenrick/erp-caixa/pkg/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App representa a aplicação e suas dependências
type App struct {
	config *config.Config
	logger logger.Logger
	router *gin.Engine
	store  storage.Store
	pool   *pgxpool.Pool
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	app := &App{config: cfg, logger: log}

	if err := app.openStore(ctx); err != nil {
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	app.router = gin.New()
	app.router.Use(gin.Recovery(), middleware.RequestLogger(log))
	app.router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	app.setupRoutes()
	return app, nil
}

// openStore abre o backend de persistência escolhido em STORE_DRIVER
func (a *App) openStore(ctx context.Context) error {
	switch a.config.StoreDriver {
	case config.StoreMemory:
		a.store = repository.NewMemoryStore()
	case config.StoreBolt:
		store, err := repository.NewBoltStore(a.config.BoltPath)
		if err != nil {
			return err
		}
		a.store = store
	case config.StorePostgres:
		pool, err := database.NewPostgresPool(ctx, a.config.Database)
		if err != nil {
			return err
		}
		a.pool = pool
		a.store = repository.NewPostgresStore(pool, a.logger)
	default:
		return fmt.Errorf("driver de armazenamento desconhecido: %q", a.config.StoreDriver)
	}
	a.logger.Info("armazenamento aberto", "driver", a.config.StoreDriver)
	return nil
}

// setupRoutes configura as rotas da aplicação
func (a *App) setupRoutes() {
	deps := service.Deps{Store: a.store, Logger: a.logger}
	catalog := service.NewCatalog(deps)
	ledger := service.NewLedger(deps)
	checkout := service.NewCheckout(catalog, ledger, a.logger)
	debts := service.NewDebts(deps, ledger)
	bills := service.NewBills(deps, ledger)

	api := a.router.Group(a.config.APIBasePath)

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": docs.SwaggerInfo.Version,
			"store":   a.config.StoreDriver,
		})
	})

	route.RegisterProductRoutes(api, controller.NewProductController(catalog, a.logger))
	route.RegisterSaleRoutes(api, controller.NewSaleController(checkout, a.logger))
	route.RegisterTransactionRoutes(api, controller.NewTransactionController(ledger, a.logger))
	route.RegisterDebtRoutes(api, controller.NewDebtController(debts, a.logger))
	route.RegisterBillRoutes(api, controller.NewBillController(bills, a.logger))
	route.RegisterEventRoutes(api, controller.NewEventController(a.store, a.logger))

	docs.SwaggerInfo.BasePath = a.config.APIBasePath
	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Run atende HTTP até ctx ser cancelado. Com o driver postgres, também
// mantém o LISTEN que repassa as gravações de outros processos.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.config.HTTPPort),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("servidor HTTP iniciado", "addr", server.Addr, "base_path", a.config.APIBasePath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("erro no servidor HTTP: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("encerrando servidor HTTP")
		return server.Shutdown(shutdownCtx)
	})

	if pgStore, ok := a.store.(*repository.PostgresStore); ok {
		g.Go(func() error {
			return pgStore.Listen(gctx)
		})
	}

	return g.Wait()
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("erro ao fechar armazenamento", "error", err)
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
