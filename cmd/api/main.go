package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Kardex-api/internal/application/analytics"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/memory"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Kardex-api/internal/interfaces/http"
	"github.com/jhoicas/Kardex-api/pkg/config"
	"github.com/jhoicas/Kardex-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("stock_policy", cfg.Ledger.StockPolicy).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Store seleccionable: PostgreSQL (transaccional) o memoria (modo dev,
	// layout posicional de hoja de cálculo, sin atomicidad entre tablas).
	var (
		txRunner ledger.TxRunner
		txRepo   repository.TransactionRepository
		invRepo  repository.InventoryRepository
	)
	if cfg.Store.Driver == "memory" {
		store := memory.NewStore()
		txRunner = memory.NewTxRunner(store)
		txRepo = store.Transactions()
		invRepo = store.Inventory()
		log.Warn().Msg("store en memoria: los datos se pierden al detener el proceso")
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
		txRepo = postgres.NewTransactionRepository(pool)
		invRepo = postgres.NewInventoryRepository(pool)
	}

	postUC := ledger.NewPostTransactionUseCase(txRunner, cfg.Ledger.StockPolicy)
	voidUC := ledger.NewVoidTransactionUseCase(txRunner)
	filterUC := analytics.NewFilterUseCase(txRepo)
	dashboardUC := analytics.NewDashboardUseCase(txRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kardex API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		PostTransaction: postUC,
		VoidTransaction: voidUC,
		Filter:          filterUC,
		Dashboard:       dashboardUC,
		InventoryRepo:   invRepo,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
