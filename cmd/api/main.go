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

	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/auth"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/catalog"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/ledger"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/infrastructure/postgres"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/infrastructure/rediscache"
	httpRouter "github.com/kangmasbudiman/klinikcare-inventory/internal/interfaces/http"
	"github.com/kangmasbudiman/klinikcare-inventory/pkg/config"
	"github.com/kangmasbudiman/klinikcare-inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	medicineRepo := postgres.NewMedicineRepository(pool)
	batchRepo := postgres.NewMedicineBatchRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de catálogo (opcional: REDIS_ADDR vacío lo desactiva)
	var catalogCache catalog.Cache
	if cfg.Redis.Addr != "" {
		rc, err := rediscache.New(cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rc.Close()
		catalogCache = rc
	}

	catalogUC := catalog.NewUseCase(medicineRepo, batchRepo, catalogCache)
	queryUC := ledger.NewQueryUseCase(movementRepo)
	stockCardUC := ledger.NewStockCardUseCase(medicineRepo, movementRepo)
	adjustmentUC := ledger.NewAdjustmentUseCase(txRunner, medicineRepo, catalogUC)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "KlinikCare Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:    catalogUC,
		LedgerQuery:  queryUC,
		StockCard:    stockCardUC,
		AdjustmentUC: adjustmentUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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
