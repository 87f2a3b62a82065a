package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/auth"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/catalog"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/application/ledger"
	"github.com/kangmasbudiman/klinikcare-inventory/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC    *catalog.UseCase
	LedgerQuery  *ledger.QueryUseCase
	StockCard    *ledger.StockCardUseCase
	AdjustmentUC *ledger.AdjustmentUseCase
	AuthUC       *auth.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo (protegido, solo lectura)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	ledgerHandler := NewLedgerHandler(deps.LedgerQuery, deps.StockCard, deps.AdjustmentUC)

	medicines := protected.Group("/medicines")
	medicines.Get("/", catalogHandler.ListMedicines)
	medicines.Get("/:id/batches", catalogHandler.ListBatches)
	medicines.Get("/:id/stock-card", ledgerHandler.GetStockCard)

	// Libro de movimientos (protegido)
	movements := protected.Group("/stock-movements")
	movements.Get("/", ledgerHandler.ListMovements)
	movements.Get("/stats", ledgerHandler.GetStats)

	// Ajustes manuales: solo admin y farmacéutico pueden escribir en el libro
	protected.Post("/stock-adjustments",
		RequireRole(entity.RoleAdmin, entity.RoleApoteker),
		ledgerHandler.SubmitAdjustment,
	)
}
