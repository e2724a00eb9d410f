package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/analytics"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PostTransaction *ledger.PostTransactionUseCase
	VoidTransaction *ledger.VoidTransactionUseCase
	Filter          *analytics.FilterUseCase
	Dashboard       *analytics.DashboardUseCase
	InventoryRepo   repository.InventoryRepository
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Libro de asientos e inventario
	ledgerGroup := api.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.PostTransaction, deps.VoidTransaction, deps.Filter, deps.InventoryRepo)
	ledgerGroup.Post("/transactions", ledgerHandler.PostTransaction)
	ledgerGroup.Get("/transactions", ledgerHandler.ListTransactions)
	ledgerGroup.Delete("/transactions/:id", ledgerHandler.VoidTransaction)
	ledgerGroup.Get("/inventory", ledgerHandler.ListInventory)

	// Dashboard financiero
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
