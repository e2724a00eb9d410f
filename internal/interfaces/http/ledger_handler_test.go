package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/analytics"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/memory"
	apihttp "github.com/jhoicas/Kardex-api/internal/interfaces/http"
	"github.com/jhoicas/Kardex-api/pkg/config"
)

// newTestApp aplicación fiber completa sobre el store en memoria, con la
// política guarded (la de producción por defecto).
func newTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)

	app := fiber.New()
	apihttp.Router(app, apihttp.RouterDeps{
		PostTransaction: ledger.NewPostTransactionUseCase(runner, config.StockPolicyGuarded),
		VoidTransaction: ledger.NewVoidTransactionUseCase(runner),
		Filter:          analytics.NewFilterUseCase(store.Transactions()),
		Dashboard:       analytics.NewDashboardUseCase(store.Transactions()),
		InventoryRepo:   store.Inventory(),
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, body io.ReadCloser, out any) {
	t.Helper()
	defer body.Close()
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestHandler_PostCompraDevuelve201(t *testing.T) {
	app, store := newTestApp(t)

	body := map[string]any{
		"kind":           "PURCHASE",
		"item_name":      "Widget",
		"quantity":       10,
		"unit_price":     "5",
		"payment_status": "SETTLED",
		"counterparty":   "Proveedora SA",
	}
	resp := doJSON(t, app, fiber.MethodPost, "/api/ledger/transactions", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out dto.PostTransactionResponse
	decodeBody(t, resp.Body, &out)
	assert.Equal(t, int64(10), out.ResultingQuantity)
	assert.False(t, out.NegativeStock)
	assert.NotEmpty(t, out.Transaction.ID)
	assert.Equal(t, "50", out.Transaction.TotalAmount.String())

	item, _ := store.Inventory().Get("Widget")
	assert.Equal(t, int64(10), item.Quantity)
}

func TestHandler_CuerpoInvalidoDevuelve400(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/api/ledger/transactions", bytes.NewReader([]byte("{no es json")))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandler_ValidacionDevuelve400(t *testing.T) {
	app, _ := newTestApp(t)

	// Cantidad cero: rechazada antes de cualquier escritura
	body := map[string]any{
		"kind": "PURCHASE", "item_name": "Widget", "quantity": 0,
		"unit_price": "5", "payment_status": "SETTLED",
	}
	resp := doJSON(t, app, fiber.MethodPost, "/api/ledger/transactions", body)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var out dto.ErrorResponse
	decodeBody(t, resp.Body, &out)
	assert.Equal(t, "VALIDATION", out.Code)
}

func TestHandler_StockInsuficienteDevuelve409(t *testing.T) {
	app, _ := newTestApp(t)

	body := map[string]any{
		"kind": "SALE", "item_name": "Widget", "quantity": 3,
		"unit_price": "8", "unit_cost": "5", "payment_status": "SETTLED",
	}
	resp := doJSON(t, app, fiber.MethodPost, "/api/ledger/transactions", body)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var out dto.ErrorResponse
	decodeBody(t, resp.Body, &out)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
}

func TestHandler_VoidInexistenteDevuelve404(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodDelete, "/api/ledger/transactions/no-existe", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandler_VoidCorrigeInventario(t *testing.T) {
	app, store := newTestApp(t)

	buy := map[string]any{
		"kind": "PURCHASE", "item_name": "Widget", "quantity": 10,
		"unit_price": "5", "payment_status": "SETTLED",
	}
	resp := doJSON(t, app, fiber.MethodPost, "/api/ledger/transactions", buy)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	sell := map[string]any{
		"kind": "SALE", "item_name": "Widget", "quantity": 4,
		"unit_price": "8", "unit_cost": "5", "payment_status": "SETTLED",
	}
	resp = doJSON(t, app, fiber.MethodPost, "/api/ledger/transactions", sell)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var posted dto.PostTransactionResponse
	decodeBody(t, resp.Body, &posted)

	req := httptest.NewRequest(fiber.MethodDelete, "/api/ledger/transactions/"+posted.Transaction.ID, nil)
	delResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, delResp.StatusCode)

	item, _ := store.Inventory().Get("Widget")
	assert.Equal(t, int64(10), item.Quantity, "anular la venta repone el stock")
}

// TestHandler_VoidPorFechaConSelectorCodificado: el selector de fecha heredado
// contiene un espacio, que en la ruta viaja percent-encoded; el handler debe
// decodificarlo antes de buscar la coincidencia.
func TestHandler_VoidPorFechaConSelectorCodificado(t *testing.T) {
	app, store := newTestApp(t)
	store.SeedTransactionRow("tx-1", []string{"2026-08-28 10:30:00", "PURCHASE", "Widget", "5", "5", "25", "SETTLED", "5", "0", ""})
	store.SeedInventoryRow("Widget", "8")

	req := httptest.NewRequest(fiber.MethodDelete, "/api/ledger/transactions/2026-08-28%2010:30:00?by=date", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	txs, _ := store.Transactions().List()
	assert.Empty(t, txs, "el asiento quedó anulado")
	item, _ := store.Inventory().Get("Widget")
	assert.Equal(t, int64(3), item.Quantity, "se revierte la compra de 5")
}

func TestHandler_ListConFiltros(t *testing.T) {
	app, store := newTestApp(t)
	store.SeedTransactionRow("tx-1", []string{"2026-08-10 09:00:00", "PURCHASE", "Widget", "10", "5", "50", "SETTLED", "5", "0", "Proveedora SA"})
	store.SeedTransactionRow("tx-2", []string{"2026-08-15 14:00:00", "SALE", "Widget", "4", "8", "32", "SETTLED", "5", "12", "Cliente Uno"})
	store.SeedTransactionRow("tx-3", []string{"2026-08-20 16:30:00", "SALE", "Gadget", "2", "10", "20", "RECEIVABLE", "6", "8", "Cliente Dos"})

	req := httptest.NewRequest(fiber.MethodGet, "/api/ledger/transactions?item_name=Widget&start_date=2026-08-15&end_date=2026-08-31", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.FilteredTransactionsDTO
	decodeBody(t, resp.Body, &out)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "tx-2", out.Transactions[0].ID)
	assert.Equal(t, "32", out.SalesTotal.String())
	assert.Equal(t, "12", out.ProfitTotal.String())
}

func TestHandler_ListFechaInvalidaDevuelve400(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/ledger/transactions?start_date=15-08-2026", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandler_DashboardSummary(t *testing.T) {
	app, store := newTestApp(t)
	store.SeedTransactionRow("tx-1", []string{"2026-08-25 11:00:00", "SALE", "Widget", "1", "9", "9", "RECEIVABLE", "5", "4", "Cliente Uno"})
	store.SeedTransactionRow("tx-2", []string{"2026-08-10 09:00:00", "PURCHASE", "Widget", "10", "5", "50", "PAYABLE", "5", "0", "Proveedora SA"})

	req := httptest.NewRequest(fiber.MethodGet, "/api/dashboard/summary?as_of=2026-08-25", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.DashboardSummaryDTO
	decodeBody(t, resp.Body, &out)
	assert.Equal(t, "4", out.DailyProfit.String())
	assert.Equal(t, "4", out.MonthlyProfit.String())
	assert.Equal(t, "9", out.ReceivableTotal.String())
	assert.Equal(t, "50", out.PayableTotal.String())
	assert.Equal(t, "Agosto 2026", out.DateLabel)
}

// TestHandler_DashboardSummarySinCorte: sin as_of la fecha de corte es la del
// servidor; sobre un libro vacío las cuatro métricas son cero.
func TestHandler_DashboardSummarySinCorte(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/dashboard/summary", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.DashboardSummaryDTO
	decodeBody(t, resp.Body, &out)
	assert.True(t, out.DailyProfit.IsZero())
	assert.True(t, out.MonthlyProfit.IsZero())
	assert.True(t, out.ReceivableTotal.IsZero())
	assert.True(t, out.PayableTotal.IsZero())
	assert.NotEmpty(t, out.DateLabel)
}

func TestHandler_InventoryList(t *testing.T) {
	app, store := newTestApp(t)
	store.SeedInventoryRow("Widget", "6")
	store.SeedInventoryRow("Gadget", "0")

	req := httptest.NewRequest(fiber.MethodGet, "/api/ledger/inventory", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Total     int                    `json:"total"`
		Inventory []dto.InventoryItemDTO `json:"inventory"`
	}
	decodeBody(t, resp.Body, &out)
	require.Equal(t, 2, out.Total)
	assert.Equal(t, "Widget", out.Inventory[0].ItemName)
	assert.Equal(t, int64(6), out.Inventory[0].Quantity)
}
