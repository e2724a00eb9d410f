package http

import (
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/analytics"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// dateParamLayout formato de los parámetros start_date / end_date.
const dateParamLayout = "2006-01-02"

// LedgerHandler maneja las peticiones HTTP del libro de asientos.
type LedgerHandler struct {
	postUC  *ledger.PostTransactionUseCase
	voidUC  *ledger.VoidTransactionUseCase
	filter  *analytics.FilterUseCase
	invRepo repository.InventoryRepository
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(
	postUC *ledger.PostTransactionUseCase,
	voidUC *ledger.VoidTransactionUseCase,
	filter *analytics.FilterUseCase,
	invRepo repository.InventoryRepository,
) *LedgerHandler {
	return &LedgerHandler{postUC: postUC, voidUC: voidUC, filter: filter, invRepo: invRepo}
}

// PostTransaction godoc
// @Summary      Registrar asiento de compra o venta
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PostTransactionRequest  true  "kind, item_name, quantity, unit_price, unit_cost (ventas), payment_status, counterparty"
// @Success      201   {object}  dto.PostTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/ledger/transactions [post]
func (h *LedgerHandler) PostTransaction(c *fiber.Ctx) error {
	var in dto.PostTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.postUC.PostFromRequest(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PostTransactionResponse{
		Transaction:       dto.FromTransaction(result.Transaction),
		ResultingQuantity: result.ResultingQuantity,
		NegativeStock:     result.NegativeStock,
	})
}

// VoidTransaction godoc
// @Summary      Anular un asiento y corregir el inventario
// @Tags         ledger
// @Produce      json
// @Param        id  path  string  true  "ID del asiento (o selector de fecha con ?by=date)"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ledger/transactions/{id} [delete]
func (h *LedgerHandler) VoidTransaction(c *fiber.Ctx) error {
	selector := c.Params("id")
	// Los parámetros de ruta llegan percent-encoded; el selector de fecha trae
	// un espacio, así que hay que decodificarlo antes de buscar
	if decoded, derr := url.PathUnescape(selector); derr == nil {
		selector = decoded
	}
	var err error
	if c.Query("by") == "date" {
		// Selector heredado: texto de fecha, primera coincidencia
		err = h.voidUC.VoidByDate(c.Context(), selector)
	} else {
		err = h.voidUC.VoidByID(c.Context(), selector)
	}
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "asiento anulado e inventario corregido"})
}

// ListTransactions godoc
// @Summary      Listar asientos con filtros cruzados
// @Description  Filtros componibles (AND): counterparty, item_name y rango
//
//	inclusivo de fechas. Devuelve además sales_total y profit_total
//	sobre las ventas del conjunto filtrado.
//
// @Tags         ledger
// @Produce      json
// @Param        counterparty  query  string  false  "Cliente/proveedor exacto"
// @Param        item_name     query  string  false  "Producto exacto"
// @Param        start_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        end_date      query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.FilteredTransactionsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ledger/transactions [get]
func (h *LedgerHandler) ListTransactions(c *fiber.Ctx) error {
	params := analytics.FilterParams{
		Counterparty: c.Query("counterparty"),
		ItemName:     c.Query("item_name"),
	}
	if v := c.Query("start_date"); v != "" {
		t, err := time.ParseInLocation(dateParamLayout, v, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválida (usar YYYY-MM-DD)"})
		}
		params.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.ParseInLocation(dateParamLayout, v, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválida (usar YYYY-MM-DD)"})
		}
		params.EndDate = &t
	}

	result, err := h.filter.Filter(c.Context(), params)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(result)
}

// ListInventory godoc
// @Summary      Existencias actuales por producto
// @Tags         ledger
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ledger/inventory [get]
func (h *LedgerHandler) ListInventory(c *fiber.Ctx) error {
	items, err := h.invRepo.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.InventoryItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.FromInventoryItem(it))
	}
	return c.JSON(fiber.Map{"total": len(out), "inventory": out})
}

// writeDomainError traduce errores de dominio a códigos HTTP. Los estados
// parciales (libro e inventario divergentes) llevan código propio: el cliente
// no debe reintentar a ciegas.
func writeDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "asiento no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrPartialPost), errors.Is(err, domain.ErrPartialVoid):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "RECONCILIATION_REQUIRED", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
