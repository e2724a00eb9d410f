package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kardex-api/internal/application/analytics"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen financiero del día y del mes en curso.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (daily_profit, monthly_profit,
// receivable_total, payable_total, date_label). El parámetro opcional as_of
// (YYYY-MM-DD) fija la fecha de corte; sin él se usa la fecha del servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	var (
		summary *dto.DashboardSummaryDTO
		err     error
	)
	if v := c.Query("as_of"); v != "" {
		t, perr := time.ParseInLocation(dateParamLayout, v, time.Local)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "as_of inválida (usar YYYY-MM-DD)",
			})
		}
		summary, err = h.uc.GetSummaryAsOf(c.Context(), t)
	} else {
		summary, err = h.uc.GetSummary(c.Context())
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(summary)
}
