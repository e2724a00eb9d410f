package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen financiero del día y del mes en curso.
//
// Fuente de datos: el libro completo de asientos (lectura única); el cálculo
// en sí lo hace Summarize, que es una función pura.
type DashboardUseCase struct {
	txRepo repository.TransactionRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(txRepo repository.TransactionRepository) *DashboardUseCase {
	return &DashboardUseCase{txRepo: txRepo}
}

// GetSummary construye el DashboardSummaryDTO con fecha de corte "ahora".
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	return uc.GetSummaryAsOf(ctx, time.Now())
}

// GetSummaryAsOf construye el resumen con una fecha de corte explícita.
func (uc *DashboardUseCase) GetSummaryAsOf(ctx context.Context, asOf time.Time) (*dto.DashboardSummaryDTO, error) {
	txs, err := uc.txRepo.List()
	if err != nil {
		return nil, fmt.Errorf("dashboard: leer libro de asientos: %w", err)
	}

	m := Summarize(txs, asOf)
	return &dto.DashboardSummaryDTO{
		DailyProfit:     m.DailyProfit.Round(2),
		MonthlyProfit:   m.MonthlyProfit.Round(2),
		ReceivableTotal: m.ReceivableTotal.Round(2),
		PayableTotal:    m.PayableTotal.Round(2),
		DateLabel:       monthLabel(asOf),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Agosto 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
