// Package analytics contiene el resumen financiero del dashboard y la consulta
// con filtros cruzados sobre el libro de asientos. Todo es de solo lectura:
// funciones puras sobre el conjunto de asientos, sin mutación de estado.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// Metrics resumen financiero calculado sobre el libro completo.
type Metrics struct {
	DailyProfit     decimal.Decimal // utilidad de ventas cuya fecha es el día de corte
	MonthlyProfit   decimal.Decimal // utilidad de ventas del año-mes de corte
	ReceivableTotal decimal.Decimal // total de ventas con estado RECEIVABLE
	PayableTotal    decimal.Decimal // total de compras con estado PAYABLE
}

// Summarize calcula las métricas del dashboard sobre el conjunto de asientos.
// Función pura: mismo input, mismo resultado, sin efectos secundarios.
//
// Tipos o estados de pago desconocidos simplemente suman 0 a las cuatro
// métricas; nunca producen error (tolerancia a datos sucios heredados).
func Summarize(txs []*entity.Transaction, asOf time.Time) Metrics {
	m := Metrics{
		DailyProfit:     decimal.Zero,
		MonthlyProfit:   decimal.Zero,
		ReceivableTotal: decimal.Zero,
		PayableTotal:    decimal.Zero,
	}
	for _, t := range txs {
		switch t.Kind {
		case entity.KindSALE:
			if sameMonth(t.Date, asOf) {
				m.MonthlyProfit = m.MonthlyProfit.Add(t.Profit)
				if sameDay(t.Date, asOf) {
					m.DailyProfit = m.DailyProfit.Add(t.Profit)
				}
			}
			if t.PaymentStatus == entity.PaymentRECEIVABLE {
				m.ReceivableTotal = m.ReceivableTotal.Add(t.TotalAmount)
			}
		case entity.KindPURCHASE:
			if t.PaymentStatus == entity.PaymentPAYABLE {
				m.PayableTotal = m.PayableTotal.Add(t.TotalAmount)
			}
		}
	}
	return m
}

// sameDay compara solo la porción de fecha, en la zona horaria del corte.
func sameDay(t, asOf time.Time) bool {
	y1, m1, d1 := t.In(asOf.Location()).Date()
	y2, m2, d2 := asOf.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// sameMonth compara año y mes, en la zona horaria del corte.
func sameMonth(t, asOf time.Time) bool {
	y1, m1, _ := t.In(asOf.Location()).Date()
	y2, m2, _ := asOf.Date()
	return y1 == y2 && m1 == m2
}
