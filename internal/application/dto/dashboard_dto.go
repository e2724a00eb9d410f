package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del día y del mes en curso más los saldos de cartera.
type DashboardSummaryDTO struct {
	DailyProfit     decimal.Decimal `json:"daily_profit"`     // utilidad de ventas de hoy
	MonthlyProfit   decimal.Decimal `json:"monthly_profit"`   // utilidad de ventas del mes en curso
	ReceivableTotal decimal.Decimal `json:"receivable_total"` // ventas a crédito pendientes de cobro
	PayableTotal    decimal.Decimal `json:"payable_total"`    // compras a crédito pendientes de pago

	// Metadatos del período
	DateLabel string `json:"date_label"` // ej: "Agosto 2026"
}

// FilteredTransactionsDTO respuesta de GET /api/ledger/transactions con filtros.
// Los totales se recalculan sobre las ventas del conjunto filtrado, con las
// mismas reglas de suma que el dashboard.
type FilteredTransactionsDTO struct {
	Transactions []TransactionDTO `json:"transactions"`
	Total        int              `json:"total"`
	SalesTotal   decimal.Decimal  `json:"sales_total"`
	ProfitTotal  decimal.Decimal  `json:"profit_total"`
}
