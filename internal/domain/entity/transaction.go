package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción.
const (
	KindPURCHASE = "PURCHASE" // compra: entra mercancía, sale dinero
	KindSALE     = "SALE"     // venta: sale mercancía, entra dinero (o queda por cobrar)
)

// Estados de pago.
const (
	PaymentSETTLED    = "SETTLED"    // pagado de contado
	PaymentRECEIVABLE = "RECEIVABLE" // venta a crédito: cuenta por cobrar
	PaymentPAYABLE    = "PAYABLE"    // compra a crédito: cuenta por pagar
)

// Transaction representa un asiento del libro de compras/ventas (append-only).
// Una vez registrado es inmutable; la única modificación permitida es la
// anulación completa (void), que lo elimina del libro y corrige el inventario.
//
// El orden de las columnas persistidas es significativo para el store
// posicional: date, kind, item, qty, price, total, payment_status, cost,
// profit, counterparty.
type Transaction struct {
	ID            string
	Date          time.Time
	Kind          string // PURCHASE | SALE
	ItemName      string
	Quantity      int64
	UnitPrice     decimal.Decimal
	TotalAmount   decimal.Decimal // Quantity * UnitPrice
	PaymentStatus string          // SETTLED | RECEIVABLE | PAYABLE
	UnitCost      decimal.Decimal // = UnitPrice en compras; informado en ventas
	Profit        decimal.Decimal // (UnitPrice - UnitCost) * Quantity en ventas, 0 en compras
	Counterparty  string          // cliente o proveedor, opcional
	CreatedAt     time.Time
}

// IsSale indica si el asiento es una venta.
func (t *Transaction) IsSale() bool { return t.Kind == KindSALE }

// IsPurchase indica si el asiento es una compra.
func (t *Transaction) IsPurchase() bool { return t.Kind == KindPURCHASE }
