package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// TotalAmount calcula el monto total de un asiento (servicio de dominio).
// Total = Cantidad * PrecioUnitario
func TotalAmount(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// Profit calcula la utilidad bruta de un asiento.
// Ventas: (PrecioUnitario - CostoUnitario) * Cantidad. Compras: siempre 0.
func Profit(kind string, quantity int64, unitPrice, unitCost decimal.Decimal) decimal.Decimal {
	if kind != entity.KindSALE {
		return decimal.Zero
	}
	return unitPrice.Sub(unitCost).Mul(decimal.NewFromInt(quantity))
}

// ValidPayment verifica que el estado de pago sea legal para el tipo de asiento:
// ventas se cobran (SETTLED | RECEIVABLE), compras se pagan (SETTLED | PAYABLE).
func ValidPayment(kind, paymentStatus string) bool {
	switch kind {
	case entity.KindSALE:
		return paymentStatus == entity.PaymentSETTLED || paymentStatus == entity.PaymentRECEIVABLE
	case entity.KindPURCHASE:
		return paymentStatus == entity.PaymentSETTLED || paymentStatus == entity.PaymentPAYABLE
	}
	return false
}
