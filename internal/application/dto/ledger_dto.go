package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// PostTransactionRequest cuerpo de POST /api/ledger/transactions.
// Para compras (PURCHASE) el costo unitario se ignora: siempre es el precio de
// compra. Para ventas (SALE) unit_cost es obligatorio y permite registrar la
// utilidad aunque el costo difiera de la última compra.
type PostTransactionRequest struct {
	Kind          string           `json:"kind"`
	ItemName      string           `json:"item_name"`
	Quantity      int64            `json:"quantity"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	PaymentStatus string           `json:"payment_status"`
	Counterparty  string           `json:"counterparty,omitempty"`
}

// TransactionDTO representación de un asiento en respuestas.
type TransactionDTO struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Kind          string          `json:"kind"`
	ItemName      string          `json:"item_name"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentStatus string          `json:"payment_status"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Profit        decimal.Decimal `json:"profit"`
	Counterparty  string          `json:"counterparty,omitempty"`
}

// PostTransactionResponse respuesta de un registro exitoso.
// NegativeStock solo puede ser true bajo la política "unguarded": avisa que la
// venta dejó la existencia en negativo sin bloquear la operación.
type PostTransactionResponse struct {
	Transaction       TransactionDTO `json:"transaction"`
	ResultingQuantity int64          `json:"resulting_quantity"`
	NegativeStock     bool           `json:"negative_stock,omitempty"`
}

// InventoryItemDTO fila de existencias en respuestas.
type InventoryItemDTO struct {
	ItemName  string    `json:"item_name"`
	Quantity  int64     `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromTransaction convierte la entidad al DTO de respuesta.
func FromTransaction(t *entity.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:            t.ID,
		Date:          t.Date,
		Kind:          t.Kind,
		ItemName:      t.ItemName,
		Quantity:      t.Quantity,
		UnitPrice:     t.UnitPrice,
		TotalAmount:   t.TotalAmount,
		PaymentStatus: t.PaymentStatus,
		UnitCost:      t.UnitCost,
		Profit:        t.Profit,
		Counterparty:  t.Counterparty,
	}
}

// FromInventoryItem convierte la entidad al DTO de respuesta.
func FromInventoryItem(i *entity.InventoryItem) InventoryItemDTO {
	return InventoryItemDTO{ItemName: i.ItemName, Quantity: i.Quantity, UpdatedAt: i.UpdatedAt}
}
