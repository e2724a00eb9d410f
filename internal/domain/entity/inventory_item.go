package entity

import "time"

// InventoryItem representa la existencia actual de un producto, una fila por
// nombre de producto (clave exacta, sensible a mayúsculas). Se crea de forma
// perezosa con la primera compra y nunca se elimina; anular el último asiento
// puede dejarla en cero.
//
// Bajo la política "unguarded" la cantidad puede ser negativa (preventa).
type InventoryItem struct {
	ItemName  string
	Quantity  int64
	UpdatedAt time.Time
}
