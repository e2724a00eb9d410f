package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// InventoryRepository define el puerto para consultar/actualizar existencias
// por nombre de producto. Usado dentro de transacciones para garantizar
// consistencia entre libro e inventario.
type InventoryRepository interface {
	// Get devuelve la fila del producto; si no existe, una fila en cero
	// (la creación real ocurre en el Upsert).
	Get(itemName string) (*entity.InventoryItem, error)
	Upsert(item *entity.InventoryItem) error
	List() ([]*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) donde el
	// backend lo soporte; en stores sin bloqueo de fila equivale a Get.
	GetForUpdate(itemName string) (*entity.InventoryItem, error)
}
