package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// TransactionRepository define el puerto de persistencia del libro de asientos.
// List devuelve los asientos en orden de almacenamiento (orden de inserción).
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	// FindFirstByDate devuelve el primer asiento cuya fecha formateada coincide
	// con el selector (contrato de primera coincidencia, para compatibilidad
	// con datos cuya clave es el texto de la fecha). Nil si no hay coincidencia.
	FindFirstByDate(dateStr string) (*entity.Transaction, error)
	List() ([]*entity.Transaction, error)
	Delete(id string) error
}
