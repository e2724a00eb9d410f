package ledger

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre libro e inventario
// donde el backend la soporte; en stores de una escritura a la vez (hoja de
// cálculo, memoria) las escrituras se aplican en orden y un fallo intermedio
// se reporta como ErrPartialPost/ErrPartialVoid.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		invRepo repository.InventoryRepository,
	) error) error
}
