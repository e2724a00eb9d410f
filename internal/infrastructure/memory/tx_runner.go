package memory

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner versión sin transacción real: serializa el callback completo con un
// mutex (evita lost updates entre post/void concurrentes del mismo producto)
// pero no ofrece rollback. Un fallo entre la escritura del libro y la de
// inventario queda persistido; los casos de uso lo reportan como
// ErrPartialPost/ErrPartialVoid para conciliación manual.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store en memoria.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con las vistas del store, bajo el lock de operación.
func (r *TxRunner) Run(ctx context.Context, fn func(
	txRepo repository.TransactionRepository,
	invRepo repository.InventoryRepository,
) error) error {
	r.store.opMu.Lock()
	defer r.store.opMu.Unlock()
	return fn(r.store.Transactions(), r.store.Inventory())
}
