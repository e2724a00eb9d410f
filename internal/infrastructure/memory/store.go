// Package memory implementa el store sobre filas posicionales de texto en
// memoria, con el mismo layout de columnas que la hoja de cálculo de la que
// se migraron los datos: date, kind, item, qty, price, total, payment_status,
// cost, profit, counterparty. Se usa en modo dev (STORE_DRIVER=memory) y como
// fixture de tests.
//
// A diferencia del backend PostgreSQL, aquí no hay transacción real entre las
// dos tablas: cada escritura es durable por sí sola y un fallo intermedio deja
// el estado divergente que los casos de uso reportan como
// ErrPartialPost/ErrPartialVoid.
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var (
	_ repository.TransactionRepository = (*TransactionTable)(nil)
	_ repository.InventoryRepository   = (*InventoryTable)(nil)
)

// DateLayout formato de fecha del layout heredado (segundos de precisión).
const DateLayout = "2006-01-02 15:04:05"

// Índices de columna del libro de asientos (orden significativo).
const (
	colDate = iota
	colKind
	colItem
	colQty
	colPrice
	colTotal
	colPayment
	colCost
	colProfit
	colCounterparty
	transactionWidth
)

// transactionRow una fila del libro: el ID es metadato de la fila (no una
// columna del layout heredado) y las celdas son texto posicional.
type transactionRow struct {
	id    string
	cells []string
}

// inventoryRow fila de existencias: [nombre, cantidad].
type inventoryRow struct {
	itemName string
	quantity string
}

// Store contiene las dos tablas. Las vistas Transactions() e Inventory()
// implementan los puertos de repositorio; cada operación toma el lock interno
// y Run serializa secciones read-modify-write completas.
type Store struct {
	mu           sync.RWMutex
	opMu         sync.Mutex // serializa callbacks de Run (post/void completos)
	transactions []transactionRow
	inventory    []inventoryRow
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{}
}

// Transactions devuelve la vista del libro de asientos.
func (s *Store) Transactions() *TransactionTable { return &TransactionTable{s: s} }

// Inventory devuelve la vista de existencias.
func (s *Store) Inventory() *InventoryTable { return &InventoryTable{s: s} }

// ── Coerción tolerante ───────────────────────────────────────────────────────
// Celdas numéricas ausentes o ilegibles valen 0, nunca un error: los datos
// heredados de la hoja de cálculo traen celdas vacías y texto suelto.

func parseInt64(s string) int64 {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return d.IntPart()
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseDate(s string) time.Time {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ── Conversión fila <-> entidad ──────────────────────────────────────────────

func rowFromTransaction(t *entity.Transaction) transactionRow {
	return transactionRow{
		id: t.ID,
		cells: []string{
			t.Date.Format(DateLayout),
			t.Kind,
			t.ItemName,
			decimal.NewFromInt(t.Quantity).String(),
			t.UnitPrice.String(),
			t.TotalAmount.String(),
			t.PaymentStatus,
			t.UnitCost.String(),
			t.Profit.String(),
			t.Counterparty,
		},
	}
}

func (r transactionRow) toTransaction() *entity.Transaction {
	cells := r.cells
	if len(cells) < transactionWidth {
		// Fila corta (dato heredado incompleto): rellenar con celdas vacías
		padded := make([]string, transactionWidth)
		copy(padded, cells)
		cells = padded
	}
	date := parseDate(cells[colDate])
	return &entity.Transaction{
		ID:            r.id,
		Date:          date,
		Kind:          cells[colKind],
		ItemName:      cells[colItem],
		Quantity:      parseInt64(cells[colQty]),
		UnitPrice:     parseDecimal(cells[colPrice]),
		TotalAmount:   parseDecimal(cells[colTotal]),
		PaymentStatus: cells[colPayment],
		UnitCost:      parseDecimal(cells[colCost]),
		Profit:        parseDecimal(cells[colProfit]),
		Counterparty:  cells[colCounterparty],
		CreatedAt:     date,
	}
}

// ── Vista: libro de asientos ─────────────────────────────────────────────────

// TransactionTable implementa repository.TransactionRepository sobre el Store.
type TransactionTable struct {
	s *Store
}

// Create agrega una fila al final del libro (append-only).
func (t *TransactionTable) Create(tx *entity.Transaction) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.transactions = append(t.s.transactions, rowFromTransaction(tx))
	return nil
}

// GetByID devuelve el asiento con ese ID, o nil si no existe.
func (t *TransactionTable) GetByID(id string) (*entity.Transaction, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	for _, r := range t.s.transactions {
		if r.id == id {
			return r.toTransaction(), nil
		}
	}
	return nil, nil
}

// FindFirstByDate devuelve el primer asiento cuya celda de fecha coincide
// exactamente con el selector (primera coincidencia en orden de inserción).
func (t *TransactionTable) FindFirstByDate(dateStr string) (*entity.Transaction, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	for _, r := range t.s.transactions {
		if len(r.cells) > colDate && r.cells[colDate] == dateStr {
			return r.toTransaction(), nil
		}
	}
	return nil, nil
}

// List devuelve el libro completo en orden de inserción.
func (t *TransactionTable) List() ([]*entity.Transaction, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	list := make([]*entity.Transaction, 0, len(t.s.transactions))
	for _, r := range t.s.transactions {
		list = append(list, r.toTransaction())
	}
	return list, nil
}

// Delete elimina la fila con ese ID. ErrNotFound si no existe.
func (t *TransactionTable) Delete(id string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i, r := range t.s.transactions {
		if r.id == id {
			t.s.transactions = append(t.s.transactions[:i], t.s.transactions[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── Vista: existencias ───────────────────────────────────────────────────────

// InventoryTable implementa repository.InventoryRepository sobre el Store.
type InventoryTable struct {
	s *Store
}

// Get devuelve la fila de existencias del producto; si no existe, una fila en
// cero (la creación real ocurre en el Upsert). Coincidencia exacta, sensible a
// mayúsculas.
func (t *InventoryTable) Get(itemName string) (*entity.InventoryItem, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	for _, r := range t.s.inventory {
		if r.itemName == itemName {
			return &entity.InventoryItem{ItemName: r.itemName, Quantity: parseInt64(r.quantity)}, nil
		}
	}
	return &entity.InventoryItem{ItemName: itemName}, nil
}

// GetForUpdate equivale a Get: este store no tiene bloqueo de fila; la
// serialización la da el lock de Run.
func (t *InventoryTable) GetForUpdate(itemName string) (*entity.InventoryItem, error) {
	return t.Get(itemName)
}

// Upsert actualiza la celda de cantidad de la fila existente, o agrega la fila
// si el producto es nuevo.
func (t *InventoryTable) Upsert(item *entity.InventoryItem) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	qty := decimal.NewFromInt(item.Quantity).String()
	for i, r := range t.s.inventory {
		if r.itemName == item.ItemName {
			t.s.inventory[i].quantity = qty
			return nil
		}
	}
	t.s.inventory = append(t.s.inventory, inventoryRow{itemName: item.ItemName, quantity: qty})
	return nil
}

// List devuelve todas las filas de existencias en orden de creación.
func (t *InventoryTable) List() ([]*entity.InventoryItem, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	list := make([]*entity.InventoryItem, 0, len(t.s.inventory))
	for _, r := range t.s.inventory {
		list = append(list, &entity.InventoryItem{ItemName: r.itemName, Quantity: parseInt64(r.quantity)})
	}
	return list, nil
}

// ── Siembra de datos crudos ──────────────────────────────────────────────────

// SeedTransactionRow inserta una fila cruda del layout heredado (para migrar
// datos exportados de la hoja de cálculo y para tests de coerción).
func (s *Store) SeedTransactionRow(id string, cells []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, transactionRow{id: id, cells: cells})
}

// SeedInventoryRow inserta una fila cruda de existencias.
func (s *Store) SeedInventoryRow(itemName, quantity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory = append(s.inventory, inventoryRow{itemName: itemName, quantity: quantity})
}
