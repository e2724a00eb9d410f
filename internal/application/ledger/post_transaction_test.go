package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	"github.com/jhoicas/Kardex-api/internal/infrastructure/memory"
	"github.com/jhoicas/Kardex-api/pkg/config"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func newGuardedUC(store *memory.Store) *ledger.PostTransactionUseCase {
	return ledger.NewPostTransactionUseCase(memory.NewTxRunner(store), config.StockPolicyGuarded)
}

func purchase(item string, qty int64, price string) ledger.PostInputDTO {
	return ledger.PostInputDTO{
		Kind:          entity.KindPURCHASE,
		ItemName:      item,
		Quantity:      qty,
		UnitPrice:     dec(price),
		PaymentStatus: entity.PaymentSETTLED,
	}
}

func sale(item string, qty int64, price, cost string) ledger.PostInputDTO {
	return ledger.PostInputDTO{
		Kind:          entity.KindSALE,
		ItemName:      item,
		Quantity:      qty,
		UnitPrice:     dec(price),
		UnitCost:      decPtr(cost),
		PaymentStatus: entity.PaymentSETTLED,
	}
}

// TestPost_CompraCreaInventario: inventario vacío + compra de 10 unidades a 5
// debe dejar Widget en 10, con un asiento de total 50 y utilidad 0.
func TestPost_CompraCreaInventario(t *testing.T) {
	store := memory.NewStore()
	uc := newGuardedUC(store)

	result, err := uc.Post(context.Background(), purchase("Widget", 10, "5"))
	require.NoError(t, err)

	assert.Equal(t, int64(10), result.ResultingQuantity)
	assert.False(t, result.NegativeStock)
	assert.True(t, dec("50").Equal(result.Transaction.TotalAmount), "total = cantidad * precio")
	assert.True(t, result.Transaction.Profit.IsZero(), "las compras no generan utilidad")
	// En compras el costo siempre es el precio de compra
	assert.True(t, dec("5").Equal(result.Transaction.UnitCost))

	item, err := store.Inventory().Get("Widget")
	require.NoError(t, err)
	assert.Equal(t, int64(10), item.Quantity)

	txs, err := store.Transactions().List()
	require.NoError(t, err)
	require.Len(t, txs, 1)
}

// TestPost_VentaDescuentaStock: con Widget en 10, vender 4 a 8 con costo 5
// deja 6 en inventario y un asiento con total 32 y utilidad 12.
func TestPost_VentaDescuentaStock(t *testing.T) {
	store := memory.NewStore()
	uc := newGuardedUC(store)

	_, err := uc.Post(context.Background(), purchase("Widget", 10, "5"))
	require.NoError(t, err)

	result, err := uc.Post(context.Background(), sale("Widget", 4, "8", "5"))
	require.NoError(t, err)

	assert.Equal(t, int64(6), result.ResultingQuantity)
	assert.True(t, dec("32").Equal(result.Transaction.TotalAmount))
	assert.True(t, dec("12").Equal(result.Transaction.Profit), "utilidad = (precio - costo) * cantidad")

	item, _ := store.Inventory().Get("Widget")
	assert.Equal(t, int64(6), item.Quantity)
}

// TestPost_GuardedRechazaVentaSinStock: bajo la política guarded una venta por
// más del stock disponible falla con ErrInsufficientStock y no escribe nada.
func TestPost_GuardedRechazaVentaSinStock(t *testing.T) {
	store := memory.NewStore()
	uc := newGuardedUC(store)

	_, err := uc.Post(context.Background(), purchase("Widget", 6, "5"))
	require.NoError(t, err)

	_, err = uc.Post(context.Background(), sale("Widget", 10, "8", "5"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ni asiento ni cambio de inventario: el libro y el stock nunca divergen
	item, _ := store.Inventory().Get("Widget")
	assert.Equal(t, int64(6), item.Quantity)
	txs, _ := store.Transactions().List()
	assert.Len(t, txs, 1, "solo la compra inicial")
}

// TestPost_GuardedRechazaVentaDeProductoDesconocido: vender un producto nunca
// comprado también es stock insuficiente.
func TestPost_GuardedRechazaVentaDeProductoDesconocido(t *testing.T) {
	store := memory.NewStore()
	uc := newGuardedUC(store)

	_, err := uc.Post(context.Background(), sale("Fantasma", 1, "8", "5"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	txs, _ := store.Transactions().List()
	assert.Empty(t, txs)
}

// TestPost_UnguardedPermiteStockNegativo: la política unguarded nunca bloquea
// la venta; deja la cantidad en negativo y lo avisa en el resultado.
func TestPost_UnguardedPermiteStockNegativo(t *testing.T) {
	store := memory.NewStore()
	uc := ledger.NewPostTransactionUseCase(memory.NewTxRunner(store), config.StockPolicyUnguarded)

	result, err := uc.Post(context.Background(), sale("Widget", 3, "8", "5"))
	require.NoError(t, err)

	assert.Equal(t, int64(-3), result.ResultingQuantity)
	assert.True(t, result.NegativeStock, "debe avisar que la existencia quedó en negativo")

	item, _ := store.Inventory().Get("Widget")
	assert.Equal(t, int64(-3), item.Quantity)
}

// ── Validación (rechazo antes de cualquier escritura) ─────────────────────────

func TestPost_ValidacionRechazaEntradaInvalida(t *testing.T) {
	store := memory.NewStore()
	uc := newGuardedUC(store)
	ctx := context.Background()

	cases := []struct {
		name  string
		input ledger.PostInputDTO
	}{
		{"nombre vacío", purchase("", 1, "5")},
		{"cantidad cero", purchase("Widget", 0, "5")},
		{"cantidad negativa", purchase("Widget", -2, "5")},
		{"precio negativo", purchase("Widget", 1, "-1")},
		// venta sin costo: UnitCost nil es inválido en SALE
		{"venta sin costo", ledger.PostInputDTO{
			Kind: entity.KindSALE, ItemName: "Widget", Quantity: 1,
			UnitPrice: dec("8"), PaymentStatus: entity.PaymentSETTLED,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Post(ctx, tc.input)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Nada quedó escrito
	txs, _ := store.Transactions().List()
	assert.Empty(t, txs)
}

func TestPost_ValidacionTipoYEstadoDePago(t *testing.T) {
	store := memory.NewStore()
	uc := newGuardedUC(store)
	ctx := context.Background()

	// Tipo desconocido
	in := purchase("Widget", 1, "5")
	in.Kind = "TRANSFER"
	_, err := uc.Post(ctx, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Una compra no puede quedar como cuenta por cobrar
	in = purchase("Widget", 1, "5")
	in.PaymentStatus = entity.PaymentRECEIVABLE
	_, err = uc.Post(ctx, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Una venta no puede quedar como cuenta por pagar
	in = sale("Widget", 1, "8", "5")
	in.PaymentStatus = entity.PaymentPAYABLE
	_, err = uc.Post(ctx, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestPost_ConservacionDeStock: tras una secuencia de compras y ventas sin
// anulaciones, la existencia de cada producto es exactamente
// suma(compras) - suma(ventas).
func TestPost_ConservacionDeStock(t *testing.T) {
	store := memory.NewStore()
	uc := newGuardedUC(store)
	ctx := context.Background()

	type op struct {
		input ledger.PostInputDTO
	}
	ops := []op{
		{purchase("Widget", 10, "5")},
		{purchase("Gadget", 7, "3")},
		{sale("Widget", 4, "8", "5")},
		{purchase("Widget", 5, "6")},
		{sale("Gadget", 2, "4", "3")},
		{sale("Widget", 3, "9", "5")},
	}
	for _, o := range ops {
		_, err := uc.Post(ctx, o.input)
		require.NoError(t, err)
	}

	// Recalcular el neto desde el libro y compararlo con el inventario
	txs, err := store.Transactions().List()
	require.NoError(t, err)
	net := map[string]int64{}
	for _, tx := range txs {
		switch tx.Kind {
		case entity.KindPURCHASE:
			net[tx.ItemName] += tx.Quantity
		case entity.KindSALE:
			net[tx.ItemName] -= tx.Quantity
		}
	}
	for item, want := range net {
		got, err := store.Inventory().Get(item)
		require.NoError(t, err)
		assert.Equal(t, want, got.Quantity, "conservación de stock para %s", item)
		assert.GreaterOrEqual(t, got.Quantity, int64(0), "guarded nunca deja negativo")
	}
}

// ── Estado parcial ────────────────────────────────────────────────────────────

// stubRunner ejecuta el callback con repos arbitrarios, sin transacción.
type stubRunner struct {
	txRepo  repository.TransactionRepository
	invRepo repository.InventoryRepository
}

func (r stubRunner) Run(_ context.Context, fn func(
	txRepo repository.TransactionRepository,
	invRepo repository.InventoryRepository,
) error) error {
	return fn(r.txRepo, r.invRepo)
}

// failingInventory falla el Upsert tras delegar las lecturas al repo real.
type failingInventory struct {
	repository.InventoryRepository
}

func (f failingInventory) Upsert(_ *entity.InventoryItem) error {
	return errors.New("hoja de cálculo no disponible")
}

// TestPost_FalloDeInventarioTrasAppendEsParcial: si el asiento quedó escrito
// pero el inventario no se pudo actualizar, el error es ErrPartialPost (estado
// divergente detectable, conciliación manual) y nunca un fallo genérico.
func TestPost_FalloDeInventarioTrasAppendEsParcial(t *testing.T) {
	store := memory.NewStore()
	runner := stubRunner{
		txRepo:  store.Transactions(),
		invRepo: failingInventory{InventoryRepository: store.Inventory()},
	}
	uc := ledger.NewPostTransactionUseCase(runner, config.StockPolicyGuarded)

	_, err := uc.Post(context.Background(), purchase("Widget", 10, "5"))
	require.ErrorIs(t, err, domain.ErrPartialPost)

	// El asiento sí quedó en el libro: esa es la divergencia que se reporta
	txs, _ := store.Transactions().List()
	assert.Len(t, txs, 1)
	item, _ := store.Inventory().Get("Widget")
	assert.Equal(t, int64(0), item.Quantity)
}
