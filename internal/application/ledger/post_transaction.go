package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	domledger "github.com/jhoicas/Kardex-api/internal/domain/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	"github.com/jhoicas/Kardex-api/pkg/config"
)

// PostTransactionUseCase registra asientos de compra/venta de forma
// transaccional, manteniendo el invariante de conservación de stock:
// existencia(producto) == suma de compras - suma de ventas no anuladas.
//
// La política de venta (guarded/unguarded) se fija al construir el caso de uso
// y aplica a todas las peticiones del proceso; mezclarlas por llamada rompería
// el invariante de no-negatividad de la variante guarded.
type PostTransactionUseCase struct {
	txRunner TxRunner
	policy   string
}

// NewPostTransactionUseCase construye el caso de uso.
func NewPostTransactionUseCase(txRunner TxRunner, policy string) *PostTransactionUseCase {
	return &PostTransactionUseCase{txRunner: txRunner, policy: policy}
}

// PostInputDTO entrada para registrar un asiento.
// UnitCost es obligatorio en ventas (SALE); en compras se ignora y se toma el
// precio de compra como costo.
type PostInputDTO struct {
	Kind          string
	ItemName      string
	Quantity      int64
	UnitPrice     decimal.Decimal
	UnitCost      *decimal.Decimal
	PaymentStatus string
	Counterparty  string
}

// PostResult resultado de un registro exitoso.
// NegativeStock solo puede ser true bajo la política unguarded.
type PostResult struct {
	Transaction       *entity.Transaction
	ResultingQuantity int64
	NegativeStock     bool
}

// Post valida la entrada, calcula montos y utilidad, y dentro de una
// transacción del store: lee la existencia actual (con bloqueo de fila),
// aplica la política de venta, escribe el asiento y actualiza el inventario.
//
// Orden de escritura: primero el asiento, luego el inventario. Si el upsert de
// inventario falla tras un append exitoso, el error se reporta como
// ErrPartialPost; en backends sin transacción real el estado divergente queda
// persistido y requiere conciliación manual.
func (uc *PostTransactionUseCase) Post(ctx context.Context, input PostInputDTO) (*PostResult, error) {
	// Validar antes de cualquier escritura
	if input.ItemName == "" {
		return nil, fmt.Errorf("%w: nombre de producto vacío", domain.ErrInvalidInput)
	}
	if input.Quantity < 1 {
		return nil, fmt.Errorf("%w: la cantidad debe ser >= 1", domain.ErrInvalidInput)
	}
	if input.UnitPrice.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el precio unitario no puede ser negativo", domain.ErrInvalidInput)
	}
	if !domledger.ValidPayment(input.Kind, input.PaymentStatus) {
		return nil, fmt.Errorf("%w: estado de pago %q no aplica a %q", domain.ErrInvalidInput, input.PaymentStatus, input.Kind)
	}

	var unitCost decimal.Decimal
	switch input.Kind {
	case entity.KindPURCHASE:
		// En compras el costo es el precio de compra
		unitCost = input.UnitPrice
	case entity.KindSALE:
		if input.UnitCost == nil || input.UnitCost.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: costo unitario obligatorio y no negativo en ventas", domain.ErrInvalidInput)
		}
		unitCost = *input.UnitCost
	default:
		return nil, fmt.Errorf("%w: tipo de asiento desconocido %q", domain.ErrInvalidInput, input.Kind)
	}

	now := time.Now()
	tx := &entity.Transaction{
		ID:            uuid.New().String(),
		Date:          now,
		Kind:          input.Kind,
		ItemName:      input.ItemName,
		Quantity:      input.Quantity,
		UnitPrice:     input.UnitPrice,
		TotalAmount:   domledger.TotalAmount(input.Quantity, input.UnitPrice),
		PaymentStatus: input.PaymentStatus,
		UnitCost:      unitCost,
		Profit:        domledger.Profit(input.Kind, input.Quantity, input.UnitPrice, unitCost),
		Counterparty:  input.Counterparty,
		CreatedAt:     now,
	}

	var result *PostResult
	err := uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		invRepo repository.InventoryRepository,
	) error {
		// Bloquea la fila de existencias para evitar lost updates entre
		// registros concurrentes del mismo producto
		item, err := invRepo.GetForUpdate(input.ItemName)
		if err != nil {
			return fmt.Errorf("consultar existencias de %q: %w", input.ItemName, err)
		}

		var newQty int64
		switch input.Kind {
		case entity.KindPURCHASE:
			newQty = item.Quantity + input.Quantity
		case entity.KindSALE:
			if uc.policy == config.StockPolicyGuarded && item.Quantity < input.Quantity {
				// Se rechaza la operación completa: ni asiento ni inventario
				return domain.ErrInsufficientStock
			}
			newQty = item.Quantity - input.Quantity
		}

		// Primero el asiento; si falla, nada quedó escrito
		if err := txRepo.Create(tx); err != nil {
			return fmt.Errorf("registrar asiento: %w", err)
		}

		item.Quantity = newQty
		item.UpdatedAt = now
		if err := invRepo.Upsert(item); err != nil {
			// El asiento ya está en el libro: estado divergente detectable
			return fmt.Errorf("%w (asiento %s): %w", domain.ErrPartialPost, tx.ID, err)
		}

		result = &PostResult{
			Transaction:       tx,
			ResultingQuantity: newQty,
			NegativeStock:     newQty < 0,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PostFromRequest adapta el request HTTP al caso de uso Post(ctx, PostInputDTO).
func (uc *PostTransactionUseCase) PostFromRequest(ctx context.Context, in dto.PostTransactionRequest) (*PostResult, error) {
	return uc.Post(ctx, PostInputDTO{
		Kind:          in.Kind,
		ItemName:      in.ItemName,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		UnitCost:      in.UnitCost,
		PaymentStatus: in.PaymentStatus,
		Counterparty:  in.Counterparty,
	})
}
