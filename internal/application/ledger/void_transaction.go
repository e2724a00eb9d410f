package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// VoidTransactionUseCase anula un asiento: lo elimina del libro y revierte su
// efecto sobre el inventario (una venta anulada devuelve stock; una compra
// anulada lo descuenta y puede dejarlo en negativo, costo aceptado de permitir
// anulaciones históricas sin revalidar la cadena cronológica del producto).
type VoidTransactionUseCase struct {
	txRunner TxRunner
}

// NewVoidTransactionUseCase construye el caso de uso.
func NewVoidTransactionUseCase(txRunner TxRunner) *VoidTransactionUseCase {
	return &VoidTransactionUseCase{txRunner: txRunner}
}

// VoidByID anula el asiento identificado por su ID único.
// ErrNotFound si no existe; nada cambia en ese caso.
func (uc *VoidTransactionUseCase) VoidByID(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id vacío", domain.ErrInvalidInput)
	}
	return uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		invRepo repository.InventoryRepository,
	) error {
		tx, err := txRepo.GetByID(id)
		if err != nil {
			return fmt.Errorf("buscar asiento %s: %w", id, err)
		}
		if tx == nil {
			return domain.ErrNotFound
		}
		return uc.void(txRepo, invRepo, tx)
	})
}

// VoidByDate anula el primer asiento cuya fecha formateada coincide con el
// selector. Contrato de primera coincidencia: si hay varios asientos en el
// mismo segundo se anula el primero en orden de almacenamiento. Para anular
// uno concreto usar VoidByID.
func (uc *VoidTransactionUseCase) VoidByDate(ctx context.Context, dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("%w: selector de fecha vacío", domain.ErrInvalidInput)
	}
	return uc.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		invRepo repository.InventoryRepository,
	) error {
		tx, err := txRepo.FindFirstByDate(dateStr)
		if err != nil {
			return fmt.Errorf("buscar asiento por fecha %q: %w", dateStr, err)
		}
		if tx == nil {
			return domain.ErrNotFound
		}
		return uc.void(txRepo, invRepo, tx)
	})
}

// void elimina el asiento y corrige el inventario. Un fallo en la corrección
// tras el borrado exitoso se reporta como ErrPartialVoid, nunca como un error
// genérico de borrado.
func (uc *VoidTransactionUseCase) void(
	txRepo repository.TransactionRepository,
	invRepo repository.InventoryRepository,
	tx *entity.Transaction,
) error {
	if err := txRepo.Delete(tx.ID); err != nil {
		return fmt.Errorf("eliminar asiento %s: %w", tx.ID, err)
	}

	item, err := invRepo.GetForUpdate(tx.ItemName)
	if err != nil {
		return fmt.Errorf("%w (asiento %s): %w", domain.ErrPartialVoid, tx.ID, err)
	}
	// Venta anulada -> devolver stock; compra anulada -> descontarlo
	switch tx.Kind {
	case entity.KindSALE:
		item.Quantity += tx.Quantity
	case entity.KindPURCHASE:
		item.Quantity -= tx.Quantity
	}
	item.UpdatedAt = time.Now()
	if err := invRepo.Upsert(item); err != nil {
		return fmt.Errorf("%w (asiento %s): %w", domain.ErrPartialVoid, tx.ID, err)
	}
	return nil
}
