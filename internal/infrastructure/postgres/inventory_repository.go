package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de existencias sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene la existencia actual de un producto. Si no hay fila, devuelve
// una fila en cero (la creación real ocurre en el Upsert).
func (r *InventoryRepo) Get(itemName string) (*entity.InventoryItem, error) {
	query := `
		SELECT item_name, quantity, updated_at
		FROM inventory WHERE item_name = $1`
	var it entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, itemName).Scan(
		&it.ItemName, &it.Quantity, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryItem{ItemName: itemName}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &it, nil
}

// GetForUpdate obtiene la existencia y bloquea la fila para update (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(itemName string) (*entity.InventoryItem, error) {
	query := `
		SELECT item_name, quantity, updated_at
		FROM inventory WHERE item_name = $1
		FOR UPDATE`
	var it entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, itemName).Scan(
		&it.ItemName, &it.Quantity, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryItem{ItemName: itemName}, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &it, nil
}

// Upsert inserta o actualiza la cantidad de existencias (clave: nombre de producto).
func (r *InventoryRepo) Upsert(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory (item_name, quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (item_name)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, item.ItemName, item.Quantity)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

// List devuelve todas las filas de existencias ordenadas por nombre.
func (r *InventoryRepo) List() ([]*entity.InventoryItem, error) {
	query := `SELECT item_name, quantity, updated_at FROM inventory ORDER BY item_name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(&it.ItemName, &it.Quantity, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
