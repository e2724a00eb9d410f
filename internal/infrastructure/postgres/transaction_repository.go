package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// Columnas en el orden del layout persistido: date, kind, item, qty, price,
// total, payment_status, cost, profit, counterparty. El orden importa para la
// compatibilidad con datos migrados desde el store posicional.
const transactionColumns = `id, date, kind, item_name, quantity, unit_price, total_amount, payment_status, unit_cost, profit, counterparty, created_at`

// legacyDateLayout formato del selector de fecha heredado (hora local, precisión de segundos).
const legacyDateLayout = "2006-01-02 15:04:05"

// TransactionRepo implementación del libro de asientos sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste un asiento. Un ID duplicado se reporta como ErrConflict.
func (r *TransactionRepo) Create(t *entity.Transaction) error {
	query := `
		INSERT INTO ledger_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	counterparty := (*string)(nil)
	if t.Counterparty != "" {
		counterparty = &t.Counterparty
	}
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Date, t.Kind, t.ItemName, t.Quantity, t.UnitPrice,
		t.TotalAmount, t.PaymentStatus, t.UnitCost, t.Profit, counterparty, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create transaction %s: %w", t.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID. Nil si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM ledger_transactions WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// FindFirstByDate devuelve el primer asiento cuya fecha coincide con el texto
// del selector (formato 2006-01-02 15:04:05, el del layout heredado).
// El selector se interpreta en hora local de la aplicación y se compara contra
// el instante almacenado truncado a segundos; así la coincidencia no depende
// de la zona horaria de la sesión de PostgreSQL. Contrato de primera
// coincidencia en orden de inserción.
func (r *TransactionRepo) FindFirstByDate(dateStr string) (*entity.Transaction, error) {
	when, perr := time.ParseInLocation(legacyDateLayout, strings.TrimSpace(dateStr), time.Local)
	if perr != nil {
		// Un selector ilegible no puede coincidir con ningún asiento
		return nil, nil
	}
	query := `
		SELECT ` + transactionColumns + ` FROM ledger_transactions
		WHERE date_trunc('second', date) = $1
		ORDER BY created_at, id LIMIT 1`
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, when))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find transaction by date: %w", err)
	}
	return t, nil
}

// List devuelve el libro completo en orden de inserción.
func (r *TransactionRepo) List() ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM ledger_transactions ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Delete elimina un asiento del libro. ErrNotFound si no existe.
func (r *TransactionRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM ledger_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var counterparty *string
	err := row.Scan(
		&t.ID, &t.Date, &t.Kind, &t.ItemName, &t.Quantity, &t.UnitPrice,
		&t.TotalAmount, &t.PaymentStatus, &t.UnitCost, &t.Profit, &counterparty, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if counterparty != nil {
		t.Counterparty = *counterparty
	}
	return &t, nil
}
