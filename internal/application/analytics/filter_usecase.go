package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// FilterParams predicados independientes y componibles sobre el libro.
// Cada uno en su valor cero significa "sin restricción"; el resultado es la
// conjunción (AND) de los que estén activos.
type FilterParams struct {
	Counterparty string     // igualdad exacta con el cliente/proveedor
	ItemName     string     // igualdad exacta con el producto
	StartDate    *time.Time // porción de fecha >= StartDate
	EndDate      *time.Time // porción de fecha <= EndDate (inclusivo)
}

// FilterUseCase consulta el libro con filtros cruzados y rederiva los totales
// de venta y utilidad sobre el conjunto filtrado.
type FilterUseCase struct {
	txRepo repository.TransactionRepository
}

// NewFilterUseCase construye el caso de uso.
func NewFilterUseCase(txRepo repository.TransactionRepository) *FilterUseCase {
	return &FilterUseCase{txRepo: txRepo}
}

// Filter aplica los predicados activos y devuelve los asientos del más
// reciente al más antiguo (orden de presentación del detalle) junto con
// sales_total y profit_total sobre las ventas filtradas.
func (uc *FilterUseCase) Filter(ctx context.Context, params FilterParams) (*dto.FilteredTransactionsDTO, error) {
	txs, err := uc.txRepo.List()
	if err != nil {
		return nil, fmt.Errorf("consulta filtrada: leer libro de asientos: %w", err)
	}

	salesTotal := decimal.Zero
	profitTotal := decimal.Zero
	out := make([]dto.TransactionDTO, 0, len(txs))

	// Recorre del final al inicio: el detalle se muestra del más reciente al más antiguo
	for i := len(txs) - 1; i >= 0; i-- {
		t := txs[i]
		if !matches(t, params) {
			continue
		}
		if t.Kind == entity.KindSALE {
			salesTotal = salesTotal.Add(t.TotalAmount)
			profitTotal = profitTotal.Add(t.Profit)
		}
		out = append(out, dto.FromTransaction(t))
	}

	return &dto.FilteredTransactionsDTO{
		Transactions: out,
		Total:        len(out),
		SalesTotal:   salesTotal,
		ProfitTotal:  profitTotal,
	}, nil
}

func matches(t *entity.Transaction, p FilterParams) bool {
	if p.Counterparty != "" && t.Counterparty != p.Counterparty {
		return false
	}
	if p.ItemName != "" && t.ItemName != p.ItemName {
		return false
	}
	if p.StartDate != nil && dateOnly(t.Date, p.StartDate.Location()).Before(dateOnly(*p.StartDate, p.StartDate.Location())) {
		return false
	}
	if p.EndDate != nil && dateOnly(t.Date, p.EndDate.Location()).After(dateOnly(*p.EndDate, p.EndDate.Location())) {
		return false
	}
	return true
}

// dateOnly trunca a medianoche en la zona indicada para comparar solo la fecha.
func dateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
