package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cantar-api/internal/domain"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
	"github.com/jhoicas/Cantar-api/internal/domain/repository"
)

var _ repository.OrderLineRepository = (*OrderLineRepo)(nil)

// OrderLineRepo líneas de comanda con el estado de pesaje guardado por el backend.
type OrderLineRepo struct {
	q Querier
}

// NewOrderLineRepository construye el adaptador. Acepta pool o tx (Querier).
func NewOrderLineRepository(q Querier) *OrderLineRepo {
	return &OrderLineRepo{q: q}
}

// ListByOrder líneas de la comanda en orden de creación. is_on_scale + on_scale_session_code
// se traducen al RowLock de la entidad.
func (r *OrderLineRepo) ListByOrder(ctx context.Context, dir entity.Direction, orderID string) ([]*entity.EligibleRow, error) {
	_, table, fk, ok := orderTables(dir)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if !validUUID(orderID) {
		return nil, nil
	}
	query := fmt.Sprintf(`
		SELECT id, %[2]s, product_name, quantity, has_tara, has_brut, is_on_scale, on_scale_session_code
		FROM %[1]s WHERE %[2]s = $1
		ORDER BY line_no, id`, table, fk)
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.EligibleRow
	for rows.Next() {
		var (
			row     entity.EligibleRow
			onScale bool
			holder  *string
		)
		if err := rows.Scan(&row.ID, &row.OrderID, &row.ProductName, &row.Quantity,
			&row.HasTara, &row.HasBrut, &onScale, &holder); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		if onScale {
			row.Lock = entity.LockedBy(stringOrEmpty(holder))
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
