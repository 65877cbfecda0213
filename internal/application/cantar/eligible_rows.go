package cantar

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cantar-api/internal/application/dto"
	"github.com/jhoicas/Cantar-api/internal/application/ports"
	"github.com/jhoicas/Cantar-api/internal/domain"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
	"github.com/jhoicas/Cantar-api/internal/domain/repository"
	"github.com/jhoicas/Cantar-api/internal/domain/weighing"
)

// EligibleRowResolver busca las líneas de una comanda a las que se puede asociar una sesión.
// El estado isOnScale combina el flag guardado en la base con el locker de líneas.
type EligibleRowResolver struct {
	lines  repository.OrderLineRepository
	locker ports.RowLocker
}

// NewEligibleRowResolver construye el resolver.
func NewEligibleRowResolver(lines repository.OrderLineRepository, locker ports.RowLocker) *EligibleRowResolver {
	return &EligibleRowResolver{lines: lines, locker: locker}
}

// Resolve devuelve todas las líneas de la comanda con su estado de bloqueo.
func (r *EligibleRowResolver) Resolve(ctx context.Context, dir entity.Direction, orderID string) ([]*entity.EligibleRow, error) {
	if !dir.Valid() || orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	rows, err := r.lines.ListByOrder(ctx, dir, orderID)
	if err != nil {
		return nil, fmt.Errorf("listar líneas de comanda: %w", err)
	}
	if r.locker == nil {
		return rows, nil
	}
	for _, row := range rows {
		if row.Lock.IsLocked() {
			continue
		}
		holder, err := r.locker.Holder(ctx, row.ID)
		if err != nil {
			return nil, fmt.Errorf("consultar bloqueo de línea %s: %w", row.ID, err)
		}
		if !holder.Free() {
			row.Lock = entity.LockedBy(holder.Code)
		}
	}
	return rows, nil
}

// List variante para HTTP con la dirección como texto.
func (r *EligibleRowResolver) List(ctx context.Context, direction, orderID string) ([]dto.EligibleRowResponse, error) {
	rows, err := r.Resolve(ctx, entity.Direction(direction), orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EligibleRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toEligibleRowResponse(row))
	}
	return out, nil
}

// CheckSelectable valida que rowID pertenece a la comanda y puede usarse en una sesión nueva.
func (r *EligibleRowResolver) CheckSelectable(ctx context.Context, dir entity.Direction, orderID, rowID string) error {
	rows, err := r.Resolve(ctx, dir, orderID)
	if err != nil {
		return err
	}
	_, err = weighing.CheckRowSelectable(rows, rowID)
	return err
}
