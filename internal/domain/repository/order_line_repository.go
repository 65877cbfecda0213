package repository

import (
	"context"

	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

// OrderLineRepository líneas de comanda candidatas para una sesión de pesaje.
type OrderLineRepository interface {
	ListByOrder(ctx context.Context, dir entity.Direction, orderID string) ([]*entity.EligibleRow, error)
}
