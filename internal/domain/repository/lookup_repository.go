package repository

import (
	"context"

	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

// LookupRepository listas de solo lectura para el formulario de nuevo pesaje.
// Los métodos Get devuelven (nil, nil) si el registro no existe.
type LookupRepository interface {
	ListOrders(ctx context.Context, dir entity.Direction, limit, offset int) ([]*entity.Order, error)
	GetOrder(ctx context.Context, dir entity.Direction, id string) (*entity.Order, error)
	ListVehicles(ctx context.Context, limit, offset int) ([]*entity.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*entity.Vehicle, error)
	ListDrivers(ctx context.Context, limit, offset int) ([]*entity.Driver, error)
	GetDriver(ctx context.Context, id string) (*entity.Driver, error)
}
