package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Cantar-api/internal/domain"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
	"github.com/jhoicas/Cantar-api/internal/domain/repository"
)

var _ repository.LookupRepository = (*LookupRepo)(nil)

// LookupRepo comandas abiertas, vehículos y conductores para los selectores de la consola.
type LookupRepo struct {
	q Querier
}

// NewLookupRepository construye el adaptador. Acepta pool o tx (Querier).
func NewLookupRepository(q Querier) *LookupRepo {
	return &LookupRepo{q: q}
}

// ListOrders comandas no cerradas de la dirección indicada, más recientes primero.
func (r *LookupRepo) ListOrders(ctx context.Context, dir entity.Direction, limit, offset int) ([]*entity.Order, error) {
	table, _, _, ok := orderTables(dir)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	query := fmt.Sprintf(`
		SELECT id, code, COALESCE(partner_name, '')
		FROM %s WHERE is_closed = false
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, table)
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o := entity.Order{Direction: dir}
		if err := rows.Scan(&o.ID, &o.Code, &o.Partner); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// GetOrder devuelve nil, nil si la comanda no existe en la tabla de esa dirección.
func (r *LookupRepo) GetOrder(ctx context.Context, dir entity.Direction, id string) (*entity.Order, error) {
	table, _, _, ok := orderTables(dir)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if !validUUID(id) {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT id, code, COALESCE(partner_name, '') FROM %s WHERE id = $1`, table)
	o := entity.Order{Direction: dir}
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.Code, &o.Partner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// ListVehicles vehículos activos ordenados por matrícula.
func (r *LookupRepo) ListVehicles(ctx context.Context, limit, offset int) ([]*entity.Vehicle, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, plate_number FROM vehicles WHERE is_active = true
		ORDER BY plate_number LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.Plate); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// GetVehicle obtiene un vehículo por ID.
func (r *LookupRepo) GetVehicle(ctx context.Context, id string) (*entity.Vehicle, error) {
	if !validUUID(id) {
		return nil, nil
	}
	var v entity.Vehicle
	err := r.q.QueryRow(ctx, `SELECT id, plate_number FROM vehicles WHERE id = $1`, id).Scan(&v.ID, &v.Plate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// ListDrivers conductores activos ordenados por nombre.
func (r *LookupRepo) ListDrivers(ctx context.Context, limit, offset int) ([]*entity.Driver, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, full_name FROM drivers WHERE is_active = true
		ORDER BY full_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Driver
	for rows.Next() {
		var d entity.Driver
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// GetDriver obtiene un conductor por ID.
func (r *LookupRepo) GetDriver(ctx context.Context, id string) (*entity.Driver, error) {
	if !validUUID(id) {
		return nil, nil
	}
	var d entity.Driver
	err := r.q.QueryRow(ctx, `SELECT id, full_name FROM drivers WHERE id = $1`, id).Scan(&d.ID, &d.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver: %w", err)
	}
	return &d, nil
}
