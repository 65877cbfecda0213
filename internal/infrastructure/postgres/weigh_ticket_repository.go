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

var _ repository.WeighTicketRepository = (*WeighTicketRepo)(nil)

// WeighTicketRepo pesajes finalizados de la planta (tabla weigh_tickets).
type WeighTicketRepo struct {
	q Querier
}

// NewWeighTicketRepository construye el adaptador. Acepta pool o tx (Querier).
func NewWeighTicketRepository(q Querier) *WeighTicketRepo {
	return &WeighTicketRepo{q: q}
}

const ticketColumns = `
	id, session_id, session_code, direction, order_id, order_code, row_id,
	vehicle_plate, driver_name, plant_id, tara, masa_brut, masa_net,
	humidity_pct, provisional_waybill_no, entry_waybill_no, invoice_no, temperature, observations,
	persisted, remote_message, attempts, created_by, weighed_at, created_at, updated_at`

// Create persiste el ticket. Un session_id repetido es ErrDuplicate.
func (r *WeighTicketRepo) Create(ctx context.Context, t *entity.WeighTicket) error {
	query := `INSERT INTO weigh_tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.SessionID, t.SessionCode, string(t.Direction), t.OrderID, t.OrderCode, nullIfEmpty(t.RowID),
		t.VehiclePlate, t.DriverName, t.PlantID, t.Tara, t.MasaBrut, t.MasaNet,
		t.HumidityPct, nullIfEmpty(t.ProvisionalWaybillNo), nullIfEmpty(t.EntryWaybillNo), nullIfEmpty(t.InvoiceNo),
		t.Temperature, nullIfEmpty(t.Observations),
		t.Persisted, nullIfEmpty(t.RemoteMessage), t.Attempts, t.CreatedBy, t.WeighedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("weigh ticket %s: %w", t.SessionCode, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert weigh ticket: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *WeighTicketRepo) GetByID(ctx context.Context, id string) (*entity.WeighTicket, error) {
	if !validUUID(id) {
		return nil, nil
	}
	row := r.q.QueryRow(ctx, `SELECT `+ticketColumns+` FROM weigh_tickets WHERE id = $1`, id)
	t, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get weigh ticket: %w", err)
	}
	return t, nil
}

// UpdateSync guarda el resultado de un reenvío al backend.
func (r *WeighTicketRepo) UpdateSync(ctx context.Context, t *entity.WeighTicket) error {
	if !validUUID(t.ID) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE weigh_tickets
		SET persisted = $2, remote_message = $3, attempts = $4, updated_at = $5
		WHERE id = $1`,
		t.ID, t.Persisted, nullIfEmpty(t.RemoteMessage), t.Attempts, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update weigh ticket: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List tickets de la planta, más recientes primero.
func (r *WeighTicketRepo) List(ctx context.Context, plantID string, unsyncedOnly bool, limit, offset int) ([]*entity.WeighTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM weigh_tickets
		WHERE plant_id = $1 AND ($2 = false OR persisted = false)
		ORDER BY weighed_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, plantID, unsyncedOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list weigh tickets: %w", err)
	}
	defer rows.Close()
	var list []*entity.WeighTicket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan weigh ticket: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTicket(row pgx.Row) (*entity.WeighTicket, error) {
	var (
		t                                  entity.WeighTicket
		dir                                string
		rowID, provisional, entry, invoice *string
		observations, remoteMessage        *string
	)
	err := row.Scan(
		&t.ID, &t.SessionID, &t.SessionCode, &dir, &t.OrderID, &t.OrderCode, &rowID,
		&t.VehiclePlate, &t.DriverName, &t.PlantID, &t.Tara, &t.MasaBrut, &t.MasaNet,
		&t.HumidityPct, &provisional, &entry, &invoice, &t.Temperature, &observations,
		&t.Persisted, &remoteMessage, &t.Attempts, &t.CreatedBy, &t.WeighedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Direction = entity.Direction(dir)
	t.RowID = stringOrEmpty(rowID)
	t.ProvisionalWaybillNo = stringOrEmpty(provisional)
	t.EntryWaybillNo = stringOrEmpty(entry)
	t.InvoiceNo = stringOrEmpty(invoice)
	t.Observations = stringOrEmpty(observations)
	t.RemoteMessage = stringOrEmpty(remoteMessage)
	return &t, nil
}
