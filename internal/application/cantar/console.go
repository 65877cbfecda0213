// Package cantar orquesta la consola de la báscula: formulario de pesaje nuevo,
// colas de camiones, introducción de masas y envío del pesaje finalizado al backend.
package cantar

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Cantar-api/internal/application/dto"
	"github.com/jhoicas/Cantar-api/internal/application/ports"
	"github.com/jhoicas/Cantar-api/internal/domain"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
	"github.com/jhoicas/Cantar-api/internal/domain/repository"
	"github.com/jhoicas/Cantar-api/internal/domain/weighing"
)

// ConsoleDeps dependencias de la consola. Tickets y Events pueden ser nil.
type ConsoleDeps struct {
	PlantID string
	Lookups repository.LookupRepository
	Rows    *EligibleRowResolver
	Locker  ports.RowLocker
	Gateway ports.WeighingGateway
	Tickets repository.WeighTicketRepository
	Events  ports.EventPublisher
	Logger  zerolog.Logger
}

// Console controlador de la consola de pesaje. Es el único dueño de las colas y del slot activo;
// todas las mutaciones pasan por mu. La llamada remota al backend se hace fuera de mu,
// después de haber aplicado la transición local.
type Console struct {
	mu           sync.Mutex
	queues       *weighing.QueueManager
	resume       weighing.ResumeLookup
	vehicleInput string
	saving       map[string]bool
	seqDay       string
	seq          int

	plantID string
	lookups repository.LookupRepository
	rows    *EligibleRowResolver
	locker  ports.RowLocker
	gateway ports.WeighingGateway
	tickets repository.WeighTicketRepository
	events  ports.EventPublisher
	log     zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewConsole construye la consola con colas vacías.
func NewConsole(deps ConsoleDeps) *Console {
	events := deps.Events
	if events == nil {
		events = ports.NopPublisher{}
	}
	locker := deps.Locker
	if locker == nil {
		locker = NewMemoryRowLocker()
	}
	return &Console{
		queues:  weighing.NewQueueManager(),
		saving:  make(map[string]bool),
		plantID: deps.PlantID,
		lookups: deps.Lookups,
		rows:    deps.Rows,
		locker:  locker,
		gateway: deps.Gateway,
		tickets: deps.Tickets,
		events:  events,
		log:     deps.Logger.With().Str("component", "cantar.console").Logger(),
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// StartNewWeighing crea una sesión en paso 1/2 y la pone al final de queue1. No la activa.
// Falta de comanda, vehículo o conductor -> ErrMissingSelection; ids desconocidos -> ErrNotFound.
func (c *Console) StartNewWeighing(ctx context.Context, operatorID string, in dto.NewWeighingRequest) (*dto.SessionResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	dir := entity.Direction(in.Direction)

	order, vehicle, driver, err := c.resolveSelection(ctx, dir, in)
	if err != nil {
		return nil, err
	}

	guardKey := "new:" + weighing.NormalizePlate(vehicle.Plate)
	if !c.beginSave(guardKey) {
		return nil, domain.ErrSaveInProgress
	}
	defer c.endSave(guardKey)

	now := c.now()
	c.mu.Lock()
	code := c.nextCodeLocked(now)
	c.mu.Unlock()

	s := &entity.WeighSession{
		ID:                c.newID(),
		Code:              code,
		Direction:         dir,
		OrderCode:         order.Code,
		RowID:             in.RowID,
		VehiclePlate:      strings.TrimSpace(vehicle.Plate),
		DriverName:        strings.TrimSpace(driver.Name),
		Step:              entity.Step1,
		PlantID:           c.plantID,
		CreatedBy:         operatorID,
		CreatedAt:         now,
		UpdatedAt:         now,
		FinanceApproved:   in.FinanceApproved,
		ToleranceExceeded: in.ToleranceExceeded,
		TolerancePercent:  in.TolerancePercent,
		Observations:      in.Observations,
	}
	if dir == entity.DirectionInbound {
		s.PurchaseOrderID = order.ID
		s.HumidityPct = in.HumidityPct
		s.ProvisionalWaybillNo = in.ProvisionalWaybillNo
		s.EntryWaybillNo = in.EntryWaybillNo
		s.InvoiceNo = in.InvoiceNo
	} else {
		s.SalesOrderID = order.ID
		s.Temperature = in.Temperature
	}

	if s.RowID != "" {
		if c.rows != nil {
			if err := c.rows.CheckSelectable(ctx, dir, order.ID, s.RowID); err != nil {
				return nil, err
			}
		}
		if err := c.locker.Acquire(ctx, s.RowID, ports.RowHolder{SessionID: s.ID, Code: s.Code}); err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	err = c.queues.EnqueueStep1(s)
	c.mu.Unlock()
	if err != nil {
		c.releaseRow(ctx, s)
		return nil, err
	}

	c.log.Info().
		Str("session_id", s.ID).
		Str("code", s.Code).
		Str("direction", string(dir)).
		Str("plate", s.VehiclePlate).
		Msg("pesaje nuevo en cola")
	return toSessionResponse(s), nil
}

func (c *Console) resolveSelection(ctx context.Context, dir entity.Direction, in dto.NewWeighingRequest) (*entity.Order, *entity.Vehicle, *entity.Driver, error) {
	if c.lookups == nil {
		return nil, nil, nil, fmt.Errorf("cantar: lookups no configurado")
	}
	order, err := c.lookups.GetOrder(ctx, dir, in.OrderID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("obtener comanda: %w", err)
	}
	if order == nil {
		return nil, nil, nil, fmt.Errorf("comanda %s: %w", in.OrderID, domain.ErrNotFound)
	}
	vehicle, err := c.lookups.GetVehicle(ctx, in.VehicleID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("obtener vehículo: %w", err)
	}
	if vehicle == nil {
		return nil, nil, nil, fmt.Errorf("vehículo %s: %w", in.VehicleID, domain.ErrNotFound)
	}
	driver, err := c.lookups.GetDriver(ctx, in.DriverID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("obtener conductor: %w", err)
	}
	if driver == nil {
		return nil, nil, nil, fmt.Errorf("conductor %s: %w", in.DriverID, domain.ErrNotFound)
	}
	if strings.TrimSpace(vehicle.Plate) == "" || strings.TrimSpace(driver.Name) == "" {
		return nil, nil, nil, domain.ErrInvalidInput
	}
	return order, vehicle, driver, nil
}

// CallNext activa la cabeza de queue1 y copia su matrícula al campo editable.
// Con queue1 vacía devuelve nil sin tocar el estado.
func (c *Console) CallNext() *dto.SessionResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.queues.CallNext()
	if !ok {
		return nil
	}
	c.vehicleInput = s.VehiclePlate
	c.log.Debug().Str("session_id", s.ID).Str("code", s.Code).Msg("camión llamado")
	return toSessionResponse(s)
}

// SelectFromQueue activa manualmente cualquier sesión de queue1 o queue2.
func (c *Console) SelectFromQueue(sessionID string) (*dto.SessionResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.queues.SelectFromQueue(sessionID)
	if err != nil {
		return nil, err
	}
	c.vehicleInput = s.VehiclePlate
	c.log.Debug().Str("session_id", s.ID).Str("code", s.Code).Msg("sesión seleccionada manualmente")
	return toSessionResponse(s), nil
}

// ReleaseActive deja la vista activa vacía sin tocar la sesión: si venía de CallNext
// vuelve a la cabeza de queue1, si no sigue en su cola.
func (c *Console) ReleaseActive() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.queues.Active() == nil {
		return
	}
	c.queues.ClearActive()
	c.vehicleInput = ""
}

// SetVehicleInput guarda la matrícula tecleada y devuelve si ya hay un camión en curso con ella.
func (c *Console) SetVehicleInput(plate string) dto.ResumeResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vehicleInput = plate
	return c.resumeLocked(plate)
}

// Resume búsqueda "reanudar" sin modificar el campo de matrícula.
func (c *Console) Resume(plate string) dto.ResumeResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resumeLocked(plate)
}

func (c *Console) resumeLocked(plate string) dto.ResumeResponse {
	out := dto.ResumeResponse{Input: weighing.NormalizePlate(plate)}
	if s := c.resume.Lookup(c.queues, plate); s != nil {
		out.Found = true
		out.Session = toSessionResponse(s)
	}
	return out
}

// SubmitWeight introduce una masa para la sesión.
//
//   - Masa <= 0 o brut < tara: error de validación, la sesión no cambia.
//   - Completa el paso 1/2: pasa a 2/2, se mueve al final de queue2 y se libera el slot activo.
//   - Completa el paso 2/2: se quita de las colas y luego se envía al backend. Un fallo remoto
//     se informa en la respuesta pero no deshace la transición local.
func (c *Console) SubmitWeight(ctx context.Context, sessionID string, in dto.SubmitWeightRequest) (*dto.SubmitWeightResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	c.mu.Lock()
	s, loc := c.queues.Find(sessionID)
	if loc == weighing.LocationNone {
		c.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	if c.saving[sessionID] {
		c.mu.Unlock()
		return nil, domain.ErrSaveInProgress
	}

	wt := entity.WeightType(in.Type)
	if wt == "" {
		wt = weighing.NextWeightType(s.Direction, s.Step)
	}
	updated, err := weighing.ApplyWeight(s, wt, in.Value, in.Observations, c.now())
	if err != nil {
		c.mu.Unlock()
		c.log.Debug().Err(err).Str("session_id", sessionID).Str("type", string(wt)).Msg("masa rechazada")
		return nil, err
	}

	if !weighing.StepCompleted(updated) {
		err = c.queues.Replace(updated)
		c.mu.Unlock()
		if err != nil {
			return nil, err
		}
		return &dto.SubmitWeightResponse{Session: *toSessionResponse(updated)}, nil
	}

	if updated.Step == entity.Step1 {
		updated.Step = entity.Step2
		active := c.queues.Active()
		wasActive := active != nil && active.ID == updated.ID
		err = c.queues.AdvanceToStep2(updated)
		if err == nil && wasActive {
			c.vehicleInput = ""
		}
		c.mu.Unlock()
		if err != nil {
			return nil, err
		}
		c.log.Info().Str("session_id", updated.ID).Str("code", updated.Code).Msg("primera masa registrada, pasa a 2/2")
		return &dto.SubmitWeightResponse{Session: *toSessionResponse(updated), Advanced: true}, nil
	}

	// Medición final: la cola se actualiza antes de hablar con el backend.
	c.completeLocked(sessionID)
	c.saving[sessionID] = true
	c.mu.Unlock()
	defer c.endSave(sessionID)

	ticket, stored := c.finalize(ctx, updated)
	persisted := ticket.Persisted
	out := &dto.SubmitWeightResponse{
		Session:   *toSessionResponse(updated),
		Completed: true,
		Persisted: &persisted,
		Message:   ticket.RemoteMessage,
	}
	if stored {
		out.TicketID = ticket.ID
	} else if c.tickets != nil {
		out.Message = joinMessages(ticket.RemoteMessage, ticketNotStoredWarning)
	}
	return out, nil
}

// ticketNotStoredWarning aviso para el operador cuando el ticket local no se pudo guardar:
// sin ticket no hay reenvío posible y el pesaje debe anotarse a mano.
const ticketNotStoredWarning = "ticket local no guardado: anote el pesaje manualmente"

func joinMessages(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "; ")
}

// finalize envía el pesaje al backend, guarda el ticket local, libera la línea y publica el evento.
// Nunca falla: los errores quedan en el ticket y en el log. stored indica si el ticket quedó
// guardado en el repositorio local.
func (c *Console) finalize(ctx context.Context, s *entity.WeighSession) (ticket *entity.WeighTicket, stored bool) {
	ticket = entity.NewWeighTicket(c.newID(), s, c.now())
	submitTicket(ctx, c.gateway, ticket)

	ev := c.log.Info()
	if !ticket.Persisted {
		ev = c.log.Warn()
	}
	ev.Str("session_id", s.ID).
		Str("code", s.Code).
		Bool("persisted", ticket.Persisted).
		Str("remote_message", ticket.RemoteMessage).
		Str("masa_net", ticket.MasaNet.String()).
		Msg("pesaje finalizado")

	if c.tickets != nil {
		if err := c.tickets.Create(ctx, ticket); err != nil {
			c.log.Error().Err(err).
				Str("ticket_id", ticket.ID).
				Str("code", s.Code).
				Bool("persisted", ticket.Persisted).
				Str("masa_brut", ticket.MasaBrut.String()).
				Str("tara", ticket.Tara.String()).
				Msg("guardar ticket de pesaje")
		} else {
			stored = true
		}
	}
	c.releaseRow(ctx, s)
	c.events.PublishWeighingCompleted(ctx, ticket)
	return ticket, stored
}

// CompleteSession quita la sesión de las colas y limpia la vista activa si era la activa.
func (c *Console) CompleteSession(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completeLocked(sessionID)
}

func (c *Console) completeLocked(sessionID string) bool {
	active := c.queues.Active()
	wasActive := active != nil && active.ID == sessionID
	if !c.queues.Complete(sessionID) {
		return false
	}
	if wasActive {
		c.vehicleInput = ""
	}
	return true
}

// State instantánea de la consola: colas, sesión activa, campo de matrícula y sugerencia de reanudar.
func (c *Console) State() dto.ConsoleStateResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := dto.ConsoleStateResponse{
		Queue1:       toSessionList(c.queues.Queue1()),
		Queue2:       toSessionList(c.queues.Queue2()),
		Active:       toSessionResponse(c.queues.Active()),
		VehicleInput: c.vehicleInput,
	}
	if r := c.resumeLocked(c.vehicleInput); r.Found {
		out.Resume = r.Session
	}
	return out
}

func (c *Console) releaseRow(ctx context.Context, s *entity.WeighSession) {
	if s.RowID == "" {
		return
	}
	if err := c.locker.Release(ctx, s.RowID, s.ID); err != nil {
		c.log.Warn().Err(err).Str("row_id", s.RowID).Str("session_id", s.ID).Str("code", s.Code).Msg("liberar línea de comanda")
	}
}

func (c *Console) beginSave(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saving[key] {
		return false
	}
	c.saving[key] = true
	return true
}

func (c *Console) endSave(key string) {
	c.mu.Lock()
	delete(c.saving, key)
	c.mu.Unlock()
}

// nextCodeLocked código legible del día: C261016-001, C261016-002... El contador vive en el proceso,
// así que el código solo se muestra; la identidad de la sesión es su ID.
func (c *Console) nextCodeLocked(now time.Time) string {
	day := now.Format("060102")
	if day != c.seqDay {
		c.seqDay = day
		c.seq = 0
	}
	c.seq++
	return fmt.Sprintf("C%s-%03d", day, c.seq)
}
