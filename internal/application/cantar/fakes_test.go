package cantar_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/Cantar-api/internal/application/ports"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos
// ──────────────────────────────────────────────────────────────────────────────

type fakeLookups struct {
	orders   map[string]*entity.Order
	vehicles map[string]*entity.Vehicle
	drivers  map[string]*entity.Driver
}

func newFakeLookups() *fakeLookups {
	return &fakeLookups{
		orders: map[string]*entity.Order{
			"po-1": {ID: "po-1", Code: "CA-2026-0101", Partner: "Agregate Nord SRL", Direction: entity.DirectionInbound},
			"so-1": {ID: "so-1", Code: "CV-2026-0420", Partner: "Construct Vest SA", Direction: entity.DirectionOutbound},
		},
		vehicles: map[string]*entity.Vehicle{
			"v-1": {ID: "v-1", Plate: "B 123 ABC"},
			"v-2": {ID: "v-2", Plate: "CJ 07 XYZ"},
			"v-3": {ID: "v-3", Plate: "IS 99 TIR"},
		},
		drivers: map[string]*entity.Driver{
			"d-1": {ID: "d-1", Name: "Ion Popescu"},
			"d-2": {ID: "d-2", Name: "Maria Ionescu"},
		},
	}
}

func (f *fakeLookups) ListOrders(_ context.Context, dir entity.Direction, _, _ int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, id := range []string{"po-1", "so-1"} {
		if o := f.orders[id]; o.Direction == dir {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeLookups) GetOrder(_ context.Context, dir entity.Direction, id string) (*entity.Order, error) {
	o, ok := f.orders[id]
	if !ok || o.Direction != dir {
		return nil, nil
	}
	return o, nil
}

func (f *fakeLookups) ListVehicles(_ context.Context, _, _ int) ([]*entity.Vehicle, error) {
	return []*entity.Vehicle{f.vehicles["v-1"], f.vehicles["v-2"], f.vehicles["v-3"]}, nil
}

func (f *fakeLookups) GetVehicle(_ context.Context, id string) (*entity.Vehicle, error) {
	return f.vehicles[id], nil
}

func (f *fakeLookups) ListDrivers(_ context.Context, _, _ int) ([]*entity.Driver, error) {
	return []*entity.Driver{f.drivers["d-1"], f.drivers["d-2"]}, nil
}

func (f *fakeLookups) GetDriver(_ context.Context, id string) (*entity.Driver, error) {
	return f.drivers[id], nil
}

type fakeLines struct {
	rows map[string][]*entity.EligibleRow
}

func (f *fakeLines) ListByOrder(_ context.Context, _ entity.Direction, orderID string) ([]*entity.EligibleRow, error) {
	// copias para que el resolver no contamine el fake
	var out []*entity.EligibleRow
	for _, r := range f.rows[orderID] {
		c := *r
		out = append(out, &c)
	}
	return out, nil
}

type fakeGateway struct {
	mu         sync.Mutex
	receptions []ports.ReceptionWeighing
	deliveries []ports.DeliveryWeighing
	result     *ports.GatewayResult
	err        error
}

func (g *fakeGateway) SubmitReception(_ context.Context, w ports.ReceptionWeighing) (*ports.GatewayResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.receptions = append(g.receptions, w)
	return g.result, g.err
}

func (g *fakeGateway) SubmitDelivery(_ context.Context, w ports.DeliveryWeighing) (*ports.GatewayResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deliveries = append(g.deliveries, w)
	return g.result, g.err
}

func okGateway() *fakeGateway {
	return &fakeGateway{result: &ports.GatewayResult{Success: true, Message: "Recepție salvată"}}
}

type fakeTickets struct {
	mu        sync.Mutex
	items     map[string]*entity.WeighTicket
	order     []string
	createErr error
}

func newFakeTickets() *fakeTickets {
	return &fakeTickets{items: map[string]*entity.WeighTicket{}}
}

func (f *fakeTickets) Create(_ context.Context, t *entity.WeighTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.items[t.ID]; ok {
		return errors.New("duplicado")
	}
	c := *t
	f.items[t.ID] = &c
	f.order = append(f.order, t.ID)
	return nil
}

func (f *fakeTickets) GetByID(_ context.Context, id string) (*entity.WeighTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (f *fakeTickets) UpdateSync(_ context.Context, t *entity.WeighTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *t
	f.items[t.ID] = &c
	return nil
}

func (f *fakeTickets) List(_ context.Context, plantID string, unsyncedOnly bool, _, _ int) ([]*entity.WeighTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.WeighTicket
	for _, id := range f.order {
		t := f.items[id]
		if t.PlantID != plantID || (unsyncedOnly && t.Persisted) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

type fakeEvents struct {
	mu        sync.Mutex
	published []*entity.WeighTicket
}

func (f *fakeEvents) PublishWeighingCompleted(_ context.Context, t *entity.WeighTicket) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, t)
}

type fakePDF struct{}

func (fakePDF) GenerateTicketPDF(_ context.Context, t *entity.WeighTicket) ([]byte, error) {
	return []byte("%PDF-" + t.SessionCode), nil
}
