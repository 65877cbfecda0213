package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cantar-api/internal/application/cantar"
	"github.com/jhoicas/Cantar-api/internal/application/dto"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Cantar-api/internal/interfaces/http"
)

type memTickets struct {
	mu   sync.Mutex
	byID map[string]*entity.WeighTicket
}

func (m *memTickets) Create(_ context.Context, t *entity.WeighTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTickets) GetByID(_ context.Context, id string) (*entity.WeighTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memTickets) UpdateSync(ctx context.Context, t *entity.WeighTicket) error {
	return m.Create(ctx, t)
}

func (m *memTickets) List(_ context.Context, _ string, unsyncedOnly bool, _, _ int) ([]*entity.WeighTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.WeighTicket
	for _, t := range m.byID {
		if unsyncedOnly && t.Persisted {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

type stubPDF struct{}

func (stubPDF) GenerateTicketPDF(context.Context, *entity.WeighTicket) ([]byte, error) {
	return []byte("%PDF-1.4 bon"), nil
}

func buildTicketApp(t *testing.T, gw stubGateway) (*fiber.App, *memTickets) {
	t.Helper()
	repo := &memTickets{byID: map[string]*entity.WeighTicket{}}
	require.NoError(t, repo.Create(context.Background(), &entity.WeighTicket{
		ID:           "tk-1",
		SessionCode:  "C261016-001",
		Direction:    entity.DirectionOutbound,
		OrderCode:    "CV-2026-0420",
		VehiclePlate: "B 123 ABC",
		DriverName:   "Ion Popescu",
		PlantID:      testPlantID,
		Tara:         decimal.NewFromInt(12500),
		MasaBrut:     decimal.NewFromInt(38500),
		MasaNet:      decimal.NewFromInt(26000),
		Attempts:     1,
	}))
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Console:   cantar.NewConsole(cantar.ConsoleDeps{PlantID: testPlantID, Logger: zerolog.Nop()}),
		Tickets:   cantar.NewTicketUseCase(repo, gw, stubPDF{}, zerolog.Nop()),
		PlantID:   testPlantID,
		JWTSecret: testJWTSecret,
		JWTIssuer: testIssuer,
	})
	return app, repo
}

func TestTicketHTTP_ListarYReenviar(t *testing.T) {
	app, _ := buildTicketApp(t, stubGateway{success: true})

	var list dto.TicketListResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/cantar/tickets?unsynced=true", nil, &list))
	require.Len(t, list.Items, 1)
	assert.False(t, list.Items[0].Persisted)

	var tk dto.TicketResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/cantar/tickets/tk-1/resync", nil, &tk))
	assert.True(t, tk.Persisted)
	assert.Equal(t, 2, tk.Attempts)

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, doJSON(t, app, http.MethodPost, "/api/cantar/tickets/tk-1/resync", nil, &e))
	assert.Equal(t, "CONFLICT", e.Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodPost, "/api/cantar/tickets/nope/resync", nil, &e))
}

func TestTicketHTTP_PDF(t *testing.T) {
	app, _ := buildTicketApp(t, stubGateway{success: true})

	req := httptest.NewRequest(http.MethodGet, "/api/cantar/tickets/tk-1/pdf", nil)
	req.Header.Set("Authorization", tokenFor(t, "admin", testPlantID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "bon-cantar-C261016-001.pdf")
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.4 bon", string(body))
}
