package cantar_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cantar-api/internal/application/cantar"
	"github.com/jhoicas/Cantar-api/internal/application/dto"
	"github.com/jhoicas/Cantar-api/internal/application/ports"
	"github.com/jhoicas/Cantar-api/internal/domain"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

func storedTicket(t *testing.T, repo *fakeTickets, id string, persisted bool) *entity.WeighTicket {
	t.Helper()
	tara := decimal.NewFromInt(12000)
	brut := decimal.NewFromInt(32000)
	net := brut.Sub(tara)
	s := &entity.WeighSession{
		ID:              "sess-" + id,
		Code:            "C261016-00" + id,
		Direction:       entity.DirectionInbound,
		PurchaseOrderID: "po-1",
		OrderCode:       "CA-2026-0101",
		VehiclePlate:    "B 123 ABC",
		DriverName:      "Ion Popescu",
		Step:            entity.Step2,
		Tara:            &tara,
		MasaBrut:        &brut,
		MasaNet:         &net,
		PlantID:         testPlantID,
	}
	tk := entity.NewWeighTicket(id, s, time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC))
	tk.Persisted = persisted
	tk.Attempts = 1
	if !persisted {
		tk.RemoteMessage = "timeout"
	}
	require.NoError(t, repo.Create(context.Background(), tk))
	return tk
}

// ──────────────────────────────────────────────────────────────────────────────
// Resync
// ──────────────────────────────────────────────────────────────────────────────

func TestTicketResync_Exito(t *testing.T) {
	repo := newFakeTickets()
	storedTicket(t, repo, "1", false)
	gw := okGateway()
	uc := cantar.NewTicketUseCase(repo, gw, fakePDF{}, zerolog.Nop())

	out, err := uc.Resync(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, out.Persisted)
	assert.Equal(t, 2, out.Attempts)
	assert.Equal(t, "Recepție salvată", out.RemoteMessage)
	require.Len(t, gw.receptions, 1)
	assert.True(t, gw.receptions[0].MasaBrut.Equal(decimal.NewFromInt(32000)))

	saved, _ := repo.GetByID(context.Background(), "1")
	assert.True(t, saved.Persisted)
}

func TestTicketResync_FalloSigueSinSincronizar(t *testing.T) {
	repo := newFakeTickets()
	storedTicket(t, repo, "1", false)
	gw := &fakeGateway{result: &ports.GatewayResult{Success: false, Message: "Comanda închisă"}}
	uc := cantar.NewTicketUseCase(repo, gw, fakePDF{}, zerolog.Nop())

	out, err := uc.Resync(context.Background(), "1")
	require.NoError(t, err)
	assert.False(t, out.Persisted)
	assert.Equal(t, "Comanda închisă", out.RemoteMessage)
}

func TestTicketResync_YaSincronizado(t *testing.T) {
	repo := newFakeTickets()
	storedTicket(t, repo, "1", true)
	gw := okGateway()
	uc := cantar.NewTicketUseCase(repo, gw, fakePDF{}, zerolog.Nop())

	_, err := uc.Resync(context.Background(), "1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, gw.receptions)
}

func TestTicketResync_NoExiste(t *testing.T) {
	uc := cantar.NewTicketUseCase(newFakeTickets(), okGateway(), fakePDF{}, zerolog.Nop())
	_, err := uc.Resync(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestTicketList_SoloNoSincronizados(t *testing.T) {
	repo := newFakeTickets()
	storedTicket(t, repo, "1", true)
	storedTicket(t, repo, "2", false)
	uc := cantar.NewTicketUseCase(repo, okGateway(), fakePDF{}, zerolog.Nop())

	all, err := uc.List(context.Background(), testPlantID, false, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, 20, all.Page.Limit)

	pending, err := uc.List(context.Background(), testPlantID, true, dto.PageRequest{Limit: 500})
	require.NoError(t, err)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, "2", pending.Items[0].ID)
	assert.Equal(t, 100, pending.Page.Limit)
	assert.True(t, pending.Items[0].MasaNet.Equal(decimal.NewFromInt(20000)))
}

func TestTicketPDF(t *testing.T) {
	repo := newFakeTickets()
	tk := storedTicket(t, repo, "1", true)
	uc := cantar.NewTicketUseCase(repo, okGateway(), fakePDF{}, zerolog.Nop())

	b, name, err := uc.PDF(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "bon-cantar-"+tk.SessionCode+".pdf", name)
	assert.Equal(t, "%PDF-"+tk.SessionCode, string(b))

	_, _, err = uc.PDF(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
