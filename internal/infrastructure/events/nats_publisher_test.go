package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject = subject
	f.data = data
	return f.err
}

func ticket() *entity.WeighTicket {
	return &entity.WeighTicket{
		ID:           "t-1",
		SessionID:    "s-1",
		SessionCode:  "C261016-001",
		Direction:    entity.DirectionOutbound,
		PlantID:      "plant-cluj",
		OrderCode:    "CV-2026-0420",
		VehiclePlate: "CJ 07 XYZ",
		Tara:         decimal.NewFromInt(12500),
		MasaBrut:     decimal.RequireFromString("38500.5"),
		MasaNet:      decimal.RequireFromString("26000.5"),
		Persisted:    true,
		WeighedAt:    time.Date(2026, 10, 16, 11, 0, 0, 0, time.UTC),
	}
}

func TestPublishWeighingCompleted(t *testing.T) {
	conn := &fakeConn{}
	p := NewNATSPublisher(conn, "cantar.weighing.completed", zerolog.Nop())

	p.PublishWeighingCompleted(context.Background(), ticket())

	assert.Equal(t, "cantar.weighing.completed", conn.subject)
	var ev WeighingCompletedEvent
	require.NoError(t, json.Unmarshal(conn.data, &ev))
	assert.Equal(t, "weighing.completed", ev.EventType)
	assert.Equal(t, "C261016-001", ev.SessionCode)
	assert.Equal(t, "OUTBOUND", ev.Direction)
	assert.Equal(t, "26000.5", ev.MasaNet, "las masas viajan como texto exacto")
	assert.True(t, ev.Persisted)
}

func TestPublishWeighingCompleted_ErrorNoFatal(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	p := NewNATSPublisher(conn, "s", zerolog.Nop())

	assert.NotPanics(t, func() { p.PublishWeighingCompleted(context.Background(), ticket()) })
	assert.NotPanics(t, func() { p.PublishWeighingCompleted(context.Background(), nil) })
}
