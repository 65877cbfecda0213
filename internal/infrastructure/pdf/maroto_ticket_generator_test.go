package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

func TestFormatKg(t *testing.T) {
	cases := map[string]string{
		"0":        "0",
		"950":      "950",
		"12000":    "12.000",
		"32000.5":  "32.000,5",
		"1234567":  "1.234.567",
		"-2500.25": "-2.500,25",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatKg(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateTicketPDF(t *testing.T) {
	hum := decimal.RequireFromString("12.5")
	tk := &entity.WeighTicket{
		ID:             "4b1c0d9e-0000-4000-8000-000000000001",
		SessionCode:    "C261016-001",
		Direction:      entity.DirectionInbound,
		OrderCode:      "CA-2026-0101",
		VehiclePlate:   "B 123 ABC",
		DriverName:     "Ion Popescu",
		PlantID:        "plant-cluj",
		Tara:           decimal.NewFromInt(12000),
		MasaBrut:       decimal.NewFromInt(32000),
		MasaNet:        decimal.NewFromInt(20000),
		HumidityPct:    &hum,
		EntryWaybillNo: "NIR-778",
		Persisted:      false,
		RemoteMessage:  "timeout",
		WeighedAt:      time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC),
	}

	b, err := NewMarotoTicketGenerator("Stația Cluj").GenerateTicketPDF(context.Background(), tk)
	require.NoError(t, err)
	require.NotEmpty(t, b)
	assert.Equal(t, "%PDF", string(b[:4]))

	_, err = NewMarotoTicketGenerator("").GenerateTicketPDF(context.Background(), nil)
	assert.Error(t, err)
}
