package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cantar-api/internal/application/ports"
)

func TestSubmitReception_EnviaPayload(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		got     map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Recepție salvată"}`))
	}))
	defer srv.Close()

	hum := decimal.RequireFromString("12.5")
	g := NewRESTGateway(srv.URL+"/", "tok", 2*time.Second)
	res, err := g.SubmitReception(context.Background(), ports.ReceptionWeighing{
		OrderCode:      "CA-2026-0101",
		Driver:         "Ion Popescu",
		Plate:          "B 123 ABC",
		MasaBrut:       decimal.NewFromInt(32000),
		Tara:           decimal.NewFromInt(12000),
		HumidityPct:    &hum,
		EntryWaybillNo: "NIR-778",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Recepție salvată", res.Message)

	assert.Equal(t, receptionPath, gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "CA-2026-0101", got["orderCode"])
	assert.Equal(t, float64(32000), got["masaBrut"])
	assert.Equal(t, float64(12000), got["tara"])
	assert.Equal(t, 12.5, got["humidityPct"])
	assert.NotContains(t, got, "invoiceNo")
}

func TestSubmitDelivery_RespuestaSinExito(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, deliveryPath, r.URL.Path)
		_, _ = w.Write([]byte(`{"success":false,"message":"Comanda închisă"}`))
	}))
	defer srv.Close()

	g := NewRESTGateway(srv.URL, "", time.Second)
	res, err := g.SubmitDelivery(context.Background(), ports.DeliveryWeighing{
		OrderCode: "CV-2026-0420", MasaBrut: decimal.NewFromInt(38500), Tara: decimal.NewFromInt(12500),
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Comanda închisă", res.Message)
}

func TestPost_HTTPErrorEsResultadoSinExito(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"Tara lipsă"}`))
	}))
	defer srv.Close()

	res, err := NewRESTGateway(srv.URL, "", time.Second).SubmitDelivery(context.Background(), ports.DeliveryWeighing{})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Tara lipsă", res.Message)

	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv2.Close()
	res, err = NewRESTGateway(srv2.URL, "", time.Second).SubmitDelivery(context.Background(), ports.DeliveryWeighing{})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "HTTP 502")
}

func TestPost_ErrorDeTransporte(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	g := NewRESTGateway(srv.URL, "", 50*time.Millisecond)
	_, err := g.SubmitReception(context.Background(), ports.ReceptionWeighing{})
	assert.Error(t, err)

	_, err = NewRESTGateway("", "", time.Second).SubmitReception(context.Background(), ports.ReceptionWeighing{})
	assert.Error(t, err)
}
