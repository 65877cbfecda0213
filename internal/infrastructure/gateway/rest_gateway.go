// Package gateway cliente REST del backend que persiste recepciones y entregas pesadas.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cantar-api/internal/application/ports"
)

const (
	receptionPath = "/api/receptions/weighing"
	deliveryPath  = "/api/deliveries/weighing"
)

var _ ports.WeighingGateway = (*RESTGateway)(nil)

// RESTGateway implementa ports.WeighingGateway sobre HTTP+JSON. No reintenta.
type RESTGateway struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewRESTGateway construye el adaptador. baseURL sin barra final; token puede ir vacío.
func NewRESTGateway(baseURL, token string, timeout time.Duration) *RESTGateway {
	return &RESTGateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Protocolo del backend ─────────────────────────────────────────────────────

type receptionPayload struct {
	OrderCode            string   `json:"orderCode"`
	Driver               string   `json:"driver"`
	Plate                string   `json:"plate"`
	MasaBrut             float64  `json:"masaBrut"`
	Tara                 float64  `json:"tara"`
	HumidityPct          *float64 `json:"humidityPct,omitempty"`
	ProvisionalWaybillNo string   `json:"provisionalWaybillNo,omitempty"`
	EntryWaybillNo       string   `json:"entryWaybillNo,omitempty"`
	InvoiceNo            string   `json:"invoiceNo,omitempty"`
	Observations         string   `json:"observations,omitempty"`
}

type deliveryPayload struct {
	OrderCode    string   `json:"orderCode"`
	Plate        string   `json:"plate"`
	Driver       string   `json:"driver"`
	Temperature  *float64 `json:"temperature,omitempty"`
	MasaBrut     float64  `json:"masaBrut"`
	Tara         float64  `json:"tara"`
	Observations string   `json:"observations,omitempty"`
}

type gatewayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// SubmitReception envía un pesaje INBOUND finalizado.
func (g *RESTGateway) SubmitReception(ctx context.Context, w ports.ReceptionWeighing) (*ports.GatewayResult, error) {
	return g.post(ctx, receptionPath, receptionPayload{
		OrderCode:            w.OrderCode,
		Driver:               w.Driver,
		Plate:                w.Plate,
		MasaBrut:             w.MasaBrut.InexactFloat64(),
		Tara:                 w.Tara.InexactFloat64(),
		HumidityPct:          floatPtr(w.HumidityPct),
		ProvisionalWaybillNo: w.ProvisionalWaybillNo,
		EntryWaybillNo:       w.EntryWaybillNo,
		InvoiceNo:            w.InvoiceNo,
		Observations:         w.Observations,
	})
}

// SubmitDelivery envía un pesaje OUTBOUND finalizado.
func (g *RESTGateway) SubmitDelivery(ctx context.Context, w ports.DeliveryWeighing) (*ports.GatewayResult, error) {
	return g.post(ctx, deliveryPath, deliveryPayload{
		OrderCode:    w.OrderCode,
		Plate:        w.Plate,
		Driver:       w.Driver,
		Temperature:  floatPtr(w.Temperature),
		MasaBrut:     w.MasaBrut.InexactFloat64(),
		Tara:         w.Tara.InexactFloat64(),
		Observations: w.Observations,
	})
}

// post hace la llamada. Los errores de transporte vuelven como error; un HTTP != 2xx o
// success=false vuelven como resultado sin éxito con el mensaje del backend tal cual.
func (g *RESTGateway) post(ctx context.Context, path string, payload any) (*ports.GatewayResult, error) {
	if g.baseURL == "" {
		return nil, fmt.Errorf("gateway: GATEWAY_BASE_URL no configurado")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gateway: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gateway: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("gateway: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("gateway: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("gateway: leer respuesta: %w", err)
	}

	var parsed gatewayResponse
	jsonErr := json.Unmarshal(rawBody, &parsed)
	msg := parsed.Message
	if msg == "" {
		msg = parsed.Error
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if jsonErr != nil || msg == "" {
			msg = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(rawBody)))
		}
		return &ports.GatewayResult{Success: false, Message: msg}, nil
	}
	if jsonErr != nil {
		return nil, fmt.Errorf("gateway: deserializar respuesta: %w", jsonErr)
	}
	return &ports.GatewayResult{Success: parsed.Success, Message: msg}, nil
}

func floatPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
