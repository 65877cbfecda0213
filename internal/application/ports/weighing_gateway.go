package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// ReceptionWeighing pesaje INBOUND finalizado que se envía al backend de recepciones.
type ReceptionWeighing struct {
	OrderCode            string
	Driver               string
	Plate                string
	MasaBrut             decimal.Decimal
	Tara                 decimal.Decimal
	HumidityPct          *decimal.Decimal
	ProvisionalWaybillNo string
	EntryWaybillNo       string
	InvoiceNo            string
	Observations         string
}

// DeliveryWeighing pesaje OUTBOUND finalizado que se envía al backend de entregas.
type DeliveryWeighing struct {
	OrderCode    string
	Plate        string
	Driver       string
	Temperature  *decimal.Decimal
	MasaBrut     decimal.Decimal
	Tara         decimal.Decimal
	Observations string
}

// GatewayResult respuesta del backend; Message se muestra tal cual al operador.
type GatewayResult struct {
	Success bool
	Message string
}

// WeighingGateway puerto de salida hacia el servicio remoto que persiste los pesajes.
// El núcleo no reintenta: un fallo requiere una acción manual del operador.
type WeighingGateway interface {
	SubmitReception(ctx context.Context, w ReceptionWeighing) (*GatewayResult, error)
	SubmitDelivery(ctx context.Context, w DeliveryWeighing) (*GatewayResult, error)
}
