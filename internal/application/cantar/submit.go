package cantar

import (
	"context"

	"github.com/jhoicas/Cantar-api/internal/application/ports"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

// submitTicket envía el ticket al backend según su dirección y anota el resultado en el ticket.
// Un error de transporte o una respuesta sin éxito dejan Persisted=false con el mensaje tal cual.
func submitTicket(ctx context.Context, gw ports.WeighingGateway, t *entity.WeighTicket) {
	t.Attempts++
	if gw == nil {
		t.Persisted = false
		t.RemoteMessage = "backend de pesajes no configurado"
		return
	}

	var (
		res *ports.GatewayResult
		err error
	)
	if t.Direction == entity.DirectionInbound {
		res, err = gw.SubmitReception(ctx, ports.ReceptionWeighing{
			OrderCode:            t.OrderCode,
			Driver:               t.DriverName,
			Plate:                t.VehiclePlate,
			MasaBrut:             t.MasaBrut,
			Tara:                 t.Tara,
			HumidityPct:          t.HumidityPct,
			ProvisionalWaybillNo: t.ProvisionalWaybillNo,
			EntryWaybillNo:       t.EntryWaybillNo,
			InvoiceNo:            t.InvoiceNo,
			Observations:         t.Observations,
		})
	} else {
		res, err = gw.SubmitDelivery(ctx, ports.DeliveryWeighing{
			OrderCode:    t.OrderCode,
			Plate:        t.VehiclePlate,
			Driver:       t.DriverName,
			Temperature:  t.Temperature,
			MasaBrut:     t.MasaBrut,
			Tara:         t.Tara,
			Observations: t.Observations,
		})
	}

	switch {
	case err != nil:
		t.Persisted = false
		t.RemoteMessage = err.Error()
	case res == nil:
		t.Persisted = false
		t.RemoteMessage = "respuesta vacía del backend"
	default:
		t.Persisted = res.Success
		t.RemoteMessage = res.Message
	}
}
