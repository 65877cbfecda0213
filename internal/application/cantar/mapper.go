package cantar

import (
	"github.com/jhoicas/Cantar-api/internal/application/dto"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
	"github.com/jhoicas/Cantar-api/internal/domain/weighing"
)

func toSessionResponse(s *entity.WeighSession) *dto.SessionResponse {
	if s == nil {
		return nil
	}
	return &dto.SessionResponse{
		ID:                   s.ID,
		Code:                 s.Code,
		Direction:            string(s.Direction),
		PurchaseOrderID:      s.PurchaseOrderID,
		SalesOrderID:         s.SalesOrderID,
		OrderCode:            s.OrderCode,
		RowID:                s.RowID,
		VehiclePlate:         s.VehiclePlate,
		DriverName:           s.DriverName,
		Step:                 string(s.Step),
		NextWeightType:       string(weighing.NextWeightType(s.Direction, s.Step)),
		Tara:                 s.Tara,
		MasaBrut:             s.MasaBrut,
		MasaNet:              s.MasaNet,
		PlantID:              s.PlantID,
		CreatedBy:            s.CreatedBy,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
		HumidityPct:          s.HumidityPct,
		ProvisionalWaybillNo: s.ProvisionalWaybillNo,
		EntryWaybillNo:       s.EntryWaybillNo,
		InvoiceNo:            s.InvoiceNo,
		Temperature:          s.Temperature,
		FinanceApproved:      s.FinanceApproved,
		ToleranceExceeded:    s.ToleranceExceeded,
		TolerancePercent:     s.TolerancePercent,
		Observations:         s.Observations,
	}
}

func toSessionList(list []*entity.WeighSession) []dto.SessionResponse {
	out := make([]dto.SessionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSessionResponse(s))
	}
	return out
}

func toTicketResponse(t *entity.WeighTicket) *dto.TicketResponse {
	if t == nil {
		return nil
	}
	return &dto.TicketResponse{
		ID:            t.ID,
		SessionID:     t.SessionID,
		SessionCode:   t.SessionCode,
		Direction:     string(t.Direction),
		OrderCode:     t.OrderCode,
		VehiclePlate:  t.VehiclePlate,
		DriverName:    t.DriverName,
		Tara:          t.Tara,
		MasaBrut:      t.MasaBrut,
		MasaNet:       t.MasaNet,
		HumidityPct:   t.HumidityPct,
		Temperature:   t.Temperature,
		Persisted:     t.Persisted,
		RemoteMessage: t.RemoteMessage,
		Attempts:      t.Attempts,
		WeighedAt:     t.WeighedAt,
	}
}

func toEligibleRowResponse(r *entity.EligibleRow) dto.EligibleRowResponse {
	return dto.EligibleRowResponse{
		ID:                 r.ID,
		ProductName:        r.ProductName,
		Quantity:           r.Quantity,
		HasTara:            r.HasTara,
		HasBrut:            r.HasBrut,
		IsOnScale:          r.IsOnScale(),
		OnScaleSessionCode: r.Lock.Holder(),
		Selectable:         weighing.RowSelectable(r),
	}
}
