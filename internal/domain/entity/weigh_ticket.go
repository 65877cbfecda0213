package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeighTicket pesaje finalizado (ambas masas) tal como se envió al backend.
// Persisted y RemoteMessage permiten reconciliar envíos fallidos.
type WeighTicket struct {
	ID           string
	SessionID    string
	SessionCode  string
	Direction    Direction
	OrderID      string
	OrderCode    string
	RowID        string
	VehiclePlate string
	DriverName   string
	PlantID      string

	Tara     decimal.Decimal
	MasaBrut decimal.Decimal
	MasaNet  decimal.Decimal

	HumidityPct          *decimal.Decimal
	ProvisionalWaybillNo string
	EntryWaybillNo       string
	InvoiceNo            string
	Temperature          *decimal.Decimal
	Observations         string

	Persisted     bool
	RemoteMessage string
	Attempts      int

	CreatedBy string
	WeighedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWeighTicket construye el ticket a partir de una sesión con ambas masas.
func NewWeighTicket(id string, s *WeighSession, now time.Time) *WeighTicket {
	t := &WeighTicket{
		ID:                   id,
		SessionID:            s.ID,
		SessionCode:          s.Code,
		Direction:            s.Direction,
		OrderID:              s.OrderID(),
		OrderCode:            s.OrderCode,
		RowID:                s.RowID,
		VehiclePlate:         s.VehiclePlate,
		DriverName:           s.DriverName,
		PlantID:              s.PlantID,
		HumidityPct:          s.HumidityPct,
		ProvisionalWaybillNo: s.ProvisionalWaybillNo,
		EntryWaybillNo:       s.EntryWaybillNo,
		InvoiceNo:            s.InvoiceNo,
		Temperature:          s.Temperature,
		Observations:         s.Observations,
		CreatedBy:            s.CreatedBy,
		WeighedAt:            s.UpdatedAt,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if s.Tara != nil {
		t.Tara = *s.Tara
	}
	if s.MasaBrut != nil {
		t.MasaBrut = *s.MasaBrut
	}
	if s.MasaNet != nil {
		t.MasaNet = *s.MasaNet
	}
	return t
}
