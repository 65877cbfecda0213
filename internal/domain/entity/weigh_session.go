package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction sentido del pesaje: recepción de materia prima o entrega de producto terminado.
type Direction string

const (
	DirectionInbound  Direction = "INBOUND"
	DirectionOutbound Direction = "OUTBOUND"
)

// Valid indica si la dirección es una de las conocidas.
func (d Direction) Valid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

// Step medición pendiente de la sesión.
type Step string

const (
	Step1 Step = "1/2"
	Step2 Step = "2/2"
)

// WeightType tipo de masa que se captura en la báscula.
type WeightType string

const (
	WeightTara WeightType = "TARA" // vehículo vacío
	WeightBrut WeightType = "BRUT" // vehículo + carga
)

// Valid indica si el tipo de masa es TARA o BRUT.
func (t WeightType) Valid() bool {
	return t == WeightTara || t == WeightBrut
}

// WeighSession representa el recorrido de un camión por la báscula (cântar): dos mediciones.
// Es estado puro: las transiciones las decide weighing.ApplyWeight.
type WeighSession struct {
	ID        string
	Code      string // etiqueta para el operador; no se usa para igualdad
	Direction Direction

	PurchaseOrderID string // solo INBOUND
	SalesOrderID    string // solo OUTBOUND
	OrderCode       string
	RowID           string

	VehiclePlate string
	DriverName   string

	Step     Step
	Tara     *decimal.Decimal // kg
	MasaBrut *decimal.Decimal // kg
	MasaNet  *decimal.Decimal // brut - tara, solo si ambas existen

	PlantID   string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	// INBOUND
	HumidityPct          *decimal.Decimal
	ProvisionalWaybillNo string
	EntryWaybillNo       string
	InvoiceNo            string

	// OUTBOUND
	Temperature *decimal.Decimal

	FinanceApproved   bool
	ToleranceExceeded bool
	TolerancePercent  *decimal.Decimal

	Observations string
}

// OrderID devuelve la referencia de comanda según la dirección.
func (s *WeighSession) OrderID() string {
	if s.Direction == DirectionOutbound {
		return s.SalesOrderID
	}
	return s.PurchaseOrderID
}

// Clone devuelve una copia de trabajo. Los decimales son inmutables, basta con copiar punteros.
func (s *WeighSession) Clone() *WeighSession {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
