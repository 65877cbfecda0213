package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewWeighingRequest formulario "pesaje nuevo" (POST /api/cantar/sessions).
// HumidityPct, ProvisionalWaybillNo, EntryWaybillNo e InvoiceNo solo aplican a INBOUND;
// Temperature solo a OUTBOUND.
type NewWeighingRequest struct {
	Direction string `json:"direction" validate:"required,oneof=INBOUND OUTBOUND"`
	OrderID   string `json:"order_id" validate:"required"`
	RowID     string `json:"row_id,omitempty"`
	VehicleID string `json:"vehicle_id" validate:"required"`
	DriverID  string `json:"driver_id" validate:"required"`

	HumidityPct          *decimal.Decimal `json:"humidity_pct,omitempty"`
	ProvisionalWaybillNo string           `json:"provisional_waybill_no,omitempty" validate:"max=50"`
	EntryWaybillNo       string           `json:"entry_waybill_no,omitempty" validate:"max=50"`
	InvoiceNo            string           `json:"invoice_no,omitempty" validate:"max=50"`
	Temperature          *decimal.Decimal `json:"temperature,omitempty"`

	FinanceApproved   bool             `json:"finance_approved"`
	ToleranceExceeded bool             `json:"tolerance_exceeded"`
	TolerancePercent  *decimal.Decimal `json:"tolerance_percent,omitempty"`

	Observations string `json:"observations,omitempty" validate:"max=500"`
}

// SubmitWeightRequest masa leída en la báscula (POST /api/cantar/sessions/:id/weights).
// Si Type está vacío se usa la masa que espera el paso actual.
type SubmitWeightRequest struct {
	Type         string          `json:"type,omitempty" validate:"omitempty,oneof=TARA BRUT"`
	Value        decimal.Decimal `json:"value"`
	Observations string          `json:"observations,omitempty" validate:"max=500"`
}

// VehicleInputRequest número de matrícula tecleado en la consola.
type VehicleInputRequest struct {
	Plate string `json:"plate" validate:"max=20"`
}

// SessionResponse salida de una sesión de pesaje.
type SessionResponse struct {
	ID              string           `json:"id"`
	Code            string           `json:"code"`
	Direction       string           `json:"direction"`
	PurchaseOrderID string           `json:"purchase_order_id,omitempty"`
	SalesOrderID    string           `json:"sales_order_id,omitempty"`
	OrderCode       string           `json:"order_code"`
	RowID           string           `json:"row_id,omitempty"`
	VehiclePlate    string           `json:"vehicle_plate"`
	DriverName      string           `json:"driver_name"`
	Step            string           `json:"step"`
	NextWeightType  string           `json:"next_weight_type"`
	Tara            *decimal.Decimal `json:"tara,omitempty"`
	MasaBrut        *decimal.Decimal `json:"masa_brut,omitempty"`
	MasaNet         *decimal.Decimal `json:"masa_net,omitempty"`
	PlantID         string           `json:"plant_id"`
	CreatedBy       string           `json:"created_by,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	HumidityPct          *decimal.Decimal `json:"humidity_pct,omitempty"`
	ProvisionalWaybillNo string           `json:"provisional_waybill_no,omitempty"`
	EntryWaybillNo       string           `json:"entry_waybill_no,omitempty"`
	InvoiceNo            string           `json:"invoice_no,omitempty"`
	Temperature          *decimal.Decimal `json:"temperature,omitempty"`

	FinanceApproved   bool             `json:"finance_approved"`
	ToleranceExceeded bool             `json:"tolerance_exceeded"`
	TolerancePercent  *decimal.Decimal `json:"tolerance_percent,omitempty"`
	Observations      string           `json:"observations,omitempty"`
}

// SubmitWeightResponse resultado de introducir una masa.
// Persisted solo viene informado en la medición final.
type SubmitWeightResponse struct {
	Session   SessionResponse `json:"session"`
	Advanced  bool            `json:"advanced"`  // 1/2 -> 2/2
	Completed bool            `json:"completed"` // medición final aceptada
	Persisted *bool           `json:"persisted,omitempty"`
	Message   string          `json:"message,omitempty"`
	TicketID  string          `json:"ticket_id,omitempty"` // vacío si el ticket local no se guardó
}

// ResumeResponse resultado de la búsqueda "reanudar" por matrícula.
type ResumeResponse struct {
	Input   string           `json:"input"`
	Found   bool             `json:"found"`
	Session *SessionResponse `json:"session,omitempty"`
}

// ConsoleStateResponse estado completo de la consola.
type ConsoleStateResponse struct {
	Queue1       []SessionResponse `json:"queue1"`
	Queue2       []SessionResponse `json:"queue2"`
	Active       *SessionResponse  `json:"active"`
	VehicleInput string            `json:"vehicle_input"`
	Resume       *SessionResponse  `json:"resume,omitempty"`
}

// EligibleRowResponse línea de comanda candidata.
type EligibleRowResponse struct {
	ID                 string          `json:"id"`
	ProductName        string          `json:"product_name"`
	Quantity           decimal.Decimal `json:"quantity"`
	HasTara            bool            `json:"has_tara"`
	HasBrut            bool            `json:"has_brut"`
	IsOnScale          bool            `json:"is_on_scale"`
	OnScaleSessionCode string          `json:"on_scale_session_code,omitempty"`
	Selectable         bool            `json:"selectable"`
}

// TicketResponse pesaje finalizado.
type TicketResponse struct {
	ID            string           `json:"id"`
	SessionID     string           `json:"session_id"`
	SessionCode   string           `json:"session_code"`
	Direction     string           `json:"direction"`
	OrderCode     string           `json:"order_code"`
	VehiclePlate  string           `json:"vehicle_plate"`
	DriverName    string           `json:"driver_name"`
	Tara          decimal.Decimal  `json:"tara"`
	MasaBrut      decimal.Decimal  `json:"masa_brut"`
	MasaNet       decimal.Decimal  `json:"masa_net"`
	HumidityPct   *decimal.Decimal `json:"humidity_pct,omitempty"`
	Temperature   *decimal.Decimal `json:"temperature,omitempty"`
	Persisted     bool             `json:"persisted"`
	RemoteMessage string           `json:"remote_message,omitempty"`
	Attempts      int              `json:"attempts"`
	WeighedAt     time.Time        `json:"weighed_at"`
}

// TicketListResponse lista paginada de pesajes finalizados.
type TicketListResponse struct {
	Items []TicketResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
