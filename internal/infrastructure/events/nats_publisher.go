// Package events publica en NATS los pesajes finalizados para otros servicios de la planta
// (contabilidad, stock, informes).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Cantar-api/internal/application/ports"
	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

// natsConn lo que usa el publisher de *nats.Conn.
type natsConn interface {
	Publish(subject string, data []byte) error
}

var _ ports.EventPublisher = (*NATSPublisher)(nil)

// NATSPublisher publica cada pesaje finalizado como JSON en un subject fijo.
// Las publicaciones nunca fallan hacia el llamador: los errores solo se registran.
type NATSPublisher struct {
	conn    natsConn
	subject string
	log     zerolog.Logger
}

// WeighingCompletedEvent esquema JSON del evento.
type WeighingCompletedEvent struct {
	EventType     string    `json:"event_type"`
	TicketID      string    `json:"ticket_id"`
	SessionID     string    `json:"session_id"`
	SessionCode   string    `json:"session_code"`
	Direction     string    `json:"direction"`
	PlantID       string    `json:"plant_id"`
	OrderID       string    `json:"order_id"`
	OrderCode     string    `json:"order_code"`
	RowID         string    `json:"row_id,omitempty"`
	VehiclePlate  string    `json:"vehicle_plate"`
	DriverName    string    `json:"driver_name"`
	Tara          string    `json:"tara"`
	MasaBrut      string    `json:"masa_brut"`
	MasaNet       string    `json:"masa_net"`
	Persisted     bool      `json:"persisted"`
	RemoteMessage string    `json:"remote_message,omitempty"`
	WeighedAt     time.Time `json:"weighed_at"`
}

// Connect abre la conexión a NATS con reconexión infinita y devuelve el publisher.
func Connect(url, clientName, subject string, log zerolog.Logger) (*NATSPublisher, *nats.Conn, error) {
	l := log.With().Str("component", "events.nats").Logger()
	nc, err := nats.Connect(url,
		nats.Name(clientName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				l.Warn().Err(err).Msg("nats: desconectado")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			l.Info().Str("url", c.ConnectedUrl()).Msg("nats: reconectado")
		}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("conectar a NATS: %w", err)
	}
	return NewNATSPublisher(nc, subject, log), nc, nil
}

// NewNATSPublisher construye el publisher sobre una conexión existente.
func NewNATSPublisher(conn natsConn, subject string, log zerolog.Logger) *NATSPublisher {
	return &NATSPublisher{
		conn:    conn,
		subject: subject,
		log:     log.With().Str("component", "events.nats").Logger(),
	}
}

// PublishWeighingCompleted publica el ticket. No bloquea ni propaga errores.
func (p *NATSPublisher) PublishWeighingCompleted(_ context.Context, t *entity.WeighTicket) {
	if p == nil || p.conn == nil || t == nil {
		return
	}
	data, err := json.Marshal(newWeighingCompletedEvent(t))
	if err != nil {
		p.log.Warn().Err(err).Str("ticket_id", t.ID).Msg("evento: serializar pesaje")
		return
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		p.log.Warn().Err(err).
			Str("subject", p.subject).
			Str("ticket_id", t.ID).
			Msg("evento: no se pudo publicar en NATS (no fatal)")
		return
	}
	p.log.Debug().Str("subject", p.subject).Str("ticket_id", t.ID).Msg("evento: pesaje publicado")
}

func newWeighingCompletedEvent(t *entity.WeighTicket) WeighingCompletedEvent {
	return WeighingCompletedEvent{
		EventType:     "weighing.completed",
		TicketID:      t.ID,
		SessionID:     t.SessionID,
		SessionCode:   t.SessionCode,
		Direction:     string(t.Direction),
		PlantID:       t.PlantID,
		OrderID:       t.OrderID,
		OrderCode:     t.OrderCode,
		RowID:         t.RowID,
		VehiclePlate:  t.VehiclePlate,
		DriverName:    t.DriverName,
		Tara:          t.Tara.String(),
		MasaBrut:      t.MasaBrut.String(),
		MasaNet:       t.MasaNet.String(),
		Persisted:     t.Persisted,
		RemoteMessage: t.RemoteMessage,
		WeighedAt:     t.WeighedAt,
	}
}
