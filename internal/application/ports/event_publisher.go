package ports

import (
	"context"

	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

// EventPublisher notifica pesajes completados a otros servicios.
// Las implementaciones no devuelven error: los fallos se registran y no interrumpen el pesaje.
type EventPublisher interface {
	PublishWeighingCompleted(ctx context.Context, ticket *entity.WeighTicket)
}

// NopPublisher no publica nada (NATS deshabilitado).
type NopPublisher struct{}

// PublishWeighingCompleted no hace nada.
func (NopPublisher) PublishWeighingCompleted(context.Context, *entity.WeighTicket) {}
