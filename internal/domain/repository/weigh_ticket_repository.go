package repository

import (
	"context"

	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

// WeighTicketRepository puerto de persistencia local de pesajes finalizados.
type WeighTicketRepository interface {
	Create(ctx context.Context, ticket *entity.WeighTicket) error
	GetByID(ctx context.Context, id string) (*entity.WeighTicket, error)
	UpdateSync(ctx context.Context, ticket *entity.WeighTicket) error
	List(ctx context.Context, plantID string, unsyncedOnly bool, limit, offset int) ([]*entity.WeighTicket, error)
}
