package ports

import (
	"context"

	"github.com/jhoicas/Cantar-api/internal/domain/entity"
)

// TicketPDFGenerator genera el bon de cântar imprimible de un pesaje finalizado.
type TicketPDFGenerator interface {
	GenerateTicketPDF(ctx context.Context, ticket *entity.WeighTicket) ([]byte, error)
}
