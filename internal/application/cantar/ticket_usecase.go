package cantar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Cantar-api/internal/application/dto"
	"github.com/jhoicas/Cantar-api/internal/application/ports"
	"github.com/jhoicas/Cantar-api/internal/domain"
	"github.com/jhoicas/Cantar-api/internal/domain/repository"
)

// TicketUseCase consulta, reenvío manual y PDF de pesajes finalizados.
type TicketUseCase struct {
	repo    repository.WeighTicketRepository
	gateway ports.WeighingGateway
	pdf     ports.TicketPDFGenerator
	log     zerolog.Logger

	mu       sync.Mutex
	inflight map[string]bool
	now      func() time.Time
}

// NewTicketUseCase construye el caso de uso.
func NewTicketUseCase(repo repository.WeighTicketRepository, gateway ports.WeighingGateway, pdf ports.TicketPDFGenerator, log zerolog.Logger) *TicketUseCase {
	return &TicketUseCase{
		repo:     repo,
		gateway:  gateway,
		pdf:      pdf,
		log:      log.With().Str("component", "cantar.tickets").Logger(),
		inflight: make(map[string]bool),
		now:      time.Now,
	}
}

// List pesajes de la planta, opcionalmente solo los no sincronizados con el backend.
func (uc *TicketUseCase) List(ctx context.Context, plantID string, unsyncedOnly bool, page dto.PageRequest) (*dto.TicketListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, plantID, unsyncedOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TicketResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTicketResponse(t))
	}
	return &dto.TicketListResponse{Items: items, Page: page.Response()}, nil
}

// Resync reenvía al backend un pesaje que no se pudo guardar. Es una acción manual del operador:
// no hay reintentos automáticos. Un ticket ya sincronizado devuelve ErrConflict.
func (uc *TicketUseCase) Resync(ctx context.Context, ticketID string) (*dto.TicketResponse, error) {
	if !uc.begin(ticketID) {
		return nil, domain.ErrSaveInProgress
	}
	defer uc.end(ticketID)

	t, err := uc.repo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("obtener ticket: %w", err)
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if t.Persisted {
		return nil, domain.ErrConflict
	}

	submitTicket(ctx, uc.gateway, t)
	t.UpdatedAt = uc.now()
	if err := uc.repo.UpdateSync(ctx, t); err != nil {
		return nil, fmt.Errorf("actualizar ticket: %w", err)
	}
	uc.log.Info().
		Str("ticket_id", t.ID).
		Bool("persisted", t.Persisted).
		Int("attempts", t.Attempts).
		Msg("reenvío manual de pesaje")
	return toTicketResponse(t), nil
}

// PDF genera el bon de cântar. Devuelve los bytes y el nombre de archivo sugerido.
func (uc *TicketUseCase) PDF(ctx context.Context, ticketID string) ([]byte, string, error) {
	t, err := uc.repo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener ticket: %w", err)
	}
	if t == nil {
		return nil, "", domain.ErrNotFound
	}
	b, err := uc.pdf.GenerateTicketPDF(ctx, t)
	if err != nil {
		return nil, "", err
	}
	return b, fmt.Sprintf("bon-cantar-%s.pdf", t.SessionCode), nil
}

func (uc *TicketUseCase) begin(id string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.inflight[id] {
		return false
	}
	uc.inflight[id] = true
	return true
}

func (uc *TicketUseCase) end(id string) {
	uc.mu.Lock()
	delete(uc.inflight, id)
	uc.mu.Unlock()
}
