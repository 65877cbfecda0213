package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cantar-api/internal/application/cantar"
)

// TicketHandler pesajes finalizados: listado, reenvío manual y PDF.
type TicketHandler struct {
	uc      *cantar.TicketUseCase
	plantID string
}

// NewTicketHandler construye el handler para la planta de esta instancia.
func NewTicketHandler(uc *cantar.TicketUseCase, plantID string) *TicketHandler {
	return &TicketHandler{uc: uc, plantID: plantID}
}

// List godoc
// @Summary      Pesajes finalizados
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        unsynced  query  bool  false  "Solo los no guardados en el backend"
// @Param        limit     query  int   false  "Límite"  default(20)
// @Param        offset    query  int   false  "Offset"  default(0)
// @Success      200  {object}  dto.TicketListResponse
// @Router       /api/cantar/tickets [get]
func (h *TicketHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), h.plantID, c.QueryBool("unsynced", false), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Resync godoc
// @Summary      Reenviar pesaje al backend
// @Description  Acción manual para pesajes con persisted=false. No hay reintentos automáticos.
// @Tags         tickets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ticket"
// @Success      200  {object}  dto.TicketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cantar/tickets/{id}/resync [post]
func (h *TicketHandler) Resync(c *fiber.Ctx) error {
	out, err := h.uc.Resync(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Bon de cântar en PDF
// @Tags         tickets
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del ticket"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cantar/tickets/{id}/pdf [get]
func (h *TicketHandler) PDF(c *fiber.Ctx) error {
	b, name, err := h.uc.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, name))
	return c.Send(b)
}
