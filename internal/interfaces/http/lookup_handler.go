package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cantar-api/internal/application/cantar"
)

// LookupHandler selectores del formulario de pesaje nuevo.
type LookupHandler struct {
	uc   *cantar.LookupUseCase
	rows *cantar.EligibleRowResolver
}

// NewLookupHandler construye el handler.
func NewLookupHandler(uc *cantar.LookupUseCase, rows *cantar.EligibleRowResolver) *LookupHandler {
	return &LookupHandler{uc: uc, rows: rows}
}

// Orders godoc
// @Summary      Comandas por dirección
// @Tags         lookups
// @Security     Bearer
// @Produce      json
// @Param        direction  query  string  true   "INBOUND u OUTBOUND"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.OptionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cantar/orders [get]
func (h *LookupHandler) Orders(c *fiber.Ctx) error {
	out, err := h.uc.ListOrders(c.UserContext(), c.Query("direction"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Vehicles godoc
// @Summary      Vehículos
// @Tags         lookups
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OptionListResponse
// @Router       /api/cantar/vehicles [get]
func (h *LookupHandler) Vehicles(c *fiber.Ctx) error {
	out, err := h.uc.ListVehicles(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Drivers godoc
// @Summary      Conductores
// @Tags         lookups
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OptionListResponse
// @Router       /api/cantar/drivers [get]
func (h *LookupHandler) Drivers(c *fiber.Ctx) error {
	out, err := h.uc.ListDrivers(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// OrderRows godoc
// @Summary      Líneas de una comanda
// @Description  Todas las líneas con su bloqueo; selectable=false si otra sesión la tiene o ya tiene ambas masas.
// @Tags         lookups
// @Security     Bearer
// @Produce      json
// @Param        id         path   string  true  "ID de la comanda"
// @Param        direction  query  string  true  "INBOUND u OUTBOUND"
// @Success      200  {array}   dto.EligibleRowResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cantar/orders/{id}/rows [get]
func (h *LookupHandler) OrderRows(c *fiber.Ctx) error {
	out, err := h.rows.List(c.UserContext(), c.Query("direction"), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
