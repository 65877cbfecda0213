package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cantar-api/internal/application/cantar"
	"github.com/jhoicas/Cantar-api/internal/application/dto"
)

// ConsoleHandler consola de la báscula: colas, sesión activa y masas.
type ConsoleHandler struct {
	console *cantar.Console
}

// NewConsoleHandler construye el handler.
func NewConsoleHandler(console *cantar.Console) *ConsoleHandler {
	return &ConsoleHandler{console: console}
}

// State godoc
// @Summary      Estado de la consola
// @Description  queue1 (1/2), queue2 (2/2), sesión activa, matrícula tecleada y sugerencia de reanudar.
// @Tags         console
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ConsoleStateResponse
// @Router       /api/cantar/console [get]
func (h *ConsoleHandler) State(c *fiber.Ctx) error {
	return c.JSON(h.console.State())
}

// StartNewWeighing godoc
// @Summary      Pesaje nuevo
// @Description  Crea la sesión en paso 1/2 al final de queue1. No la activa.
// @Tags         console
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NewWeighingRequest  true  "Comanda, vehículo, conductor y datos de la dirección"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cantar/sessions [post]
func (h *ConsoleHandler) StartNewWeighing(c *fiber.Ctx) error {
	var in dto.NewWeighingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.console.StartNewWeighing(c.UserContext(), GetOperatorID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CallNext godoc
// @Summary      Llamar al siguiente camión
// @Description  Activa la cabeza de queue1. Con la cola vacía devuelve null y no cambia nada.
// @Tags         console
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/cantar/console/call-next [post]
func (h *ConsoleHandler) CallNext(c *fiber.Ctx) error {
	out := h.console.CallNext()
	if out == nil {
		return c.JSON(nil)
	}
	return c.JSON(out)
}

// Select godoc
// @Summary      Activar una sesión de cualquier cola
// @Tags         console
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cantar/console/select/{id} [post]
func (h *ConsoleHandler) Select(c *fiber.Ctx) error {
	out, err := h.console.SelectFromQueue(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReleaseActive godoc
// @Summary      Vaciar la vista activa
// @Description  El camión llamado con call-next vuelve a la cabeza de queue1; uno seleccionado sigue en su cola.
// @Tags         console
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ConsoleStateResponse
// @Router       /api/cantar/console/active [delete]
func (h *ConsoleHandler) ReleaseActive(c *fiber.Ctx) error {
	h.console.ReleaseActive()
	return c.JSON(h.console.State())
}

// SetVehicleInput godoc
// @Summary      Matrícula tecleada
// @Description  Guarda el campo de matrícula y devuelve el camión en curso con esa matrícula, si existe.
// @Tags         console
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VehicleInputRequest  true  "Matrícula"
// @Success      200   {object}  dto.ResumeResponse
// @Router       /api/cantar/console/vehicle-input [put]
func (h *ConsoleHandler) SetVehicleInput(c *fiber.Ctx) error {
	var in dto.VehicleInputRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.console.SetVehicleInput(in.Plate))
}

// Resume godoc
// @Summary      Buscar camión en curso por matrícula
// @Tags         console
// @Security     Bearer
// @Produce      json
// @Param        plate  query  string  true  "Matrícula"
// @Success      200    {object}  dto.ResumeResponse
// @Router       /api/cantar/console/resume [get]
func (h *ConsoleHandler) Resume(c *fiber.Ctx) error {
	return c.JSON(h.console.Resume(c.Query("plate")))
}

// SubmitWeight godoc
// @Summary      Introducir masa
// @Description  Primera masa: la sesión pasa a 2/2 y a queue2. Segunda masa: se completa y se envía al
// @Description  backend; si el envío falla la respuesta trae persisted=false pero la sesión sigue completada.
// @Tags         console
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la sesión"
// @Param        body  body  dto.SubmitWeightRequest  true  "Tipo (TARA/BRUT) y valor en kg"
// @Success      200   {object}  dto.SubmitWeightResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cantar/sessions/{id}/weights [post]
func (h *ConsoleHandler) SubmitWeight(c *fiber.Ctx) error {
	var in dto.SubmitWeightRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.console.SubmitWeight(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
