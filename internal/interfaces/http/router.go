package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cantar-api/internal/application/cantar"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Console   *cantar.Console
	Lookups   *cantar.LookupUseCase
	Rows      *cantar.EligibleRowResolver
	Tickets   *cantar.TicketUseCase
	PlantID   string
	JWTSecret string
	JWTIssuer string
}

// Router registra las rutas de la API. Todo /api/cantar requiere token de operador o admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/cantar",
		AuthMiddleware(deps.JWTSecret, deps.JWTIssuer),
		RequireRole("operator", "admin"),
		RequirePlant(deps.PlantID),
	)

	// Consola
	console := NewConsoleHandler(deps.Console)
	api.Get("/console", console.State)
	api.Post("/console/call-next", console.CallNext)
	api.Post("/console/select/:id", console.Select)
	api.Delete("/console/active", console.ReleaseActive)
	api.Put("/console/vehicle-input", console.SetVehicleInput)
	api.Get("/console/resume", console.Resume)
	api.Post("/sessions", console.StartNewWeighing)
	api.Post("/sessions/:id/weights", console.SubmitWeight)

	// Selectores del formulario
	lookups := NewLookupHandler(deps.Lookups, deps.Rows)
	api.Get("/orders", lookups.Orders)
	api.Get("/orders/:id/rows", lookups.OrderRows)
	api.Get("/vehicles", lookups.Vehicles)
	api.Get("/drivers", lookups.Drivers)

	// Pesajes finalizados
	tickets := NewTicketHandler(deps.Tickets, deps.PlantID)
	api.Get("/tickets", tickets.List)
	api.Get("/tickets/:id/pdf", tickets.PDF)
	api.Post("/tickets/:id/resync", tickets.Resync)
}
