package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/veloxbus/fleet-inventory/internal/handler"
	"github.com/veloxbus/fleet-inventory/internal/middleware"
)

// RegisterInventory registers the protected inventory endpoints under
// /v1.  All routes require a valid JWT with the ADMIN or OPERATOR
// role.  Listing and reading stay on the public browse API, so only
// mutations are registered here.
func RegisterInventory(e *echo.Echo, h *handler.InventoryHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "OPERATOR"),
	)

	// ---- Seat diagrams ----
	g.POST("/seat-diagrams", h.CreateSeatDiagram)
	g.PUT("/seat-diagrams/:id", h.UpdateSeatDiagram)
	g.PATCH("/seat-diagrams/:id", h.UpdateSeatDiagram)
	g.DELETE("/seat-diagrams/:id", h.DeleteSeatDiagram)
	// The reconciler endpoint: full desired seat list in, diff applied.
	g.PUT("/seat-diagrams/:id/configuration", h.UpdateSeatConfiguration)

	// ---- Buses ----
	g.POST("/buses", h.CreateBus)
	g.PUT("/buses/:id", h.UpdateBus)
	g.PATCH("/buses/:id", h.UpdateBus)
	g.DELETE("/buses/:id", h.DeleteBus)

	// ---- Transporters ----
	g.POST("/transporters", h.CreateTransporter)
	g.PUT("/transporters/:id", h.UpdateTransporter)
	g.PATCH("/transporters/:id", h.UpdateTransporter)
	g.DELETE("/transporters/:id", h.DeleteTransporter)

	// ---- Nodes ----
	g.POST("/nodes", h.CreateNode)
	g.PUT("/nodes/:id", h.UpdateNode)
	g.PATCH("/nodes/:id", h.UpdateNode)
	g.DELETE("/nodes/:id", h.DeleteNode)

	// ---- Pathways and options ----
	g.POST("/pathways", h.CreatePathway)
	g.PUT("/pathways/:id", h.UpdatePathway)
	g.PATCH("/pathways/:id", h.UpdatePathway)
	g.DELETE("/pathways/:id", h.DeletePathway)
	g.POST("/pathways/:id/options", h.CreatePathwayOption)
	g.PUT("/pathway-options/:id", h.UpdatePathwayOption)
	g.PATCH("/pathway-options/:id", h.UpdatePathwayOption)
	g.PUT("/pathway-options/:id/tolls", h.ReplaceOptionTolls)
	g.PUT("/pathway-options/:id/lock", h.SetOptionLock)
	g.DELETE("/pathway-options/:id", h.DeletePathwayOption)
}
