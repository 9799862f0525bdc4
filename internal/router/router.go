package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/veloxbus/fleet-inventory/internal/handler"
	"github.com/veloxbus/fleet-inventory/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check, used by load balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes and applies the
// necessary middleware.  Unauthenticated operations live under
// /v1/auth, protected endpoints under /v1.  The rate limiter passed in
// guards the credential endpoints against brute forcing; pass nil
// middleware to skip it.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; logout accepts either a bearer
	// token (revoke all sessions) or a refresh_token body (revoke one).
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "OPERATOR"))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints.  The
// cache middleware (Redis response cache) wraps every public GET; pass
// nil to serve uncached.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	mw := []echo.MiddlewareFunc{}
	if cache != nil {
		mw = append(mw, cache)
	}

	e.GET("/v1/seat-diagrams", p.GetSeatDiagrams, mw...)
	e.GET("/v1/seat-diagrams/:id", p.GetSeatDiagram, mw...)
	e.GET("/v1/seat-diagrams/:id/seats", p.GetDiagramSeats, mw...)
	e.GET("/v1/seat-diagrams/:id/seats/layout", p.GetDiagramSeatLayout, mw...)
	e.GET("/v1/pathways", p.GetPathways, mw...)
	e.GET("/v1/pathways/:id/options", p.GetPathwayOptions, mw...)
	e.GET("/v1/nodes", p.GetNodes, mw...)
	e.GET("/v1/transporters", p.GetTransporters, mw...)
	e.GET("/v1/buses", p.GetBuses, mw...)
}
