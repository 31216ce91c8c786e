package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/hmisra/plant-store/internal/handler"    // import the handlers that implement business logic
	"github.com/hmisra/plant-store/internal/middleware" // import middleware for token authentication and caching
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the root greeting and a health check.  The health
// endpoint can be used by load balancers or monitoring systems to verify
// that the service is up and running.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Hello)
	e.GET("/healthz", handler.Health)
}

// RegisterAPI mounts the application endpoints under /api.  The jwtSecret is
// used by the auth gate on protected routes; cache is the response-cache
// middleware applied to the public catalog listing (pass-through when Redis
// is unavailable).
//
// Only plant creation sits behind the auth gate.  The update and delete
// routes are deliberately left open to match the observed behavior of the
// system this replaces; harden here if that policy changes.
func RegisterAPI(e *echo.Echo, a *handler.AuthHandler, p *handler.PlantHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api")

	// Admin identity: login and direct provisioning (no signup UI).
	g.POST("/admin", a.Login)
	g.POST("/admin/me", a.AddAdmin)

	// Catalog writes.
	g.POST("/plant", p.Create, middleware.TokenAuth(jwtSecret))
	g.PUT("/plant/:id", p.Update)
	g.DELETE("/plant/:id", p.Delete)

	// Public catalog reads.  The listing carries the response cache; the
	// single-record read is cheap enough to always hit the database.
	g.GET("/plants", p.List, cache)
	g.GET("/plants/:id", p.GetByID)
}
