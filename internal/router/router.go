// Package router wires HTTP routes to their handlers and access rules.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/grupo05/coworking-space/internal/handler"
	"github.com/grupo05/coworking-space/internal/middleware"
	"github.com/grupo05/coworking-space/internal/model"
)

// RegisterRoutes registers routes that do not require authentication: the
// health check and the public room directory.  The optional cache
// middleware (nil-safe) is applied to the room reads so anonymous browse
// traffic can be served from Redis.
func RegisterRoutes(e *echo.Echo, rooms *handler.RoomHandler, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	browse := []echo.MiddlewareFunc{}
	if cache != nil {
		browse = append(browse, cache)
	}
	e.GET("/v1/rooms", rooms.List, browse...)
	e.GET("/v1/rooms/:id", rooms.Get, browse...)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth, while protected
// endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access only mints a new
	// access token.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout takes a refresh token in the body or a bearer token and does
	// not require the JWT middleware.
	g.POST("/logout", a.Logout)
	e.POST("/v1/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleUser, model.RoleAdmin))
	auth.GET("/me", a.Me)
}

// RegisterReservations registers the booking endpoints.  Every route
// requires a valid access token; ownership (owner-or-admin) is enforced
// by the booking engine, not here.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleAdmin),
	)
	g.POST("/reservations", h.Create)
	g.GET("/reservations", h.List)
	g.GET("/reservations/between", h.ListBetween)
	g.GET("/reservations/:id", h.Get)
	g.PUT("/reservations/:id", h.Update)
	g.DELETE("/reservations/:id", h.Delete)
	g.DELETE("/users/:id/reservations", h.DeleteAllForUser)
}

// RegisterAdmin registers the endpoints restricted to administrators:
// room mutations and user removal.
func RegisterAdmin(e *echo.Echo, rooms *handler.RoomHandler, users *handler.UserHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.POST("/rooms", rooms.Create)
	g.PUT("/rooms/:id", rooms.Update)
	g.DELETE("/rooms/:id", rooms.Delete)
	g.POST("/users", users.Create)
	g.DELETE("/users/:id", users.Delete)
}
