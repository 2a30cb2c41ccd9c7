// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cecosrail/reservation/internal/handler"
	"github.com/cecosrail/reservation/internal/middleware"
	"github.com/cecosrail/reservation/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth; /v1/me requires a valid
// access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterReservation registers the role-gated reservation surface.  Every
// route requires a valid access token; the admin group additionally
// requires the admin role.  The rate limiter wraps the booking route and
// the response cache wraps the train listing; both are pass-throughs when
// Redis is unavailable.
func RegisterReservation(e *echo.Echo, cat *handler.CatalogHandler, bk *handler.BookingHandler,
	jwtSecret string, rateLimit, cache echo.MiddlewareFunc) {

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleUser))

	auth.GET("/trains", cat.ListTrains, cache)
	auth.GET("/trains/:number/availability", bk.Availability)

	auth.POST("/tickets", bk.Book, rateLimit)
	auth.GET("/tickets", bk.MyTickets)
	auth.DELETE("/tickets", bk.Cancel)

	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))

	admin.POST("/trains", cat.AddTrain)
	admin.DELETE("/trains/:number", cat.DeleteTrain)
	admin.GET("/tickets", bk.AdminTickets)
	admin.DELETE("/tickets", bk.AdminCancel)
}
