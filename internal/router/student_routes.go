package router

import (
	"github.com/labstack/echo/v4"

	"github.com/dshs-dev/studentlife/internal/handler"
	"github.com/dshs-dev/studentlife/internal/middleware"
	"github.com/dshs-dev/studentlife/internal/model"
)

// StudentHandlers bundles the handlers reachable by any authenticated
// user. Staff and admins share these routes; being staff never takes
// away the student-facing surface.
type StudentHandlers struct {
	Auth          *handler.AuthHandler
	Bookings      *handler.BookingHandler
	Passes        *handler.PassHandler
	Penalties     *handler.PenaltyHandler
	Notifications *handler.NotificationHandler
	Meals         *handler.MealHandler
}

// RegisterStudent registers the authenticated per-user routes under
// /v1. cacheMW may be nil when Redis is not configured; it is applied
// only to the read-heavy seat map and meal endpoints.
func RegisterStudent(e *echo.Echo, h StudentHandlers, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleStudent, model.RoleTeacher, model.RoleAdmin))

	g.GET("/me", h.Auth.Me)
	g.PATCH("/me", h.Auth.UpdateMe)

	if cacheMW != nil {
		g.GET("/seats", h.Bookings.ListSeats, cacheMW)
		g.GET("/meals", h.Meals.Get, cacheMW)
	} else {
		g.GET("/seats", h.Bookings.ListSeats)
		g.GET("/meals", h.Meals.Get)
	}

	g.POST("/bookings", h.Bookings.BookSeat)
	g.POST("/bookings/:id/cancel", h.Bookings.CancelBooking)
	g.GET("/my-bookings", h.Bookings.MyBookings)

	g.POST("/passes", h.Passes.Submit)
	g.POST("/passes/:id/cancel", h.Passes.Cancel)
	g.GET("/passes", h.Passes.List)

	g.GET("/penalty-reasons", h.Penalties.ListReasons)
	g.GET("/my-penalties", h.Penalties.MyPenalties)

	g.GET("/notifications", h.Notifications.List)
	g.GET("/notifications/unread-count", h.Notifications.UnreadCount)
	g.POST("/notifications/:id/read", h.Notifications.MarkRead)
	g.POST("/notifications/read-all", h.Notifications.MarkAllRead)
}
