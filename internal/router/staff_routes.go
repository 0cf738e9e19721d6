package router

import (
	"github.com/labstack/echo/v4"

	"github.com/dshs-dev/studentlife/internal/handler"
	"github.com/dshs-dev/studentlife/internal/middleware"
	"github.com/dshs-dev/studentlife/internal/model"
)

// StaffHandlers bundles the handlers behind the TEACHER/ADMIN gate
// plus the admin-only operations.
type StaffHandlers struct {
	Bookings  *handler.StaffBookingHandler
	Passes    *handler.StaffPassHandler
	Penalties *handler.PenaltyHandler
	Admin     *handler.AdminHandler
	Meals     *handler.MealHandler
}

// RegisterStaff registers the /v1/staff routes for teachers and
// admins, and the /v1/admin routes for admins only.
func RegisterStaff(e *echo.Echo, h StaffHandlers, jwtSecret string) {
	staff := e.Group("/v1/staff")
	staff.Use(middleware.JWTAuth(jwtSecret))
	staff.Use(middleware.RequireRole(model.RoleTeacher, model.RoleAdmin))

	staff.GET("/bookings", h.Bookings.ListByDate)
	staff.POST("/bookings/:id/decide", h.Bookings.Decide)

	staff.GET("/passes", h.Passes.ListPending)
	staff.POST("/passes/:id/decide", h.Passes.Decide)

	staff.POST("/penalties", h.Penalties.Issue)
	staff.GET("/penalties/users/:id", h.Penalties.UserPenalties)
	staff.POST("/penalty-reasons", h.Penalties.CreateReason)
	staff.PATCH("/penalty-reasons/:id", h.Penalties.SetReasonActive)

	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))

	admin.POST("/seats", h.Admin.CreateSeats)
	admin.PATCH("/seats/:id", h.Admin.SetSeatAvailability)
	admin.DELETE("/users/:id", h.Admin.DeleteUser)
	admin.PUT("/meals", h.Meals.Upsert)
}
