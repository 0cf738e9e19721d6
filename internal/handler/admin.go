package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dshs-dev/studentlife/internal/repository"
)

// AdminHandler holds the operations only ADMIN can run: seeding seats,
// taking seats in and out of service and removing user accounts.
type AdminHandler struct {
	Seats *repository.SeatRepo
	Users *repository.UserRepo
}

func NewAdminHandler(seats *repository.SeatRepo, users *repository.UserRepo) *AdminHandler {
	if seats == nil || users == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Seats: seats, Users: users}
}

type createSeatsReq struct {
	RoomName string   `json:"room_name" validate:"required,max=100"`
	Labels   []string `json:"labels" validate:"required,min=1,dive,required,max=20"`
}

// CreateSeats handles POST /v1/admin/seats, bulk-seeding a study room.
// Re-seeding an existing label fails on the room+label unique key.
func (h *AdminHandler) CreateSeats(c echo.Context) error {
	var req createSeatsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.RoomName = strings.TrimSpace(req.RoomName)
	for i := range req.Labels {
		req.Labels[i] = strings.TrimSpace(req.Labels[i])
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_name and at least one label are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Seats.CreateBulk(ctx, req.RoomName, req.Labels); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"room_name": req.RoomName, "created": len(req.Labels)})
}

type seatAvailabilityReq struct {
	IsAvailable bool `json:"is_available"`
}

// SetSeatAvailability handles PATCH /v1/admin/seats/:id. Taking a seat
// out of service blocks new bookings but leaves existing ones alone.
func (h *AdminHandler) SetSeatAvailability(c echo.Context) error {
	seatID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	var req seatAvailabilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Seats.SetAvailability(ctx, seatID, req.IsAvailable); err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": seatID, "is_available": req.IsAvailable})
}

// DeleteUser handles DELETE /v1/admin/users/:id. The database cascades
// through bookings, passes, penalty targets and notifications; the
// delete either removes everything or nothing. An admin cannot delete
// their own account.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	userID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if userID == adminID {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete your own account"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, userID); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
