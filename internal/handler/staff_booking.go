package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dshs-dev/studentlife/internal/model"
	"github.com/dshs-dev/studentlife/internal/repository"
)

// StaffBookingHandler serves the teacher/admin view of seat bookings.
// The approve step is advisory: a PENDING booking already occupies its
// slot, so approval only changes what the seat map displays. Rejection
// frees the slot.
type StaffBookingHandler struct {
	Bookings      *repository.BookingRepo
	Notifications *repository.NotificationRepo
}

func NewStaffBookingHandler(bookings *repository.BookingRepo, notifications *repository.NotificationRepo) *StaffBookingHandler {
	if bookings == nil || notifications == nil {
		panic("nil repository passed to NewStaffBookingHandler")
	}
	return &StaffBookingHandler{Bookings: bookings, Notifications: notifications}
}

// ListByDate handles GET /v1/staff/bookings?date=YYYY-MM-DD.
func (h *StaffBookingHandler) ListByDate(c echo.Context) error {
	date, ok := parseDate(c.QueryParam("date"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Bookings.ListByDate(ctx, date)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]bookingResp, 0, len(items))
	for _, b := range items {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, out)
}

type decideReq struct {
	Approve bool `json:"approve"`
}

// Decide handles POST /v1/staff/bookings/:id/decide. Only pending
// bookings can be decided; the repository enforces that atomically.
// The owner gets a notification either way.
func (h *StaffBookingHandler) Decide(c echo.Context) error {
	staffID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req decideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.Decide(ctx, staffID, bookingID, req.Approve)
	if err != nil {
		return repoError(c, err)
	}

	title := "Seat booking approved"
	verb := "approved"
	if !req.Approve {
		title = "Seat booking rejected"
		verb = "rejected"
	}
	msg := "Your seat booking for " + b.BookingDate + " was " + verb + "."
	relatedID := b.ID
	if err := h.Notifications.Create(ctx, model.Notification{
		UserID:    b.UserID,
		Title:     title,
		Message:   &msg,
		Type:      model.NotifBooking,
		RelatedID: &relatedID,
	}); err != nil {
		// The decision is already committed; a lost notification is
		// logged by the repository caller, not a reason to fail.
		c.Logger().Warnf("booking decision notification failed: %v", err)
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}
