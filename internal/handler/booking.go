package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dshs-dev/studentlife/internal/model"
	"github.com/dshs-dev/studentlife/internal/repository"
)

// BookingHandler serves the student side of seat allocation: the seat
// map for a date, booking a seat, cancelling, and listing one's own
// bookings. There is no hold step and no application-level lock: the
// insert itself is the claim, and the database uniqueness keys decide
// races. A seat shown free in the list can still lose a subsequent
// race, which surfaces to the loser as a retryable 409.
type BookingHandler struct {
	Seats    *repository.SeatRepo
	Bookings *repository.BookingRepo
}

func NewBookingHandler(seats *repository.SeatRepo, bookings *repository.BookingRepo) *BookingHandler {
	if seats == nil || bookings == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Seats: seats, Bookings: bookings}
}

type seatResp struct {
	ID           uint64  `json:"id"`
	RoomName     string  `json:"room_name"`
	SeatLabel    string  `json:"seat_label"`
	BookingID    *uint64 `json:"booking_id,omitempty"`
	OccupantID   *uint64 `json:"occupant_id,omitempty"`
	OccupantName *string `json:"occupant_name,omitempty"`
	Status       *string `json:"status,omitempty"`
}

type bookingResp struct {
	ID          uint64  `json:"id"`
	UserID      uint64  `json:"user_id"`
	SeatID      uint64  `json:"seat_id"`
	BookingDate string  `json:"date"`
	Status      string  `json:"status"`
	DecidedBy   *uint64 `json:"decided_by,omitempty"`
}

func toBookingResp(b model.SeatBooking) bookingResp {
	return bookingResp{
		ID:          b.ID,
		UserID:      b.UserID,
		SeatID:      b.SeatID,
		BookingDate: b.BookingDate,
		Status:      b.Status,
		DecidedBy:   b.DecidedBy,
	}
}

// ListSeats handles GET /v1/seats?date=YYYY-MM-DD. Read-only join of
// available seats with their live occupant for the date.
func (h *BookingHandler) ListSeats(c echo.Context) error {
	date, ok := parseDate(c.QueryParam("date"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Seats.ListForDate(ctx, date)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]seatResp, 0, len(items))
	for _, it := range items {
		out = append(out, seatResp{
			ID:           it.Seat.ID,
			RoomName:     it.Seat.RoomName,
			SeatLabel:    it.Seat.SeatLabel,
			BookingID:    it.BookingID,
			OccupantID:   it.OccupantID,
			OccupantName: it.OccupantName,
			Status:       it.Status,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "seats": out})
}

type bookSeatReq struct {
	SeatID uint64 `json:"seat_id" validate:"required"`
	Date   string `json:"date" validate:"required"`
}

// BookSeat handles POST /v1/bookings. Validation happens before any
// write; the insert relies on the storage uniqueness keys, so two
// students racing for the same seat produce exactly one success.
func (h *BookingHandler) BookSeat(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookSeatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id and date are required"})
	}
	date, ok := parseDate(req.Date)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	seat, err := h.Seats.GetByID(ctx, req.SeatID)
	if err != nil {
		return repoError(c, err)
	}
	if !seat.IsAvailable {
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat is not bookable"})
	}

	b, err := h.Bookings.Create(ctx, userID, req.SeatID, date)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// CancelBooking handles POST /v1/bookings/:id/cancel. Owner only;
// cancelling an already-cancelled booking succeeds without change.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.Cancel(ctx, userID, bookingID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// MyBookings handles GET /v1/my-bookings.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return repoError(c, err)
	}
	out := make([]bookingResp, 0, len(items))
	for _, b := range items {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, out)
}
