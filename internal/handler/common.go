package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/dshs-dev/studentlife/internal/repository"
)

// validate is the shared request validator. Struct tags on the DTOs
// describe field rules; cross-field rules (start before end, reason
// versus ad-hoc points) stay in the handlers.
var validate = validator.New()

// getUserID extracts the user_id from echo.Context and converts it to
// uint64. The JWT middleware stores the raw claim value, which arrives
// as float64 after JSON decoding.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id != 0
}

// parseDate validates a YYYY-MM-DD string and returns its normalized
// form. Dates are compared as strings throughout, so normalization
// matters.
func parseDate(s string) (string, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// repoError translates a repository sentinel into the matching HTTP
// response. Every failure carries a specific, actionable message; raw
// storage errors never reach the client. Unrecognized errors fall
// through to 500 (or 503 when the storage layer looks unreachable, in
// which case the whole operation is safe to retry).
func repoError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrSeatTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat already taken, choose another"})
	case errors.Is(err, repository.ErrUserHasBooking):
		return c.JSON(http.StatusConflict, echo.Map{"error": "you already have a booking for this date"})
	case errors.Is(err, repository.ErrDuplicateBooking):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already booked"})
	case errors.Is(err, repository.ErrNotOwner):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your resource"})
	case errors.Is(err, repository.ErrNotPending):
		return c.JSON(http.StatusConflict, echo.Map{"error": "request is no longer pending"})
	case errors.Is(err, repository.ErrSeatExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat label already exists in this room"})
	case errors.Is(err, repository.ErrUserReferenced):
		return c.JSON(http.StatusConflict, echo.Map{"error": "user has issued penalty records and cannot be deleted"})
	case errors.Is(err, repository.ErrEmptyTargets):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "target_user_ids must not be empty"})
	case errors.Is(err, repository.ErrSeatNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrPassNotFound),
		errors.Is(err, repository.ErrReasonNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrNotificationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case repository.IsTransient(err):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable, retry shortly"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
