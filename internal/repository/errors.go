// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// leaking raw storage error codes: a duplicate-key violation on a
// booking becomes ErrDuplicateBooking, an ownership mismatch becomes
// ErrNotOwner, and so on. Handlers translate each sentinel into the
// matching HTTP status and a specific, actionable message.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicateBooking is returned when inserting a seat booking
// violates one of the daily uniqueness keys. The booking race is
// resolved by the database, so callers may simply retry with a
// different seat or date. Handlers should translate this into 409.
var ErrDuplicateBooking = errors.New("duplicate booking")

// ErrSeatTaken wraps ErrDuplicateBooking for the seat-side key: the
// seat already has a live booking for that date.
var ErrSeatTaken error = &duplicateBookingError{msg: "seat already booked for this date"}

// ErrUserHasBooking wraps ErrDuplicateBooking for the user-side key:
// the user already holds a live booking for that date.
var ErrUserHasBooking error = &duplicateBookingError{msg: "user already has a booking for this date"}

// ErrNotOwner is returned when the caller attempts an operation on a
// resource owned by someone else. Handlers should translate this into
// an HTTP 403 response.
var ErrNotOwner = errors.New("not the owner")

// ErrNotPending is returned when a state transition requires the row
// to still be pending (pass cancel, approve, reject) and it is not.
// Handlers should translate this into HTTP 409.
var ErrNotPending = errors.New("request is not pending")

// ErrEmptyTargets is returned when a penalty issuance names no target
// users. Nothing is written in that case.
var ErrEmptyTargets = errors.New("no target users")

// ErrRefreshReused is returned when a refresh token that was already
// rotated out is presented again. Reuse means the raw token leaked, so
// callers should drop the user's whole session set.
var ErrRefreshReused = errors.New("refresh token reused")

// Not-found sentinels per aggregate. Handlers translate these into 404.
var (
	ErrSeatNotFound         = errors.New("seat not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrPassNotFound         = errors.New("pass request not found")
	ErrReasonNotFound       = errors.New("penalty reason not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// ErrEmailExists is returned when registration hits the unique email key.
var ErrEmailExists = errors.New("email already exists")

// ErrStudentNumberExists is returned when registration hits the unique
// student_number key instead.
var ErrStudentNumberExists = errors.New("student number already exists")

// ErrSeatExists is returned when seeding seats collides with an
// existing (room, label) pair.
var ErrSeatExists = errors.New("seat label already exists in this room")

// ErrUserReferenced is returned when deleting a user fails because
// rows elsewhere still point at them without a cascade, such as
// penalty records they issued. The ledger keeps its attribution.
var ErrUserReferenced = errors.New("user is referenced by ledger records")

// duplicateBookingError is a named child of ErrDuplicateBooking so
// that errors.Is(err, ErrDuplicateBooking) holds for both specific
// variants while the message still says which slot was lost.
type duplicateBookingError struct{ msg string }

func (e *duplicateBookingError) Error() string { return e.msg }
func (e *duplicateBookingError) Is(target error) bool {
	return target == ErrDuplicateBooking
}

// mysql error numbers the repositories care about.
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrRowIsReferenced = 1451
)

// translateBookingError maps a raw driver error from a seat_bookings
// insert to the taxonomy. MySQL's duplicate-entry message names the
// violated key, which tells us whether the seat or the user lost the
// race.
func translateBookingError(err error) error {
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != mysqlErrDuplicateEntry {
		return err
	}
	switch {
	case strings.Contains(me.Message, "uq_booking_seat_day"):
		return ErrSeatTaken
	case strings.Contains(me.Message, "uq_booking_user_day"):
		return ErrUserHasBooking
	}
	return ErrDuplicateBooking
}

// translateUserError maps a raw driver error from a users insert to
// the taxonomy, picking the sentinel by the violated key name so a
// duplicate student number is not reported as a duplicate email.
func translateUserError(err error) error {
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	if !errors.As(err, &me) || me.Number != mysqlErrDuplicateEntry {
		return err
	}
	if strings.Contains(me.Message, "uq_users_student_number") {
		return ErrStudentNumberExists
	}
	return ErrEmailExists
}

// isDuplicateEntry reports whether err is a MySQL duplicate-key error,
// regardless of which key was violated.
func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}

// isRowReferenced reports whether err is a MySQL foreign-key restrict
// failure on delete.
func isRowReferenced(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrRowIsReferenced
}

// IsTransient reports whether err looks like a connectivity failure
// rather than a logical one. Multi-row writes are transactional, so
// callers may retry the whole operation. Handlers translate transient
// errors into 503 instead of 500.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "i/o timeout")
}
