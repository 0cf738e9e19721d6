package model

import "time"

// Statuses shared by seat bookings and pass requests.
// REJECTED, CANCELLED and COMPLETED are terminal; APPROVED moves to
// COMPLETED once its time window has passed (done by the sweeper, not
// by the request path).
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// StatusOccupiesSlot reports whether a booking in the given status
// still counts against the one-per-seat and one-per-user daily limits.
func StatusOccupiesSlot(status string) bool {
	switch status {
	case StatusCancelled, StatusRejected, StatusCompleted:
		return false
	}
	return true
}

// SeatBooking records a user's claim on a seat for one calendar day.
// ActiveDate duplicates BookingDate while the booking occupies its
// slot and is NULL otherwise; the database uniqueness keys on
// (seat_id, active_date) and (user_id, active_date) are what enforce
// the one-booking-per-slot invariant under concurrent inserts.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owner of the booking.
//  SeatID      – seat being booked.
//  BookingDate – calendar day the seat is claimed for.
//  ActiveDate  – equals BookingDate while live, NULL once released.
//  Status      – PENDING, APPROVED, REJECTED, CANCELLED or COMPLETED.
//  DecidedBy   – staff member who approved/rejected, if any.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type SeatBooking struct {
	ID          uint64     // seat_bookings.id
	UserID      uint64     // seat_bookings.user_id
	SeatID      uint64     // seat_bookings.seat_id
	BookingDate string     // seat_bookings.booking_date (YYYY-MM-DD)
	ActiveDate  *string    // seat_bookings.active_date (nullable)
	Status      string     // seat_bookings.status
	DecidedBy   *uint64    // seat_bookings.decided_by (nullable)
	CreatedAt   time.Time  // seat_bookings.created_at
	UpdatedAt   time.Time  // seat_bookings.updated_at
}
