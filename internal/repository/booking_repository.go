package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/dshs-dev/studentlife/internal/model"
)

// BookingRepo provides access to the seat_bookings table. The one
// live booking per (seat, date) and per (user, date) invariants are
// not checked here with reads; they are enforced by the database
// uniqueness keys on active_date, so a booking insert is a single
// atomic claim and concurrent losers surface as ErrSeatTaken or
// ErrUserHasBooking.
type BookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = "id, user_id, seat_id, booking_date, active_date, status, decided_by, created_at, updated_at"

func scanBooking(scan func(dest ...interface{}) error) (model.SeatBooking, error) {
	var (
		b           model.SeatBooking
		bookingDate time.Time
		activeDate  sql.NullTime
		decidedBy   sql.NullInt64
	)
	err := scan(&b.ID, &b.UserID, &b.SeatID, &bookingDate, &activeDate,
		&b.Status, &decidedBy, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return model.SeatBooking{}, err
	}
	b.BookingDate = dateString(bookingDate)
	b.ActiveDate = nullDateString(activeDate)
	if decidedBy.Valid {
		id := uint64(decidedBy.Int64)
		b.DecidedBy = &id
	}
	return b, nil
}

// Create inserts a PENDING booking that immediately occupies its slot
// (active_date = booking_date). The insert and the uniqueness check
// are one operation: there is no read-then-write window for a second
// student to slip through.
func (r *BookingRepo) Create(ctx context.Context, userID, seatID uint64, date string) (model.SeatBooking, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO seat_bookings (user_id, seat_id, booking_date, active_date, status) VALUES (?,?,?,?,?)",
		userID, seatID, date, date, model.StatusPending)
	if err != nil {
		return model.SeatBooking{}, translateBookingError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.SeatBooking{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches one booking.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.SeatBooking, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM seat_bookings WHERE id=? LIMIT 1", id)
	b, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return model.SeatBooking{}, ErrBookingNotFound
	}
	return b, err
}

// Cancel moves a booking owned by userID to CANCELLED and clears
// active_date so the seat frees in the same statement. Idempotent: an
// already-cancelled booking matches the WHERE clause's owner check but
// updates to the values it already has, which is reported as success.
func (r *BookingRepo) Cancel(ctx context.Context, userID, bookingID uint64) (model.SeatBooking, error) {
	b, err := r.GetByID(ctx, bookingID)
	if err != nil {
		return model.SeatBooking{}, err
	}
	if b.UserID != userID {
		return model.SeatBooking{}, ErrNotOwner
	}
	if b.Status == model.StatusCancelled {
		return b, nil
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE seat_bookings SET status=?, active_date=NULL WHERE id=? AND user_id=?",
		model.StatusCancelled, bookingID, userID)
	if err != nil {
		return model.SeatBooking{}, err
	}
	return r.GetByID(ctx, bookingID)
}

// Decide records a staff approval or rejection on a pending booking.
// The UPDATE carries the pending check in its WHERE clause so two
// staff members deciding at once cannot both win.
func (r *BookingRepo) Decide(ctx context.Context, staffID, bookingID uint64, approve bool) (model.SeatBooking, error) {
	status := model.StatusApproved
	if !approve {
		status = model.StatusRejected
	}
	query := "UPDATE seat_bookings SET status=?, decided_by=? WHERE id=? AND status=?"
	if !model.StatusOccupiesSlot(status) {
		// Rejection releases the slot like a cancellation does.
		query = "UPDATE seat_bookings SET status=?, decided_by=?, active_date=NULL WHERE id=? AND status=?"
	}
	res, err := r.db.ExecContext(ctx, query, status, staffID, bookingID, model.StatusPending)
	if err != nil {
		return model.SeatBooking{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.SeatBooking{}, err
	}
	if n == 0 {
		if _, getErr := r.GetByID(ctx, bookingID); getErr != nil {
			return model.SeatBooking{}, getErr
		}
		return model.SeatBooking{}, ErrNotPending
	}
	return r.GetByID(ctx, bookingID)
}

// ListByUser returns the user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.SeatBooking, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM seat_bookings WHERE user_id=? ORDER BY booking_date DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListByDate returns all bookings for one day, for the staff screen.
func (r *BookingRepo) ListByDate(ctx context.Context, date string) ([]model.SeatBooking, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM seat_bookings WHERE booking_date=? ORDER BY seat_id",
		date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]model.SeatBooking, error) {
	var out []model.SeatBooking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CompleteExpired moves bookings whose day has passed out of the live
// set. Called by the sweeper; the request path never transitions to
// COMPLETED.
func (r *BookingRepo) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE seat_bookings SET status=?, active_date=NULL WHERE booking_date < ? AND status IN (?,?)",
		model.StatusCompleted, now.UTC().Format("2006-01-02"),
		model.StatusPending, model.StatusApproved)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
