package repository

import (
	"context"
	"database/sql"

	"github.com/dshs-dev/studentlife/internal/model"
)

// SeatRepo provides access to the seats reference table. Seats are
// seeded by admins and read by everyone; availability is a soft flag
// that removes a seat from booking without deleting its history.
type SeatRepo struct {
	db *sql.DB
}

func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span several repositories.
func (r *SeatRepo) DB() *sql.DB { return r.db }

// SeatWithOccupant pairs a seat with the live booking holding it on a
// given date, if any. Returned by ListForDate for the seat map screen.
type SeatWithOccupant struct {
	Seat         model.Seat
	BookingID    *uint64
	OccupantID   *uint64
	OccupantName *string
	Status       *string
}

// ListForDate returns every available seat joined with its live
// booking for the date. The join keys on active_date so cancelled and
// rejected bookings never show as occupants. Read-only; callers accept
// that a seat shown free here can still lose a booking race later.
func (r *SeatRepo) ListForDate(ctx context.Context, date string) ([]SeatWithOccupant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.room_name, s.seat_label, s.is_available, s.created_at, s.updated_at,
		       b.id, b.user_id, u.name, b.status
		FROM seats s
		LEFT JOIN seat_bookings b ON b.seat_id = s.id AND b.active_date = ?
		LEFT JOIN users u ON u.id = b.user_id
		WHERE s.is_available = 1
		ORDER BY s.room_name, s.seat_label`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SeatWithOccupant
	for rows.Next() {
		var (
			item      SeatWithOccupant
			bookingID sql.NullInt64
			userID    sql.NullInt64
			userName  sql.NullString
			status    sql.NullString
		)
		if err := rows.Scan(
			&item.Seat.ID, &item.Seat.RoomName, &item.Seat.SeatLabel,
			&item.Seat.IsAvailable, &item.Seat.CreatedAt, &item.Seat.UpdatedAt,
			&bookingID, &userID, &userName, &status,
		); err != nil {
			return nil, err
		}
		if bookingID.Valid {
			id := uint64(bookingID.Int64)
			item.BookingID = &id
		}
		if userID.Valid {
			id := uint64(userID.Int64)
			item.OccupantID = &id
		}
		if userName.Valid {
			n := userName.String
			item.OccupantName = &n
		}
		if status.Valid {
			s := status.String
			item.Status = &s
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// GetByID fetches one seat.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (model.Seat, error) {
	var s model.Seat
	err := r.db.QueryRowContext(ctx,
		"SELECT id, room_name, seat_label, is_available, created_at, updated_at FROM seats WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.RoomName, &s.SeatLabel, &s.IsAvailable, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Seat{}, ErrSeatNotFound
	}
	return s, err
}

// CreateBulk inserts one row per label for a room in a single
// statement. Duplicate (room, label) pairs hit uq_seats_room_label.
// Passing an empty slice has no effect and returns nil.
func (r *SeatRepo) CreateBulk(ctx context.Context, roomName string, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	query := "INSERT INTO seats (room_name, seat_label) VALUES "
	args := make([]interface{}, 0, len(labels)*2)
	for i, label := range labels {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, roomName, label)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isDuplicateEntry(err) {
			return ErrSeatExists
		}
		return err
	}
	return nil
}

// SetAvailability flips the booking flag on one seat.
func (r *SeatRepo) SetAvailability(ctx context.Context, id uint64, available bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE seats SET is_available=? WHERE id=?", available, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists bool
		if probeErr := r.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM seats WHERE id=?)", id).Scan(&exists); probeErr != nil {
			return probeErr
		}
		if !exists {
			return ErrSeatNotFound
		}
	}
	return nil
}
