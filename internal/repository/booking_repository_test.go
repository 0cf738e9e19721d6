package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshs-dev/studentlife/internal/model"
)

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "seat_id", "booking_date", "active_date",
		"status", "decided_by", "created_at", "updated_at",
	})
}

func TestBookingDatesRenderAsCalendarDays(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM seat_bookings WHERE id=").
		WithArgs(uint64(5)).
		WillReturnRows(bookingRows().AddRow(5, 7, 3, day, day, model.StatusPending, nil, now, now))

	b, err := NewBookingRepo(db).GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", b.BookingDate)
	if assert.NotNil(t, b.ActiveDate) {
		assert.Equal(t, "2026-03-02", *b.ActiveDate)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM seat_bookings WHERE id=").
		WithArgs(uint64(5)).
		WillReturnRows(bookingRows().AddRow(5, 7, 3, day, nil, model.StatusCancelled, nil, now, now))

	b, err := NewBookingRepo(db).Cancel(context.Background(), 7, 5)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, b.Status)
	assert.Nil(t, b.ActiveDate)
	// No UPDATE expectation was registered: a second cancel reports
	// success without touching the row again.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingOwnerOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM seat_bookings WHERE id=").
		WithArgs(uint64(5)).
		WillReturnRows(bookingRows().AddRow(5, 7, 3, day, day, model.StatusPending, nil, now, now))

	_, err = NewBookingRepo(db).Cancel(context.Background(), 8, 5)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.NoError(t, mock.ExpectationsWereMet())
}
