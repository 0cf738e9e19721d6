package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestTranslateBookingError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "seat key lost",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '3-2025-09-01' for key 'seat_bookings.uq_booking_seat_day'"},
			want: ErrSeatTaken,
		},
		{
			name: "user key lost",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '7-2025-09-01' for key 'seat_bookings.uq_booking_user_day'"},
			want: ErrUserHasBooking,
		},
		{
			name: "duplicate on unknown key",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key 'something_else'"},
			want: ErrDuplicateBooking,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateBookingError(tt.err))
		})
	}
}

func TestTranslateBookingErrorPassthrough(t *testing.T) {
	assert.NoError(t, translateBookingError(nil))

	plain := errors.New("no connection")
	assert.Equal(t, plain, translateBookingError(plain))

	// Other mysql error numbers pass through untouched.
	fk := &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}
	assert.Equal(t, error(fk), translateBookingError(fk))
}

func TestDuplicateBookingErrorIs(t *testing.T) {
	// Both specific variants satisfy errors.Is against the generic
	// sentinel, so handlers can match broadly or narrowly.
	assert.ErrorIs(t, ErrSeatTaken, ErrDuplicateBooking)
	assert.ErrorIs(t, ErrUserHasBooking, ErrDuplicateBooking)
	assert.NotErrorIs(t, ErrSeatTaken, ErrUserHasBooking)

	wrapped := fmt.Errorf("insert booking: %w", ErrSeatTaken)
	assert.ErrorIs(t, wrapped, ErrDuplicateBooking)
	assert.ErrorIs(t, wrapped, ErrSeatTaken)
}

func TestIsDuplicateEntry(t *testing.T) {
	assert.True(t, isDuplicateEntry(&mysql.MySQLError{Number: 1062}))
	assert.True(t, isDuplicateEntry(fmt.Errorf("create user: %w", &mysql.MySQLError{Number: 1062})))
	assert.False(t, isDuplicateEntry(&mysql.MySQLError{Number: 1451}))
	assert.False(t, isDuplicateEntry(errors.New("duplicate entry")))
}

func TestIsRowReferenced(t *testing.T) {
	assert.True(t, isRowReferenced(&mysql.MySQLError{Number: 1451}))
	assert.False(t, isRowReferenced(&mysql.MySQLError{Number: 1062}))
	assert.False(t, isRowReferenced(nil))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(mysql.ErrInvalidConn))
	assert.True(t, IsTransient(errors.New("dial tcp 127.0.0.1:3306: connection refused")))
	assert.True(t, IsTransient(errors.New("write: broken pipe")))
	assert.True(t, IsTransient(errors.New("read tcp: i/o timeout")))

	assert.False(t, IsTransient(nil))
	assert.False(t, IsTransient(ErrSeatTaken))
	assert.False(t, IsTransient(errors.New("syntax error")))
}

func TestTranslateUserError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "duplicate email",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@dshs.kr' for key 'users.uq_users_email'"},
			want: ErrEmailExists,
		},
		{
			name: "duplicate student number",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '2024-017' for key 'users.uq_users_student_number'"},
			want: ErrStudentNumberExists,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateUserError(tt.err))
		})
	}
}

func TestTranslateUserErrorPassthrough(t *testing.T) {
	assert.NoError(t, translateUserError(nil))

	plain := errors.New("no connection")
	assert.Equal(t, plain, translateUserError(plain))

	fk := &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}
	assert.Equal(t, error(fk), translateUserError(fk))
}
