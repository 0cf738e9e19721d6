package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"})
}

func TestValidateRefreshDetectsReuse(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs("deadbeef").
		WillReturnRows(tokenRows().AddRow(7, time.Now().Add(time.Hour), time.Now()))

	uid, err := NewTokenRepo(db).ValidateRefresh(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, ErrRefreshReused)
	// The owner comes back with the error so the caller can revoke
	// the rest of their sessions.
	assert.Equal(t, uint64(7), uid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateRefreshExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, expires_at, revoked_at FROM refresh_tokens").
		WithArgs("deadbeef").
		WillReturnRows(tokenRows().AddRow(7, time.Now().Add(-time.Hour), nil))

	_, err = NewTokenRepo(db).ValidateRefresh(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
