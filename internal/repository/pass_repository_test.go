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

func passRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "type", "location", "reason", "pass_date",
		"start_time", "end_time", "share_type", "share_token",
		"status", "approved_by", "decided_at", "created_at", "updated_at",
	})
}

func approvedPassRow() *sqlmock.Rows {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	return passRows().AddRow(11, 7, model.PassOuting, "city library", nil, day,
		day.Add(10*time.Hour), day.Add(12*time.Hour), model.SharePrivate, nil,
		model.StatusApproved, 2, now, now, now)
}

func TestDecidePassRefusesDecided(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM pass_requests WHERE id=").
		WithArgs(uint64(11)).
		WillReturnRows(approvedPassRow())

	_, err = NewPassRepo(db).Decide(context.Background(), 2, 11, false)
	assert.ErrorIs(t, err, ErrNotPending)
	// The guard fires on the read, so no UPDATE reaches the database
	// and the first decision stands.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelPassRefusesDecided(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM pass_requests WHERE id=").
		WithArgs(uint64(11)).
		WillReturnRows(approvedPassRow())

	_, err = NewPassRepo(db).Cancel(context.Background(), 7, 11)
	assert.ErrorIs(t, err, ErrNotPending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPassDateRendersAsCalendarDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM pass_requests WHERE id=").
		WithArgs(uint64(11)).
		WillReturnRows(approvedPassRow())

	p, err := NewPassRepo(db).GetByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", p.PassDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
