package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeTotalSumsLedger(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Merits subtract, so the derived total can go negative.
	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(-3))

	total, err := NewPenaltyRepo(db).RecomputeTotal(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, -3, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByTargetRendersIssuedDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT pr.id, pr.reason_id").
		WithArgs(uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "reason_id", "issued_by", "points", "description",
			"issued_date", "created_at", "title",
		}).AddRow(41, 2, 9, 3, nil, day, time.Now(), "Late to dorm"))

	items, err := NewPenaltyRepo(db).ListByTarget(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2026-03-02", items[0].Record.IssuedDate)
	assert.Equal(t, "Late to dorm", items[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
