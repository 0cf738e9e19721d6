package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshs-dev/studentlife/internal/repository"
)

func issuePenaltyOn(t *testing.T, db *sql.DB, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewPenaltyHandler(
		repository.NewPenaltyRepo(db),
		repository.NewNotificationRepo(db),
		repository.NewUserRepo(db),
		nil,
	)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/staff/penalties", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(9))

	require.NoError(t, h.Issue(c))
	return rec
}

func TestIssueRollsBackWhenTargetInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO penalty_records ").
		WillReturnResult(sqlmock.NewResult(41, 1))
	mock.ExpectExec("INSERT INTO penalty_record_targets ").
		WillReturnError(errors.New("deadlock found"))
	mock.ExpectRollback()

	rec := issuePenaltyOn(t, db, `{"description":"late to dorm","points":2,"target_user_ids":[4,5]}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// The rollback expectation was consumed: no notification insert,
	// no totals update, and the ledger row did not survive on its own.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueCommitsTotalsWithLedgerRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO penalty_records ").
		WillReturnResult(sqlmock.NewResult(41, 1))
	mock.ExpectExec("INSERT INTO penalty_record_targets ").
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectExec("INSERT INTO notifications ").
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectExec("UPDATE users u SET u.total_penalty").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	rec := issuePenaltyOn(t, db, `{"description":"late to dorm","points":2,"target_user_ids":[4,5]}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"record_id":41`)
	// Expectations are ordered: the totals recompute ran after the
	// target insert and before the commit, inside one transaction.
	assert.NoError(t, mock.ExpectationsWereMet())
}
