package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshs-dev/studentlife/internal/repository"
)

func issuePenalty(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewPenaltyHandler(
		repository.NewPenaltyRepo(nil),
		repository.NewNotificationRepo(nil),
		repository.NewUserRepo(nil),
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

func TestIssuePenaltyValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no targets", `{"reason_id":1}`},
		{"empty targets", `{"reason_id":1,"target_user_ids":[]}`},
		{"zero target id", `{"reason_id":1,"target_user_ids":[0]}`},
		{"reason and ad-hoc together", `{"reason_id":1,"description":"late","points":2,"target_user_ids":[4]}`},
		{"ad-hoc without points", `{"description":"late","target_user_ids":[4]}`},
		{"ad-hoc with zero points", `{"description":"late","points":0,"target_user_ids":[4]}`},
		{"ad-hoc with blank description", `{"description":"  ","points":2,"target_user_ids":[4]}`},
		{"neither reason nor ad-hoc", `{"target_user_ids":[4]}`},
		{"bad issued date", `{"reason_id":1,"target_user_ids":[4],"issued_date":"sometime"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := issuePenalty(t, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
