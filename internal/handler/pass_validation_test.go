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

// These tests exercise the request validation that runs before any
// storage access; the handler never reaches the repository on the
// inputs below, so a nil connection is safe.

func submitPass(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewPassHandler(repository.NewPassRepo(nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/passes", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(1))

	require.NoError(t, h.Submit(c))
	return rec
}

func TestSubmitPassValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"unknown type", `{"type":"VACATION","location":"city","date":"2025-09-05","start_time":"2025-09-05T10:00:00Z","end_time":"2025-09-05T12:00:00Z"}`},
		{"missing location", `{"type":"OUTING","date":"2025-09-05","start_time":"2025-09-05T10:00:00Z","end_time":"2025-09-05T12:00:00Z"}`},
		{"bad date", `{"type":"OUTING","location":"city","date":"05-09-2025","start_time":"2025-09-05T10:00:00Z","end_time":"2025-09-05T12:00:00Z"}`},
		{"bad start time", `{"type":"OUTING","location":"city","date":"2025-09-05","start_time":"10:00","end_time":"2025-09-05T12:00:00Z"}`},
		{"start equals end", `{"type":"OUTING","location":"city","date":"2025-09-05","start_time":"2025-09-05T10:00:00Z","end_time":"2025-09-05T10:00:00Z"}`},
		{"start after end", `{"type":"OUTING","location":"city","date":"2025-09-05","start_time":"2025-09-05T14:00:00Z","end_time":"2025-09-05T12:00:00Z"}`},
		{"unknown share type", `{"type":"OUTING","location":"city","date":"2025-09-05","start_time":"2025-09-05T10:00:00Z","end_time":"2025-09-05T12:00:00Z","share_type":"FRIENDS"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := submitPass(t, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestSubmitPassRequiresIdentity(t *testing.T) {
	h := NewPassHandler(repository.NewPassRepo(nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/passes", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Submit(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
