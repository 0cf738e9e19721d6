package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithRole(t *testing.T, role interface{}, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	require.NoError(t, mw(next)(c))
	return rec
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole("TEACHER", "ADMIN")

	assert.Equal(t, http.StatusOK, runWithRole(t, "TEACHER", mw).Code)
	assert.Equal(t, http.StatusOK, runWithRole(t, "ADMIN", mw).Code)

	assert.Equal(t, http.StatusForbidden, runWithRole(t, "STUDENT", mw).Code)
	assert.Equal(t, http.StatusForbidden, runWithRole(t, "", mw).Code)
	assert.Equal(t, http.StatusForbidden, runWithRole(t, nil, mw).Code)
	// A non-string role claim is rejected, not coerced.
	assert.Equal(t, http.StatusForbidden, runWithRole(t, 42, mw).Code)
}

func TestCurrentUserID(t *testing.T) {
	e := echo.New()
	ctx := func(v interface{}) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if v != nil {
			c.Set("user_id", v)
		}
		return c
	}

	assert.Equal(t, "anon", currentUserID(ctx(nil)))
	assert.Equal(t, "anon", currentUserID(ctx("")))
	assert.Equal(t, "7", currentUserID(ctx("7")))
	assert.Equal(t, "7", currentUserID(ctx(float64(7))))
	assert.Equal(t, "7", currentUserID(ctx(uint64(7))))
	assert.Equal(t, "7", currentUserID(ctx(int(7))))
}
