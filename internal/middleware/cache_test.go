package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshs-dev/studentlife/internal/config"
)

func cacheTestContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/seats")
	return c
}

func TestCacheKeyFrom(t *testing.T) {
	cfg := config.CacheConfig{KeyStrategy: "route_query", Prefix: "cache"}

	a := cacheKeyFrom(cfg, cacheTestContext(t, "/v1/seats?date=2025-09-01"))
	b := cacheKeyFrom(cfg, cacheTestContext(t, "/v1/seats?date=2025-09-01"))
	other := cacheKeyFrom(cfg, cacheTestContext(t, "/v1/seats?date=2025-09-02"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.Contains(t, a, "cache:")
}

func TestCacheKeyFromUserStrategy(t *testing.T) {
	cfg := config.CacheConfig{KeyStrategy: "route_query_user", Prefix: "cache"}

	anon := cacheKeyFrom(cfg, cacheTestContext(t, "/v1/seats?date=2025-09-01"))

	c := cacheTestContext(t, "/v1/seats?date=2025-09-01")
	c.Set("user_id", uint64(7))
	user7 := cacheKeyFrom(cfg, c)

	c2 := cacheTestContext(t, "/v1/seats?date=2025-09-01")
	c2.Set("user_id", uint64(8))
	user8 := cacheKeyFrom(cfg, c2)

	assert.NotEqual(t, anon, user7)
	assert.NotEqual(t, user7, user8)
}

func TestCacheKeyStrategyVariants(t *testing.T) {
	target := "/v1/seats?date=2025-09-01"
	routeOnly := cacheKeyFrom(config.CacheConfig{KeyStrategy: "route", Prefix: "p"}, cacheTestContext(t, target))
	sameRouteOtherQuery := cacheKeyFrom(config.CacheConfig{KeyStrategy: "route", Prefix: "p"}, cacheTestContext(t, "/v1/seats?date=2025-12-24"))

	// "route" ignores the query string entirely.
	assert.Equal(t, routeOnly, sameRouteOtherQuery)
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"ok":true}`)

	enc, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(enc)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	_, _, _, ok := decodePayload(nil)
	assert.False(t, ok)

	_, _, _, ok = decodePayload([]byte("short"))
	assert.False(t, ok)

	// Header length pointing past the buffer.
	bad := make([]byte, 8)
	bad[7] = 0xFF
	_, _, _, ok = decodePayload(bad)
	assert.False(t, ok)
}

func TestCaptureWriterTruncation(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 10}

	_, err := cw.Write([]byte("0123456789"))
	require.NoError(t, err)
	assert.False(t, cw.truncated())

	// One byte over the limit: the client still gets everything, but
	// the capture is clipped and must not be stored.
	_, err = cw.Write([]byte("x"))
	require.NoError(t, err)
	assert.True(t, cw.truncated())
	assert.Equal(t, "0123456789", cw.buf.String())
	assert.Equal(t, "0123456789x", rec.Body.String())
}

func TestCaptureWriterUnlimited(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK}

	_, err := cw.Write([]byte("0123456789x"))
	require.NoError(t, err)
	assert.False(t, cw.truncated())
	assert.Equal(t, "0123456789x", cw.buf.String())
}
