package middleware

// identity.go defines helpers shared by the cache and rate limit
// middleware for attributing a request to a user. JWTAuth stores the
// raw "sub" claim in the context; the JSON decoding of claims means it
// may arrive as a float64, string or integer depending on the path
// that put it there.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID returns a stable string identity for the requester, or
// "anon" when the request is unauthenticated.
func currentUserID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "anon"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return fmt.Sprintf("%.0f", t)
	case uint64, int64, int:
		return fmt.Sprint(t)
	}
	return "anon"
}
