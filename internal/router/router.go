// Package router wires HTTP routes to handlers and scopes each group
// with the authentication and role middleware it needs.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/dshs-dev/studentlife/internal/handler"
)

// RegisterRoutes registers the unauthenticated surface: the health
// check, the auth endpoints and the public share-token lookup.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler, p *handler.PassHandler) {
	e.GET("/healthz", handler.Health)

	// Register, login and token exchange happen before a session
	// exists, so none of these carry JWT middleware.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	// A LINK share token is itself the credential; anyone holding the
	// URL may resolve it while the pass is still live.
	e.GET("/v1/passes/shared/:token", p.GetShared)
}
