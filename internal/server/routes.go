package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api/users")

	// Public: registration and login. Logout takes the token in the body
	// and always succeeds, so it needs no auth either.
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)
	api.POST("/logout", s.handleLogout)

	// Token-protected account management
	api.GET("", s.handleListAccounts, s.requireAuth)
	api.GET("/sessions/count", s.handleSessionCount, s.requireAuth)
	api.PUT("/:name", s.handleUpdateAccount, s.requireAuth)
	api.DELETE("/:name", s.handleDeleteAccount, s.requireAuth)
}
