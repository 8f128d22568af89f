package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Felipeysz/teste/internal/auth"
	apperrors "github.com/Felipeysz/teste/internal/errors"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type logoutRequest struct {
	Token string `json:"token"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	err := s.auth.Register(c.Request().Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusCreated, map[string]string{"message": "account registered"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	token, err := s.auth.Login(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, map[string]string{"token": token}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// handleLogout accepts the token in the body or, failing that, the bearer
// header. Logout is idempotent: an unknown token still returns 204.
func (s *Server) handleLogout(c echo.Context) error {
	var req logoutRequest
	_ = c.Bind(&req)

	token := req.Token
	if token == "" {
		token = strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), bearerPrefix)
	}
	if token == "" {
		return apperrors.ValidationError("token is required")
	}

	s.auth.Logout(token)
	return c.NoContent(http.StatusNoContent)
}
