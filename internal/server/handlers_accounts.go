package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Felipeysz/teste/internal/auth"
	apperrors "github.com/Felipeysz/teste/internal/errors"
)

type updateAccountRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (s *Server) handleListAccounts(c echo.Context) error {
	accounts, err := s.auth.ListAccounts(c.Request().Context())
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, accounts); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSessionCount(c echo.Context) error {
	count := s.auth.ActiveSessionCount()

	if err := c.JSON(http.StatusOK, map[string]int{"count": count}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleUpdateAccount(c echo.Context) error {
	name := c.Param("name")

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	err := s.auth.UpdateAccount(c.Request().Context(), name, auth.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteAccount(c echo.Context) error {
	name := c.Param("name")

	if err := s.auth.DeleteAccount(c.Request().Context(), name); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
