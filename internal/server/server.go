package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Felipeysz/teste/internal/auth"
	apperrors "github.com/Felipeysz/teste/internal/errors"
	"github.com/Felipeysz/teste/internal/platform/config"
)

// postgresHealthChecker is the slice of pgxpool.Pool the readiness probe needs.
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	auth      *auth.Service
	codec     *auth.TokenCodec
	db        postgresHealthChecker
	startTime time.Time
}

func NewServer(cfg *config.Config, authSvc *auth.Service, codec *auth.TokenCodec, db postgresHealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("Request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		auth:      authSvc,
		codec:     codec,
		db:        db,
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
