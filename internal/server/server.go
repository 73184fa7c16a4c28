package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/michael-de-wit/mood-ring-backend/internal/apperrors"
	"github.com/michael-de-wit/mood-ring-backend/internal/broadcast"
	"github.com/michael-de-wit/mood-ring-backend/internal/config"
	"github.com/michael-de-wit/mood-ring-backend/internal/domain"
	"github.com/michael-de-wit/mood-ring-backend/internal/oura"
	"github.com/michael-de-wit/mood-ring-backend/internal/timeseries"
)

// timeseriesAPI is what the handlers need from the aggregator service.
type timeseriesAPI interface {
	HeartRate(ctx context.Context, window oura.DateTimeWindow) ([]oura.HeartRateSample, error)
	Sessions(ctx context.Context, window oura.DateWindow) ([]oura.Session, error)
	Combined(ctx context.Context, window oura.DateTimeWindow, prefetched []oura.HeartRateSample) ([]domain.Measurement, error)
}

// webhookHandler handles Oura webhook verification and notifications.
type webhookHandler interface {
	HandleVerify(c echo.Context) error
	HandleEvent(c echo.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	svc       timeseriesAPI
	state     *timeseries.State
	hub       *broadcast.Hub
	webhook   webhookHandler
	startTime time.Time
}

func NewServer(cfg *config.Config, svc timeseriesAPI, state *timeseries.State, hub *broadcast.Hub, webhook webhookHandler) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	// The original frontend is served from another origin.
	e.Use(middleware.CORS())

	e.HTTPErrorHandler = httpErrorHandler

	srv := &Server{
		echo:      e,
		config:    cfg,
		svc:       svc,
		state:     state,
		hub:       hub,
		webhook:   webhook,
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

// httpErrorHandler renders apperrors with their mapped status and hides
// internals behind a generic message for everything else.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus() >= http.StatusInternalServerError {
			slog.Error("Request failed", "path", c.Request().URL.Path, "error", err)
		}
		_ = c.JSON(appErr.HTTPStatus(), map[string]string{"error": appErr.Message})
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, map[string]any{"error": httpErr.Message})
		return
	}

	slog.Error("Unhandled request error", "path", c.Request().URL.Path, "error", err)
	_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
