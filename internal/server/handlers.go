package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/michael-de-wit/mood-ring-backend/internal/apperrors"
	"github.com/michael-de-wit/mood-ring-backend/internal/oura"
)

// dataEnvelope is the response shape of every timeseries endpoint.
type dataEnvelope struct {
	Data any `json:"data"`
}

func (s *Server) handleHeartRate(c echo.Context) error {
	samples, err := s.svc.HeartRate(c.Request().Context(), oura.DateTimeWindow{})
	if err != nil {
		return apperrors.ExternalError("failed to fetch heart rate data", err)
	}
	return c.JSON(http.StatusOK, dataEnvelope{Data: samples})
}

func (s *Server) handleSessions(c echo.Context) error {
	sessions, err := s.svc.Sessions(c.Request().Context(), oura.DateWindow{})
	if err != nil {
		return apperrors.ExternalError("failed to fetch session data", err)
	}
	return c.JSON(http.StatusOK, dataEnvelope{Data: sessions})
}

func (s *Server) handleCombined(c echo.Context) error {
	combined, err := s.svc.Combined(c.Request().Context(), oura.DateTimeWindow{}, nil)
	if err != nil {
		return apperrors.ExternalError("failed to fetch combined timeseries", err)
	}
	return c.JSON(http.StatusOK, dataEnvelope{Data: combined})
}

func (s *Server) handleHeartRateLive(c echo.Context) error {
	return c.JSON(http.StatusOK, dataEnvelope{Data: s.state.HeartRate.Read().Data})
}

func (s *Server) handleCombinedLive(c echo.Context) error {
	return c.JSON(http.StatusOK, dataEnvelope{Data: s.state.Combined.Read().Data})
}
