package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// One-shot fetches (bypass the live snapshots)
	s.echo.GET("/heartratetimeseries", s.handleHeartRate)
	s.echo.GET("/sessiontimeseries", s.handleSessions)
	s.echo.GET("/ouratimeseries", s.handleCombined)

	// Live snapshot reads
	s.echo.GET("/heartratetimeseries/live", s.handleHeartRateLive)
	s.echo.GET("/ouratimeseries/live", s.handleCombinedLive)

	// Oura webhook (verification handshake + notifications)
	s.echo.GET("/oura-webhook", s.webhook.HandleVerify)
	s.echo.POST("/oura-webhook", s.webhook.HandleEvent)

	// Push channel
	s.echo.GET("/ws/timeseries", s.handleWebSocket)
}
