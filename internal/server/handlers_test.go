package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michael-de-wit/mood-ring-backend/internal/broadcast"
	"github.com/michael-de-wit/mood-ring-backend/internal/config"
	"github.com/michael-de-wit/mood-ring-backend/internal/domain"
	"github.com/michael-de-wit/mood-ring-backend/internal/oura"
	"github.com/michael-de-wit/mood-ring-backend/internal/timeseries"
)

type stubTimeseries struct {
	heartRate []oura.HeartRateSample
	sessions  []oura.Session
	combined  []domain.Measurement
	err       error
}

func (s *stubTimeseries) HeartRate(_ context.Context, _ oura.DateTimeWindow) ([]oura.HeartRateSample, error) {
	return s.heartRate, s.err
}

func (s *stubTimeseries) Sessions(_ context.Context, _ oura.DateWindow) ([]oura.Session, error) {
	return s.sessions, s.err
}

func (s *stubTimeseries) Combined(_ context.Context, _ oura.DateTimeWindow, _ []oura.HeartRateSample) ([]domain.Measurement, error) {
	return s.combined, s.err
}

type stubWebhook struct {
	verifyCalled bool
	eventCalled  bool
}

func (s *stubWebhook) HandleVerify(c echo.Context) error {
	s.verifyCalled = true
	return c.String(http.StatusOK, c.QueryParam("challenge"))
}

func (s *stubWebhook) HandleEvent(c echo.Context) error {
	s.eventCalled = true
	return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
}

func testServer(t *testing.T, svc timeseriesAPI) (*Server, *timeseries.State, *stubWebhook) {
	t.Helper()

	cfg := &config.Config{Port: "0", AppEnv: "test"}
	state := timeseries.NewState(clockwork.NewFakeClock())
	hub := broadcast.NewHub()
	t.Cleanup(func() { hub.Stop() })
	webhook := &stubWebhook{}

	return NewServer(cfg, svc, state, hub, webhook), state, webhook
}

func doRequest(srv *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func TestHandleHeartRate_ReturnsDataEnvelope(t *testing.T) {
	svc := &stubTimeseries{heartRate: []oura.HeartRateSample{
		{BPM: 61, Source: "awake", Timestamp: "2026-01-15T08:30:00.000+00:00"},
	}}
	srv, _, _ := testServer(t, svc)

	rec := doRequest(srv, http.MethodGet, "/heartratetimeseries")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"data":[{"bpm":61,"source":"awake","timestamp":"2026-01-15T08:30:00.000+00:00"}]}`,
		rec.Body.String())
}

func TestHandleHeartRate_FetchErrorMapsToBadGateway(t *testing.T) {
	srv, _, _ := testServer(t, &stubTimeseries{err: errors.New("api unreachable")})

	rec := doRequest(srv, http.MethodGet, "/heartratetimeseries")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to fetch heart rate data")
}

func TestHandleSessions_ReturnsDataEnvelope(t *testing.T) {
	svc := &stubTimeseries{sessions: []oura.Session{{ID: "s1", Day: "2026-01-15"}}}
	srv, _, _ := testServer(t, svc)

	rec := doRequest(srv, http.MethodGet, "/sessiontimeseries")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[{"id":"s1","day":"2026-01-15"}]}`, rec.Body.String())
}

func TestHandleCombined_ReturnsDataEnvelope(t *testing.T) {
	svc := &stubTimeseries{combined: []domain.Measurement{{
		Timestamp:        "2026-01-15T08:30:00.000+00:00",
		MeasurementType:  domain.MeasurementHeartRate,
		MeasurementValue: 61,
		MeasurementUnit:  domain.UnitBPM,
		SensorMode:       "awake",
		DataSource:       domain.DataSource,
		DeviceSource:     domain.DeviceSource,
	}}}
	srv, _, _ := testServer(t, svc)

	rec := doRequest(srv, http.MethodGet, "/ouratimeseries")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"measurement_type":"heartrate"`)
	assert.Contains(t, rec.Body.String(), `"measurement_unit":"bpm"`)
}

func TestLiveEndpoints_EmptyBeforeFirstPoll(t *testing.T) {
	srv, _, _ := testServer(t, &stubTimeseries{})

	for _, target := range []string{"/heartratetimeseries/live", "/ouratimeseries/live"} {
		rec := doRequest(srv, http.MethodGet, target)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
	}
}

func TestLiveEndpoints_ReflectSnapshots(t *testing.T) {
	srv, state, _ := testServer(t, &stubTimeseries{})

	state.HeartRate.Write([]oura.HeartRateSample{{BPM: 64, Timestamp: "2026-01-15T08:30:00.000+00:00"}})
	state.Combined.Write([]domain.Measurement{{Timestamp: "2026-01-15T08:30:00.000+00:00", MeasurementValue: 64}})

	rec := doRequest(srv, http.MethodGet, "/heartratetimeseries/live")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bpm":64`)

	rec = doRequest(srv, http.MethodGet, "/ouratimeseries/live")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"measurement_value":64`)
}

func TestWebhookRoutes_AreWired(t *testing.T) {
	srv, _, webhook := testServer(t, &stubTimeseries{})

	rec := doRequest(srv, http.MethodGet, "/oura-webhook?verification_token=x&challenge=c1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, webhook.verifyCalled)

	rec = doRequest(srv, http.MethodPost, "/oura-webhook")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, webhook.eventCalled)
}

func TestHealthEndpoints(t *testing.T) {
	srv, _, _ := testServer(t, &stubTimeseries{})

	rec := doRequest(srv, http.MethodGet, "/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = doRequest(srv, http.MethodGet, "/health/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())

	rec = doRequest(srv, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthLiveness_ReportsUptime(t *testing.T) {
	srv, _, _ := testServer(t, &stubTimeseries{})
	srv.startTime = time.Now().Add(-2 * time.Second)

	rec := doRequest(srv, http.MethodGet, "/health/live")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"uptime"`)
}
