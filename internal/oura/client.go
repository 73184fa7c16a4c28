package oura

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/michael-de-wit/mood-ring-backend/internal/metrics"
)

const (
	heartRatePath = "/v2/usercollection/heartrate"
	sessionPath   = "/v2/usercollection/session"

	dateLayout = "2006-01-02"
)

// Client reads heart-rate samples and session records from the Oura v2 API.
// Fetches carry no retry and no client-side timeout; the poller's next tick
// is the retry.
type Client struct {
	http  *resty.Client
	clock clockwork.Clock
}

// NewClient creates a read client authenticated with a pre-issued bearer token.
func NewClient(baseURL, accessToken string, clock clockwork.Clock) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(accessToken).
		SetHeader("Accept", "application/json")

	return &Client{
		http:  httpClient,
		clock: clock,
	}
}

// FetchHeartRate returns raw heart-rate samples for the window, defaulting
// to the rolling lookback when the window is zero. A response body that does
// not match the expected shape yields an empty result, not an error, so a
// non-empty error means transport or HTTP failure only.
func (c *Client) FetchHeartRate(ctx context.Context, window DateTimeWindow) ([]HeartRateSample, error) {
	if window.IsZero() {
		window = DefaultWindow(c.clock.Now())
	}

	timer := prometheus.NewTimer(metrics.OuraFetchDuration.WithLabelValues("heartrate"))
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"start_datetime": window.Start.Format(time.RFC3339),
			"end_datetime":   window.End.Format(time.RFC3339),
		}).
		Get(heartRatePath)
	timer.ObserveDuration()

	if err != nil {
		metrics.OuraFetchesTotal.WithLabelValues("heartrate", "error").Inc()
		return nil, fmt.Errorf("heart rate request failed: %w", err)
	}
	if resp.IsError() {
		metrics.OuraFetchesTotal.WithLabelValues("heartrate", "error").Inc()
		return nil, fmt.Errorf("heart rate request returned %s", resp.Status())
	}

	var envelope struct {
		Data []HeartRateSample `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		slog.Warn("Unexpected heart rate response shape, treating as empty", "error", err)
		metrics.OuraFetchesTotal.WithLabelValues("heartrate", "empty").Inc()
		return []HeartRateSample{}, nil
	}

	metrics.OuraFetchesTotal.WithLabelValues("heartrate", "ok").Inc()
	return envelope.Data, nil
}

// FetchSessions returns raw session records for the window, defaulting to
// the rolling lookback when the window is zero. Failure semantics match
// FetchHeartRate.
func (c *Client) FetchSessions(ctx context.Context, window DateWindow) ([]Session, error) {
	if window.IsZero() {
		window = DefaultWindow(c.clock.Now()).Dates()
	}

	timer := prometheus.NewTimer(metrics.OuraFetchDuration.WithLabelValues("session"))
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"start_date": window.Start.Format(dateLayout),
			"end_date":   window.End.Format(dateLayout),
		}).
		Get(sessionPath)
	timer.ObserveDuration()

	if err != nil {
		metrics.OuraFetchesTotal.WithLabelValues("session", "error").Inc()
		return nil, fmt.Errorf("session request failed: %w", err)
	}
	if resp.IsError() {
		metrics.OuraFetchesTotal.WithLabelValues("session", "error").Inc()
		return nil, fmt.Errorf("session request returned %s", resp.Status())
	}

	var envelope struct {
		Data []Session `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		slog.Warn("Unexpected session response shape, treating as empty", "error", err)
		metrics.OuraFetchesTotal.WithLabelValues("session", "empty").Inc()
		return []Session{}, nil
	}

	metrics.OuraFetchesTotal.WithLabelValues("session", "ok").Inc()
	return envelope.Data, nil
}
