package oura

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/michael-de-wit/mood-ring-backend/internal/apperrors"
	"github.com/michael-de-wit/mood-ring-backend/internal/metrics"
)

// combinedRefresher re-runs the combined pipeline and notifies subscribers
// on a count change, the same way a poll tick does.
type combinedRefresher interface {
	RefreshCombined(ctx context.Context) error
}

// WebhookHandler handles inbound Oura webhook verification and event
// notifications. Events are acknowledged immediately; processing happens
// outside the request cycle.
type WebhookHandler struct {
	verificationToken string
	refresher         combinedRefresher
}

// NewWebhookHandler creates a webhook handler. verificationToken is the
// secret inbound verification requests are equality-checked against.
func NewWebhookHandler(verificationToken string, refresher combinedRefresher) *WebhookHandler {
	return &WebhookHandler{
		verificationToken: verificationToken,
		refresher:         refresher,
	}
}

// HandleVerify answers the subscription handshake: echo the challenge
// verbatim when the supplied token matches, reject otherwise.
func (wh *WebhookHandler) HandleVerify(c echo.Context) error {
	supplied := c.QueryParam("verification_token")
	challenge := c.QueryParam("challenge")

	if supplied != wh.verificationToken {
		metrics.WebhookVerificationsTotal.WithLabelValues("rejected").Inc()
		return apperrors.UnauthorizedError("invalid verification token")
	}

	metrics.WebhookVerificationsTotal.WithLabelValues("accepted").Inc()
	return c.String(http.StatusOK, challenge)
}

// HandleEvent acknowledges a notification immediately regardless of its
// content, then asynchronously refreshes the combined snapshot when the
// event concerns session data. Other data types are accepted without
// further action.
func (wh *WebhookHandler) HandleEvent(c echo.Context) error {
	var event WebhookEvent
	if err := c.Bind(&event); err != nil {
		slog.Warn("Unreadable webhook body, acknowledging anyway", "error", err)
	}

	metrics.WebhookEventsTotal.WithLabelValues(event.DataType).Inc()
	slog.Info("Webhook event received",
		"event_type", event.EventType,
		"data_type", event.DataType,
		"object_id", event.ObjectID,
	)

	if event.DataType == "session" {
		refreshID := uuid.NewString()
		go func() {
			if err := wh.refresher.RefreshCombined(context.Background()); err != nil {
				slog.Error("Webhook-triggered refresh failed",
					"refresh_id", refreshID,
					"object_id", event.ObjectID,
					"error", err,
				)
			}
		}()
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
}
