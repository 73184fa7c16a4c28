package oura

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michael-de-wit/mood-ring-backend/internal/apperrors"
)

type fakeRefresher struct {
	calls chan struct{}
	err   error
}

func newFakeRefresher() *fakeRefresher {
	return &fakeRefresher{calls: make(chan struct{}, 8)}
}

func (f *fakeRefresher) RefreshCombined(_ context.Context) error {
	f.calls <- struct{}{}
	return f.err
}

func verifyRequest(t *testing.T, handler *WebhookHandler, token, challenge string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/oura-webhook?verification_token="+token+"&challenge="+challenge, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, handler.HandleVerify(c)
}

func TestWebhook_VerifyEchoesChallenge(t *testing.T) {
	handler := NewWebhookHandler("secret-X", newFakeRefresher())

	rec, err := verifyRequest(t, handler, "secret-X", "c1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "c1", rec.Body.String())
}

func TestWebhook_VerifyRejectsBadToken(t *testing.T) {
	handler := NewWebhookHandler("secret-X", newFakeRefresher())

	_, err := verifyRequest(t, handler, "secret-Y", "c1")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus())
}

func postEvent(t *testing.T, handler *WebhookHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/oura-webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, handler.HandleEvent(c))
	return rec
}

func TestWebhook_SessionEventAcksAndTriggersRefresh(t *testing.T) {
	refresher := newFakeRefresher()
	handler := NewWebhookHandler("secret-X", refresher)

	rec := postEvent(t, handler,
		`{"event_type":"create","data_type":"session","object_id":"obj-1","user_id":"u-1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())

	select {
	case <-refresher.calls:
	case <-time.After(time.Second):
		t.Fatal("expected an async combined refresh")
	}
}

func TestWebhook_OtherDataTypesAckWithoutRefresh(t *testing.T) {
	refresher := newFakeRefresher()
	handler := NewWebhookHandler("secret-X", refresher)

	rec := postEvent(t, handler,
		`{"event_type":"create","data_type":"tag","object_id":"obj-2","user_id":"u-1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())

	select {
	case <-refresher.calls:
		t.Fatal("non-session events must not trigger a refresh")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWebhook_UnreadableBodyStillAcked(t *testing.T) {
	refresher := newFakeRefresher()
	handler := NewWebhookHandler("secret-X", refresher)

	rec := postEvent(t, handler, `{{{`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())
}
