package broadcast

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michael-de-wit/mood-ring-backend/internal/domain"
)

// testHub sets up a hub with a test HTTP server. dial returns the client
// side and the registered server side of a fresh connection.
func testHub(t *testing.T) (*Hub, func() (client, server *ws.Conn)) {
	t.Helper()

	hub := NewHub()
	t.Cleanup(func() { hub.Stop() })

	upgrader := ws.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	serverConns := make(chan *ws.Conn, 8)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(conn)
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	dial := func() (*ws.Conn, *ws.Conn) {
		t.Helper()
		url := "ws" + strings.TrimPrefix(srv.URL, "http")
		clientConn, _, err := ws.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { clientConn.Close() })
		return clientConn, <-serverConns
	}

	return hub, dial
}

func waitForClientCount(h *Hub, expected int) bool {
	for i := 0; i < 200; i++ {
		if h.ClientCount() == expected {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

func testEvent(count, diff int) domain.UpdateEvent {
	return domain.UpdateEvent{
		Type:        domain.EventHeartRateUpdate,
		Count:       count,
		CountDiff:   diff,
		LastUpdated: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func readEvent(t *testing.T, conn *ws.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg, &decoded))
	return decoded
}

func TestHub_PublishReachesAllClients(t *testing.T) {
	hub, dial := testHub(t)

	client1, _ := dial()
	client2, _ := dial()
	require.True(t, waitForClientCount(hub, 2))

	hub.Publish(testEvent(10, 10))

	for _, conn := range []*ws.Conn{client1, client2} {
		decoded := readEvent(t, conn)
		assert.Equal(t, domain.EventHeartRateUpdate, decoded["type"])
		assert.Equal(t, 10.0, decoded["count"])
		assert.Equal(t, 10.0, decoded["count_diff"])
		assert.NotEmpty(t, decoded["last_updated"])
	}
}

func TestHub_FailedSubscriberIsPrunedOthersStillReceive(t *testing.T) {
	hub, dial := testHub(t)

	client1, _ := dial()
	client2, _ := dial()
	_, deadServer := dial()
	require.True(t, waitForClientCount(hub, 3))

	// Kill the third subscriber's connection out from under its writer,
	// then publish past the send queue capacity so delivery to it fails.
	require.NoError(t, deadServer.Close())
	for i := 0; i < sendQueueSize+4; i++ {
		hub.Publish(testEvent(i, 1))
		// Give healthy writers time to drain so only the dead one overflows.
		time.Sleep(time.Millisecond)
	}

	require.True(t, waitForClientCount(hub, 2), "failed subscriber should be pruned")

	// Surviving subscribers still get events.
	assert.NotEmpty(t, readEvent(t, client1))
	assert.NotEmpty(t, readEvent(t, client2))
}

func TestHub_UnregisterIsIdempotent(t *testing.T) {
	hub, dial := testHub(t)

	_, serverConn := dial()
	require.True(t, waitForClientCount(hub, 1))

	hub.Unregister(serverConn)
	hub.Unregister(serverConn)
	require.True(t, waitForClientCount(hub, 0))
}

func TestHub_PongReply(t *testing.T) {
	hub, dial := testHub(t)

	clientConn, serverConn := dial()
	require.True(t, waitForClientCount(hub, 1))

	hub.Pong(serverConn)

	decoded := readEvent(t, clientConn)
	assert.Equal(t, "pong", decoded["type"])
}

func TestHub_ClientCount(t *testing.T) {
	hub, dial := testHub(t)
	assert.Equal(t, 0, hub.ClientCount())

	dial()
	require.True(t, waitForClientCount(hub, 1))

	dial()
	require.True(t, waitForClientCount(hub, 2))
}
