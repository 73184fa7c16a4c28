package broadcast

import (
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/michael-de-wit/mood-ring-backend/internal/domain"
	"github.com/michael-de-wit/mood-ring-backend/internal/metrics"
)

var pongReply = []byte(`{"type":"pong"}`)

// --- Command types ---

type hubCmd interface{ isHubCmd() }

type baseHubCmd struct{}

func (baseHubCmd) isHubCmd() {}

type registerCmd struct {
	baseHubCmd
	conn *websocket.Conn
}

type unregisterCmd struct {
	baseHubCmd
	conn *websocket.Conn
}

type publishCmd struct {
	baseHubCmd
	eventType string
	data      []byte
}

type sendCmd struct {
	baseHubCmd
	conn *websocket.Conn
	data []byte
}

type clientCountCmd struct {
	baseHubCmd
	replyCh chan int
}

type stopCmd struct {
	baseHubCmd
}

// --- Hub ---

// Hub owns the subscriber set and fans published events out to it.
// It implements domain.EventPublisher.
type Hub struct {
	cmdCh   chan hubCmd
	clients map[*websocket.Conn]*clientWriter
}

// NewHub creates the hub and starts its command loop.
func NewHub() *Hub {
	h := &Hub{
		cmdCh:   make(chan hubCmd, 256),
		clients: make(map[*websocket.Conn]*clientWriter),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case registerCmd:
			h.handleRegister(c.conn)
		case unregisterCmd:
			h.handleUnregister(c.conn)
		case publishCmd:
			h.handlePublish(c)
		case sendCmd:
			h.handleSend(c)
		case clientCountCmd:
			c.replyCh <- len(h.clients)
		case stopCmd:
			h.handleStop()
			return
		}
	}
}

func (h *Hub) handleRegister(conn *websocket.Conn) {
	if _, exists := h.clients[conn]; exists {
		return
	}
	h.clients[conn] = newClientWriter(conn)
	metrics.WebsocketClientsCurrent.Set(float64(len(h.clients)))
	slog.Info("Websocket client registered", "clients", len(h.clients))
}

func (h *Hub) handleUnregister(conn *websocket.Conn) {
	cw, exists := h.clients[conn]
	if !exists {
		return
	}
	cw.stop()
	delete(h.clients, conn)
	metrics.WebsocketClientsCurrent.Set(float64(len(h.clients)))
	slog.Info("Websocket client unregistered", "clients", len(h.clients))
}

func (h *Hub) handlePublish(c publishCmd) {
	var failed []*websocket.Conn
	for conn, cw := range h.clients {
		if !cw.enqueue(c.data) {
			failed = append(failed, conn)
		}
	}

	// Prune after the pass completes, never mid-iteration.
	for _, conn := range failed {
		slog.Warn("Dropping client after failed delivery", "event_type", c.eventType)
		metrics.PrunedClientsTotal.Inc()
		h.handleUnregister(conn)
	}
}

func (h *Hub) handleSend(c sendCmd) {
	if cw, exists := h.clients[c.conn]; exists {
		cw.enqueue(c.data)
	}
}

func (h *Hub) handleStop() {
	for conn, cw := range h.clients {
		cw.stop()
		delete(h.clients, conn)
	}
	metrics.WebsocketClientsCurrent.Set(0)
}

// --- Public API ---

// Register adds a subscriber connection.
func (h *Hub) Register(conn *websocket.Conn) {
	h.cmdCh <- registerCmd{conn: conn}
}

// Unregister removes a subscriber connection. Idempotent.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.cmdCh <- unregisterCmd{conn: conn}
}

// Publish delivers an update event to every subscriber. Subscribers that
// cannot receive are dropped after the broadcast pass; delivery is not
// retried.
func (h *Hub) Publish(event domain.UpdateEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal update event", "error", err)
		return
	}
	h.cmdCh <- publishCmd{eventType: event.Type, data: data}
}

// Pong acknowledges client-sent text with a fixed reply.
func (h *Hub) Pong(conn *websocket.Conn) {
	h.cmdCh <- sendCmd{conn: conn, data: pongReply}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- clientCountCmd{replyCh: replyCh}
	return <-replyCh
}

// Stop closes every client connection and shuts the hub down.
func (h *Hub) Stop() {
	h.cmdCh <- stopCmd{}
}
