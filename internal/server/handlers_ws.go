package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // browser clients connect from another origin
	},
}

// handleWebSocket upgrades the connection and subscribes it to update
// events. Client-sent text gets a fixed pong reply and is not otherwise
// interpreted; the read loop exists to detect disconnects.
func (s *Server) handleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade failed: %w", err)
	}

	s.hub.Register(conn)
	defer s.hub.Unregister(conn)

	for {
		msgType, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType == websocket.TextMessage {
			s.hub.Pong(conn)
		}
	}
	return nil
}
