// Package realtime pushes new community messages to connected clients. The
// hub is independent of the request/response flows: a broadcast failure never
// fails the originating write.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const sendBufferSize = 16

// Client is one subscribed connection. All writes go through the send channel
// and a single writer goroutine, since the websocket connection allows at
// most one concurrent writer.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	send   chan []byte
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}
}

// writeLoop drains the send channel onto the connection. It exits when the
// channel is closed by Unregister or when a write fails.
func (c *Client) writeLoop(logger *zap.Logger) {
	for msg := range c.send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debug("subscriber write failed", zap.String("user_id", c.UserID), zap.Error(err))
			return
		}
	}
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{clients: make(map[*Client]struct{}), logger: logger}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	go c.writeLoop(h.logger)
}

// Unregister removes the client, stops its writer and closes the connection.
// Safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, registered := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if !registered {
		return
	}
	close(c.send)
	_ = c.Conn.Close()
}

// Broadcast queues the payload for every connected client, best-effort. A
// client whose buffer is full misses the message rather than blocking the
// caller.
func (h *Hub) Broadcast(payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		h.logger.Warn("broadcast payload marshal failed", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Debug("subscriber buffer full, message dropped", zap.String("user_id", c.UserID))
		}
	}
}
