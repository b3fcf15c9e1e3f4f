package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is the JSON envelope pushed over a websocket connection.
type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// Connection wraps a websocket.Conn with metadata.
type Connection struct {
	Conn     *websocket.Conn
	UserID   string
	LastSeen time.Time

	mu sync.Mutex // serializes writes on the conn
}

func (c *Connection) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(v)
}

// Hub tracks the websocket connections of each user and implements the
// dispatcher's RealtimeNotifier. A user with no connections is not an
// error; realtime push is best-effort.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]map[*Connection]struct{} // userID -> set of connections
	logger      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		connections: make(map[string]map[*Connection]struct{}),
		logger:      logger,
	}
}

// Add registers a connection for a user.
func (h *Hub) Add(userID string, conn *websocket.Conn) *Connection {
	c := &Connection{Conn: conn, UserID: userID, LastSeen: time.Now()}

	h.mu.Lock()
	if _, ok := h.connections[userID]; !ok {
		h.connections[userID] = make(map[*Connection]struct{})
	}
	h.connections[userID][c] = struct{}{}
	total := len(h.connections[userID])
	h.mu.Unlock()

	h.logger.Debug("ws connected", zap.String("user", userID), zap.Int("total", total))
	return c
}

// Remove disconnects and removes a connection.
func (h *Hub) Remove(c *Connection) {
	h.mu.Lock()
	if conns, ok := h.connections[c.UserID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.connections, c.UserID)
		}
	}
	h.mu.Unlock()

	_ = c.Conn.Close()
	h.logger.Debug("ws disconnected", zap.String("user", c.UserID))
}

// EmitToUser sends an event to all of the user's connections. No connected
// transport is not an error.
func (h *Hub) EmitToUser(userID, event string, payload any) error {
	msg := Event{Event: event, Payload: payload}

	h.mu.RLock()
	conns := make([]*Connection, 0, len(h.connections[userID]))
	for c := range h.connections[userID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.writeJSON(msg); err != nil {
			h.logger.Warn("ws send failed", zap.String("user", userID), zap.Error(err))
			go h.Remove(c)
		}
	}
	return nil
}

// Touch refreshes the liveness timestamp of a connection.
func (h *Hub) Touch(c *Connection) {
	h.mu.Lock()
	c.LastSeen = time.Now()
	h.mu.Unlock()
}

// Heartbeat pings all connections periodically and drops stale ones.
func (h *Hub) Heartbeat(interval time.Duration) {
	ticker := time.NewTicker(interval)
	for range ticker.C {
		h.mu.RLock()
		var stale []*Connection
		for _, conns := range h.connections {
			for c := range conns {
				if time.Since(c.LastSeen) > 2*interval {
					stale = append(stale, c)
					continue
				}
				_ = c.Conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(time.Second))
			}
		}
		h.mu.RUnlock()

		for _, c := range stale {
			h.Remove(c)
		}
	}
}
