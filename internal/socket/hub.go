package socket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is a registry mutation pushed to every connected client.
type Event struct {
	Action string `json:"action"`
	Entity string `json:"entity"`
	ID     string `json:"id,omitempty"`
	At     int64  `json:"at"`
}

// Hub tracks all connected WebSocket clients and fans mutation events
// out to them.
type Hub struct {
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
		logger:  logger,
	}
}

// Register adds a client under its connection id.
func (h *Hub) Register(connID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[connID] = conn
	h.logger.Info("websocket client registered", zap.String("connId", connID))
}

// Unregister removes a client.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[connID]; ok {
		delete(h.clients, connID)
		h.logger.Info("websocket client unregistered", zap.String("connId", connID))
	}
}

// Broadcast sends a mutation event to every connected client. A client
// that cannot be written to is dropped from the hub.
func (h *Hub) Broadcast(action, entity, id string) {
	event := Event{Action: action, Entity: entity, ID: id, At: time.Now().Unix()}
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal broadcast event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for connID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Warn("dropping unreachable websocket client",
				zap.String("connId", connID), zap.Error(err))
			conn.Close()
			delete(h.clients, connID)
		}
	}
}

// ClientCount reports how many clients are currently connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
