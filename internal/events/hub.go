package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Event is one domain notification, broadcast to websocket subscribers and
// mirrored onto the message queue when one is configured.
type Event struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload"`
	At      time.Time              `json:"at"`
}

// Hub fans events out to connected websocket clients. Slow clients are
// dropped rather than allowed to block the broadcast path.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]chan Event
}

// DefaultHub is the process-wide hub the engines publish into.
var DefaultHub = NewHub()

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]chan Event)}
}

// Register attaches a connection and starts its writer. The returned channel
// closes when the client is removed.
func (h *Hub) Register(conn *websocket.Conn) {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()

	go func() {
		defer h.Unregister(conn)
		for evt := range ch {
			if err := conn.WriteJSON(evt); err != nil {
				logrus.Debugf("events: dropping client: %v", err)
				return
			}
		}
	}()
}

// Unregister detaches a connection and closes it.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	ch, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
	}
	h.mu.Unlock()
	if ok {
		close(ch)
		conn.Close()
	}
}

// Broadcast delivers the event to every connected client without blocking.
func (h *Hub) Broadcast(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn, ch := range h.clients {
		select {
		case ch <- evt:
		default:
			logrus.Debugf("events: client %p buffer full, skipping", conn)
		}
	}
}

// ClientCount reports connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
