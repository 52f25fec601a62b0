package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub fans ledger records out to connected back-office dashboard clients.
// Like the ledger itself it is advisory: a slow or dead client is dropped,
// never waited on.
type Hub struct {
	mu          sync.Mutex
	connections map[*websocket.Conn]struct{}
	feed        chan []byte
	done        chan struct{}
	once        sync.Once
}

// NewHub constructs a Hub.
func NewHub() *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]struct{}),
		feed:        make(chan []byte, 16),
		done:        make(chan struct{}),
	}
}

// Register adds a client connection to the feed.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.connections[conn] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes and closes a client connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.connections, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast enqueues a message for every connected client. It never blocks:
// when the feed is saturated the message is dropped.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.feed <- msg:
	default:
	}
}

// Count reports the number of connected clients (for testing/inspection).
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

// Run delivers feed messages until Close is called. Clients that fail a
// write are dropped.
func (h *Hub) Run() {
	for {
		select {
		case msg := <-h.feed:
			h.mu.Lock()
			for conn := range h.connections {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					conn.Close()
					delete(h.connections, conn)
				}
			}
			h.mu.Unlock()
		case <-h.done:
			h.mu.Lock()
			for conn := range h.connections {
				conn.Close()
				delete(h.connections, conn)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Close stops the run loop and disconnects every client.
func (h *Hub) Close() {
	h.once.Do(func() { close(h.done) })
}
