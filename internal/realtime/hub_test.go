package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// dialHub spins up a server that registers every upgraded connection with the
// hub and returns a connected client.
func dialHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		h.Register(conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	// Registration happens in the server handler; wait for it to land.
	deadline := time.Now().Add(time.Second)
	for h.Count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return client
}

func TestHubBroadcastReachesClient(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Close()

	client := dialHub(t, h)
	h.Broadcast([]byte(`{"event_type":"payment_success"}`))

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(msg) != `{"event_type":"payment_success"}` {
		t.Fatalf("message = %s", msg)
	}
}

func TestHubUnregisterDropsClient(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Close()

	client := dialHub(t, h)
	_ = client

	h.mu.Lock()
	var conn *websocket.Conn
	for c := range h.connections {
		conn = c
	}
	h.mu.Unlock()

	h.Unregister(conn)
	if got := h.Count(); got != 0 {
		t.Fatalf("count = %d after unregister", got)
	}
}

func TestHubBroadcastWithoutClientsNeverBlocks(t *testing.T) {
	h := NewHub()
	// No run loop: the feed buffer absorbs what it can, the rest is dropped.
	for i := 0; i < 100; i++ {
		h.Broadcast([]byte("overflow"))
	}
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := dialHub(t, h)
	h.Close()

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := client.ReadMessage(); err == nil {
		t.Fatal("expected read failure after hub close")
	}

	deadline := time.Now().Add(time.Second)
	for h.Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("clients never drained after close")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
