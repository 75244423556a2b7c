package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// dialTestClient upgrades one server-side connection and returns both ends.
func dialTestClient(t *testing.T) (serverConn, clientConn *websocket.Conn, cleanup func()) {
	t.Helper()

	conns := make(chan *websocket.Conn, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- conn
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	clientConn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	serverConn = <-conns
	return serverConn, clientConn, func() {
		_ = clientConn.Close()
		srv.Close()
	}
}

func TestBroadcastConcurrentPosters(t *testing.T) {
	// Two users posting at the same time must not produce interleaved writes
	// on a subscriber's connection.
	hub := NewHub(zap.NewNop())

	serverConn, clientConn, cleanup := dialTestClient(t)
	defer cleanup()

	client := NewClient("user-1", serverConn)
	hub.Register(client)

	received := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = clientConn.SetReadDeadline(time.Now().Add(2 * time.Second))
		for {
			if _, _, err := clientConn.ReadMessage(); err != nil {
				return
			}
			received++
		}
	}()

	const posters = 8
	const messagesEach = 50
	var wg sync.WaitGroup
	for i := 0; i < posters; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < messagesEach; j++ {
				hub.Broadcast(map[string]int{"poster": n, "seq": j})
			}
		}(i)
	}
	wg.Wait()

	hub.Unregister(client)
	<-done
	assert.Greater(t, received, 0)
}

func TestBroadcastDoesNotBlockOnSlowSubscriber(t *testing.T) {
	// The subscriber never reads; once its buffer fills the hub drops
	// messages instead of blocking the poster.
	hub := NewHub(zap.NewNop())

	serverConn, _, cleanup := dialTestClient(t)
	defer cleanup()

	client := &Client{UserID: "user-1", Conn: serverConn, send: make(chan []byte, 2)}
	hub.Register(client)
	defer hub.Unregister(client)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			hub.Broadcast(map[string]int{"seq": i})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a slow subscriber")
	}
}

func TestUnregisterIsIdempotent(t *testing.T) {
	hub := NewHub(zap.NewNop())

	serverConn, _, cleanup := dialTestClient(t)
	defer cleanup()

	client := NewClient("user-1", serverConn)
	hub.Register(client)
	hub.Unregister(client)
	hub.Unregister(client)

	hub.Broadcast(map[string]string{"body": "ciao"})
}
