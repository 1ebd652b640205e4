package httpx

import (
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoprelay/internal/models"
	"shoprelay/internal/stream"
)

func TestWSDeliversEvents(t *testing.T) {
	hub := stream.NewHub()
	srv := httptest.NewServer(WS(nil, hub))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// subscription races the dial; give the handler a moment
	time.Sleep(50 * time.Millisecond)
	hub.Publish(models.ReactionEvent{ID: "1", Emoji: "rocket", TS: time.Now()})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, b, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(b), `"rocket"`)
}

func TestWSConnectionsDoNotLeakGoroutines(t *testing.T) {
	hub := stream.NewHub()
	srv := httptest.NewServer(WS(nil, hub))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	before := runtime.NumGoroutine()

	for i := 0; i < 20; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		require.NoError(t, conn.Close())
	}

	// closed connections wind their handlers down asynchronously
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) && runtime.NumGoroutine() > before+5 {
		time.Sleep(20 * time.Millisecond)
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before+5)
}
