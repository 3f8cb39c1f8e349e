package gateway

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newWebsocketPair upgrades a loopback websocket and returns the raw
// server-side connection together with the client connection.
func newWebsocketPair(t *testing.T) (*websocket.Conn, *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	serverConns := make(chan *websocket.Conn, 1)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- ws
	}))
	t.Cleanup(ts.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case serverWS := <-serverConns:
		return serverWS, client
	case <-time.After(2 * time.Second):
		t.Fatal("server side of the websocket never arrived")
		return nil, nil
	}
}

func newConnPair(t *testing.T) (*Conn, *websocket.Conn) {
	t.Helper()

	serverWS, client := newWebsocketPair(t)
	conn := NewConn(serverWS)
	t.Cleanup(func() { conn.Close() })
	return conn, client
}

func TestConnSendDeliversThroughWriter(t *testing.T) {
	conn, client := newConnPair(t)

	require.True(t, conn.Send([]byte("queued frame")))

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "queued frame", string(payload))
}

func TestConnSendNeverBlocksOnFullQueue(t *testing.T) {
	// No writer goroutine, so the queue only ever fills
	conn := &Conn{send: make(chan []byte, 2), done: make(chan struct{})}

	assert.True(t, conn.Send([]byte("a")))
	assert.True(t, conn.Send([]byte("b")))

	accepted := make(chan bool, 1)
	go func() { accepted <- conn.Send([]byte("c")) }()

	select {
	case ok := <-accepted:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Send blocked on a full queue")
	}
}

func TestConnSendAfterClose(t *testing.T) {
	conn, _ := newConnPair(t)
	conn.Close()

	assert.False(t, conn.Send([]byte("late")))
}
