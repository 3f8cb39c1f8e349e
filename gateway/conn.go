package gateway

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second

	// sendBuffer is how many broadcast frames may queue per session
	// before the session is considered too slow to keep up
	sendBuffer = 64
)

// Conn is the outbound transport handle for one session. The gorilla
// connection allows a single concurrent writer, so every write path
// (responses, keepalives, broadcasts) goes through the mutex here.
// Broadcast frames additionally go through a buffered queue drained by a
// per-connection writer goroutine, so a stalled peer only ever backs up
// its own queue.
type Conn struct {
	ws   *websocket.Conn
	mu   sync.Mutex
	send chan []byte
	done chan struct{}
	once sync.Once
}

// NewConn wraps an upgraded websocket connection and starts its writer
func NewConn(ws *websocket.Conn) *Conn {
	c := &Conn{
		ws:   ws,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	go c.writePump()
	return c
}

// writePump drains the outbound queue until the connection closes or a
// write fails
func (c *Conn) writePump() {
	for {
		select {
		case <-c.done:
			return
		case payload := <-c.send:
			if err := c.WriteText(payload); err != nil {
				return
			}
		}
	}
}

// WriteText sends one text frame
func (c *Conn) WriteText(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Send enqueues one frame for the writer goroutine. It never blocks:
// the frame is dropped and false returned when the queue is full or the
// connection is already closed.
func (c *Conn) Send(payload []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// Ping sends a websocket ping control frame
func (c *Conn) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

// Close stops the writer, sends a close frame and tears down the
// underlying connection. Safe to call from both the heartbeat and the
// read-loop teardown paths.
func (c *Conn) Close() error {
	c.once.Do(func() { close(c.done) })

	c.mu.Lock()
	c.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	c.mu.Unlock()

	return c.ws.Close()
}
