// Package gateway implements the real-time websocket session and
// event-subscription gateway: one-time connection tokens, live session
// state, the inbound command protocol, per-session heartbeats, and
// ledger-event fan-out.
package gateway

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/reconnectedcc/kromer/core"
	"github.com/reconnectedcc/kromer/ports"
)

// Server owns the session store and token broker and runs the per-
// connection loops. The HTTP layer hands it upgraded connections; ledger
// call sites hand it events through BroadcastEvent.
type Server struct {
	sessions *SessionStore
	broker   *TokenBroker
	wallets  ports.WalletService
	events   ports.EventPublisher
	motd     MOTDConfig
	log      zerolog.Logger

	heartbeatInterval time.Duration
	clientTimeout     time.Duration
}

// NewServer wires the gateway core
func NewServer(
	broker *TokenBroker,
	wallets ports.WalletService,
	events ports.EventPublisher,
	motd MOTDConfig,
	log zerolog.Logger,
) *Server {
	return &Server{
		sessions: NewSessionStore(log),
		broker:   broker,
		wallets:  wallets,
		events:   events,
		motd:     motd,
		log:      log.With().Str("component", "gateway").Logger(),

		heartbeatInterval: HeartbeatInterval,
		clientTimeout:     ClientTimeout,
	}
}

// Sessions exposes the session store to the internal API
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// Broker exposes the token broker to the HTTP layer
func (s *Server) Broker() *TokenBroker {
	return s.broker
}

// RejectConnection sends the single invalid-token error frame and closes.
// Used when the upgrade path fails to redeem a token: the connection never
// reaches Established and no session entry is created.
func (s *Server) RejectConnection(ws *websocket.Conn) {
	conn := NewConn(ws)
	frame := newErrorFrame(nil, errInvalidWebsocketToken, "Invalid websocket token")
	if payload, err := json.Marshal(frame); err == nil {
		conn.WriteText(payload)
	}
	conn.Close()
}

// HandleConnection runs one established session until it closes: sends the
// hello frame, starts the heartbeat loop, and processes inbound frames one
// at a time so responses leave in request order. Blocks until teardown.
func (s *Server) HandleConnection(ws *websocket.Conn, data core.TokenData) {
	conn := NewConn(ws)
	id := s.sessions.Create(data, conn)
	log := s.log.With().Str("session", id.String()).Logger()

	// Both the read loop and the heartbeat can decide the connection is
	// dead; teardown runs once and session removal is idempotent anyway.
	ctx, cancel := context.WithCancel(context.Background())
	var once sync.Once
	teardown := func() {
		once.Do(func() {
			cancel()
			s.sessions.Remove(id)
			conn.Close()
			log.Info().Msg("session closed")
		})
	}

	ws.SetReadLimit(1 << 20)
	ws.SetPongHandler(func(string) error {
		s.sessions.Touch(id)
		return nil
	})

	hello := helloFrame{
		frameHeader:  frameHeader{OK: true, Type: MessageTypeHello},
		DetailedMOTD: s.motd.detailed(time.Now()),
	}
	if payload, err := json.Marshal(hello); err == nil {
		if err := conn.WriteText(payload); err != nil {
			teardown()
			return
		}
	}

	go s.heartbeat(ctx, id, conn, teardown)

	for {
		msgType, payload, err := ws.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}
		s.handleFrame(ctx, id, conn, payload, log)
	}

	teardown()
}
