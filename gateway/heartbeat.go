package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	// HeartbeatInterval is the default ping cadence per session
	HeartbeatInterval = 5 * time.Second

	// ClientTimeout is the default liveness gap after which a session
	// is forcibly closed
	ClientTimeout = 10 * time.Second
)

// heartbeat is the per-session keepalive loop: each tick it checks the
// liveness gap, then sends a ping and a keepalive frame carrying the
// server time. Any failure tears the session down through the same
// idempotent path the read loop uses.
func (s *Server) heartbeat(ctx context.Context, id uuid.UUID, conn *Conn, teardown func()) {
	ticker := time.NewTicker(s.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			lastSeen, ok := s.sessions.LastSeen(id)
			if !ok {
				teardown()
				return
			}
			if time.Since(lastSeen) > s.clientTimeout {
				s.log.Info().Str("session", id.String()).Msg("session timed out, disconnecting")
				teardown()
				return
			}

			if err := conn.Ping(); err != nil {
				teardown()
				return
			}

			payload, err := json.Marshal(newKeepaliveFrame(time.Now()))
			if err != nil {
				continue
			}
			if err := conn.WriteText(payload); err != nil {
				teardown()
				return
			}
		}
	}
}
