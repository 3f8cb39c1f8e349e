package gateway

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// handleFrame size-checks, parses and dispatches one inbound text frame,
// then writes the single correlated reply. Protocol failures answer with
// an error frame and leave the connection open.
func (s *Server) handleFrame(ctx context.Context, id uuid.UUID, conn *Conn, payload []byte, log zerolog.Logger) {
	// Size-check the raw frame; trimming must not let an oversized one
	// slip under the limit
	if utf8.RuneCount(payload) > MaxMessageLength {
		s.send(conn, newErrorFrame(nil, errMessageTooLong, "Message larger than 512 characters"), log)
		return
	}

	text := strings.TrimSpace(string(payload))

	var msg inboundMessage
	if err := json.Unmarshal([]byte(text), &msg); err != nil {
		log.Debug().Err(err).Msg("unparseable frame")
		s.send(conn, newErrorFrame(nil, errSyntaxError, "Syntax error"), log)
		return
	}

	s.send(conn, s.dispatch(ctx, id, &msg), log)
}

// dispatch routes a parsed command to its handler. The switch is the
// closed set of frame types; anything else gets the protocol error.
func (s *Server) dispatch(ctx context.Context, id uuid.UUID, msg *inboundMessage) any {
	switch msg.Type {
	case MessageTypeAddress:
		return s.handleAddress(ctx, msg)
	case MessageTypeLogin:
		return s.handleLogin(ctx, id, msg)
	case MessageTypeLogout:
		return s.handleLogout(id, msg)
	case MessageTypeMe:
		return s.handleMe(ctx, id, msg)
	case MessageTypeSubscribe:
		return s.handleSubscribe(id, msg)
	case MessageTypeUnsubscribe:
		return s.handleUnsubscribe(id, msg)
	case MessageTypeGetSubscriptionLevel:
		return s.handleGetSubscriptionLevel(id, msg)
	case MessageTypeGetValidSubscriptionLevels:
		return s.handleGetValidSubscriptionLevels(msg)
	case MessageTypeMakeTransaction:
		return s.handleMakeTransaction(ctx, id, msg)
	case MessageTypeSubmitBlock, MessageTypeWork:
		return newErrorFrame(msg.ID, errMiningDisabled, "Mining is disabled on this server")
	default:
		if msg.Type.serverOnly() {
			return newErrorFrame(msg.ID, errInvalidMessageType, "Type "+string(msg.Type)+" cannot be sent by a client")
		}
		return newErrorFrame(msg.ID, errInvalidMessageType, "Invalid message type")
	}
}

func (s *Server) send(conn *Conn, frame any, log zerolog.Logger) {
	payload, err := json.Marshal(frame)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal frame")
		return
	}
	if err := conn.WriteText(payload); err != nil {
		log.Warn().Err(err).Msg("failed to write frame")
	}
}
