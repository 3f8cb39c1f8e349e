package gateway

import (
	"github.com/google/uuid"

	"github.com/reconnectedcc/kromer/core"
)

// handleSubscribe adds a topic to the session's subscription set. An
// invalid topic name leaves the set unchanged.
func (s *Server) handleSubscribe(id uuid.UUID, msg *inboundMessage) any {
	topic, ok := core.ParseSubscriptionType(msg.Event)
	if !ok {
		return newErrorFrame(msg.ID, errInvalidParameter, "Invalid parameter event")
	}

	s.sessions.Mutate(id, func(state *SessionState) {
		state.Subscriptions[topic] = struct{}{}
	})

	return subscriptionResponse{
		responseHeader:    newResponseHeader(msg.ID, MessageTypeSubscribe),
		SubscriptionLevel: s.subscriptionLevel(id),
	}
}

// handleUnsubscribe removes a topic from the session's subscription set
func (s *Server) handleUnsubscribe(id uuid.UUID, msg *inboundMessage) any {
	topic, ok := core.ParseSubscriptionType(msg.Event)
	if !ok {
		return newErrorFrame(msg.ID, errInvalidParameter, "Invalid parameter event")
	}

	s.sessions.Mutate(id, func(state *SessionState) {
		delete(state.Subscriptions, topic)
	})

	return subscriptionResponse{
		responseHeader:    newResponseHeader(msg.ID, MessageTypeUnsubscribe),
		SubscriptionLevel: s.subscriptionLevel(id),
	}
}

func (s *Server) handleGetSubscriptionLevel(id uuid.UUID, msg *inboundMessage) any {
	return subscriptionResponse{
		responseHeader:    newResponseHeader(msg.ID, MessageTypeGetSubscriptionLevel),
		SubscriptionLevel: s.subscriptionLevel(id),
	}
}

func (s *Server) handleGetValidSubscriptionLevels(msg *inboundMessage) any {
	valid := core.ValidSubscriptionTypes()
	levels := make([]string, len(valid))
	for i, t := range valid {
		levels[i] = string(t)
	}

	return validLevelsResponse{
		responseHeader:          newResponseHeader(msg.ID, MessageTypeGetValidSubscriptionLevels),
		ValidSubscriptionLevels: levels,
	}
}

func (s *Server) subscriptionLevel(id uuid.UUID) []string {
	view, ok := s.sessions.Snapshot(id)
	if !ok {
		return []string{}
	}

	levels := make([]string, len(view.Subscriptions))
	for i, t := range view.Subscriptions {
		levels[i] = string(t)
	}
	return levels
}
