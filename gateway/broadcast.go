package gateway

import (
	"encoding/json"

	"github.com/reconnectedcc/kromer/core"
)

// BroadcastEvent fans one ledger event out to every session whose
// subscription set and authenticated identity match it. The event is
// serialized once, then enqueued on each matching session's outbound
// queue: a stalled session only fills its own queue and never delays
// delivery to the others. A full queue drops the frame with a log line;
// removing dead sessions stays the heartbeat's and close path's job,
// which avoids duplicate-removal races.
func (s *Server) BroadcastEvent(event core.Event) {
	frame := eventFrame{Type: MessageTypeEvent, Event: event}
	payload, err := json.Marshal(frame)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal event")
		return
	}

	s.sessions.ForEach(func(view core.SessionView, conn *Conn) {
		if !eventMatches(event, view) {
			return
		}
		if !conn.Send(payload) {
			s.log.Warn().
				Str("session", view.ID.String()).
				Msg("dropping event for slow session")
		}
	})
}

// eventMatches decides broadcast eligibility: each event type has a
// general topic any session may subscribe to, and an owner-scoped topic
// that additionally requires the session's authenticated address to be a
// party to the event.
func eventMatches(event core.Event, view core.SessionView) bool {
	switch event.Type {
	case core.EventTypeTransaction:
		if event.Transaction == nil {
			return false
		}
		if view.Subscribed(core.SubscriptionTransactions) {
			return true
		}
		owns := view.Address == event.Transaction.From || view.Address == event.Transaction.To
		return !view.IsGuest() && owns && view.Subscribed(core.SubscriptionOwnTransactions)

	case core.EventTypeName:
		if event.Name == nil {
			return false
		}
		if view.Subscribed(core.SubscriptionNames) {
			return true
		}
		return !view.IsGuest() && view.Address == event.Name.Owner && view.Subscribed(core.SubscriptionOwnNames)

	case core.EventTypeBlock:
		if event.Block == nil {
			return false
		}
		if view.Subscribed(core.SubscriptionBlocks) {
			return true
		}
		return !view.IsGuest() && view.Address == event.Block.Address && view.Subscribed(core.SubscriptionOwnBlocks)
	}

	return false
}
