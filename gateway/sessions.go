package gateway

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/reconnectedcc/kromer/core"
)

// SessionState is the mutable part of a live session: auth identity and
// subscription set. Mutate callbacks receive it under the entry's lock.
type SessionState struct {
	Address       string
	PrivateKey    string
	Subscriptions map[core.SubscriptionType]struct{}
}

// IsGuest reports whether the session is unauthenticated
func (s *SessionState) IsGuest() bool {
	return s.Address == "" || s.Address == core.GuestAddress
}

type session struct {
	mu       sync.Mutex
	state    SessionState
	conn     *Conn
	lastSeen time.Time
}

// SessionStore tracks every live gateway connection. The store-level lock
// only guards map structure; each entry carries its own lock, so mutating
// one session never blocks operations on another.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
	log      zerolog.Logger
}

// NewSessionStore creates an empty session store
func NewSessionStore(log zerolog.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*session),
		log:      log.With().Str("component", "session_store").Logger(),
	}
}

// Create allocates a session for a redeemed token, pre-populated with the
// default subscription set. Session ids are fresh UUIDs and never reused.
func (s *SessionStore) Create(data core.TokenData, conn *Conn) uuid.UUID {
	id := uuid.New()

	subs := make(map[core.SubscriptionType]struct{})
	for _, t := range core.DefaultSubscriptions() {
		subs[t] = struct{}{}
	}

	entry := &session{
		state: SessionState{
			Address:       data.Address,
			PrivateKey:    data.PrivateKey,
			Subscriptions: subs,
		},
		conn:     conn,
		lastSeen: time.Now(),
	}

	s.mu.Lock()
	s.sessions[id] = entry
	s.mu.Unlock()

	s.log.Info().Str("session", id.String()).Str("address", data.Address).Msg("session created")
	return id
}

// Mutate applies an in-place update to one session's state under its
// entry lock. Returns false when the session no longer exists.
func (s *SessionStore) Mutate(id uuid.UUID, fn func(*SessionState)) bool {
	entry := s.get(id)
	if entry == nil {
		return false
	}

	entry.mu.Lock()
	fn(&entry.state)
	entry.mu.Unlock()
	return true
}

// Remove deletes a session entry. Idempotent: the client-close path and
// the heartbeat-timeout path may both call it for the same session.
func (s *SessionStore) Remove(id uuid.UUID) {
	s.mu.Lock()
	_, existed := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if existed {
		s.log.Info().Str("session", id.String()).Msg("session removed")
	}
}

// Touch records proof of liveness (a received pong)
func (s *SessionStore) Touch(id uuid.UUID) {
	entry := s.get(id)
	if entry == nil {
		return
	}

	entry.mu.Lock()
	entry.lastSeen = time.Now()
	entry.mu.Unlock()
}

// LastSeen returns the session's last liveness timestamp
func (s *SessionStore) LastSeen(id uuid.UUID) (time.Time, bool) {
	entry := s.get(id)
	if entry == nil {
		return time.Time{}, false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.lastSeen, true
}

// Snapshot returns a read-only copy of one session's state
func (s *SessionStore) Snapshot(id uuid.UUID) (core.SessionView, bool) {
	entry := s.get(id)
	if entry == nil {
		return core.SessionView{}, false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.view(id), true
}

// ForEach iterates a point-in-time copy of the session set, so broadcast
// tolerates entries being removed concurrently by other close paths. The
// callback receives a state copy and the session's transport handle; no
// store or entry lock is held while it runs.
func (s *SessionStore) ForEach(fn func(view core.SessionView, conn *Conn)) {
	s.mu.RLock()
	ids := make([]uuid.UUID, 0, len(s.sessions))
	entries := make([]*session, 0, len(s.sessions))
	for id, entry := range s.sessions {
		ids = append(ids, id)
		entries = append(entries, entry)
	}
	s.mu.RUnlock()

	for i, entry := range entries {
		entry.mu.Lock()
		view := entry.view(ids[i])
		conn := entry.conn
		entry.mu.Unlock()

		fn(view, conn)
	}
}

// Count returns the number of live sessions
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Views returns snapshots of every live session, for the internal API
func (s *SessionStore) Views() []core.SessionView {
	views := make([]core.SessionView, 0)
	s.ForEach(func(view core.SessionView, _ *Conn) {
		views = append(views, view)
	})
	return views
}

func (s *SessionStore) get(id uuid.UUID) *session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// view must be called with the entry lock held
func (e *session) view(id uuid.UUID) core.SessionView {
	subs := make([]core.SubscriptionType, 0, len(e.state.Subscriptions))
	for _, t := range core.ValidSubscriptionTypes() {
		if _, ok := e.state.Subscriptions[t]; ok {
			subs = append(subs, t)
		}
	}

	return core.SessionView{
		ID:            id,
		Address:       e.state.Address,
		Subscriptions: subs,
		LastSeen:      e.lastSeen,
	}
}
