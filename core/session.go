package core

import (
	"time"

	"github.com/google/uuid"
)

// GuestAddress is the identity sessions carry before a successful login.
const GuestAddress = "guest"

// TokenData binds the identity that is attached to a session once a
// pending websocket token is redeemed.
type TokenData struct {
	Address    string
	PrivateKey string // empty for guest tokens
}

// NewTokenData creates token data for an authenticated wallet
func NewTokenData(address, privateKey string) TokenData {
	return TokenData{Address: address, PrivateKey: privateKey}
}

// NewGuestTokenData creates token data for an unauthenticated connection
func NewGuestTokenData() TokenData {
	return TokenData{Address: GuestAddress}
}

// IsGuest reports whether the token carries no wallet identity
func (t TokenData) IsGuest() bool {
	return t.Address == "" || t.Address == GuestAddress
}

// SessionView is a read-only copy of one live session's state, taken
// without holding the session's lock across any I/O.
type SessionView struct {
	ID            uuid.UUID
	Address       string
	Subscriptions []SubscriptionType
	LastSeen      time.Time
}

// IsGuest reports whether the session is unauthenticated
func (v SessionView) IsGuest() bool {
	return v.Address == "" || v.Address == GuestAddress
}

// Subscribed reports whether the view includes the given topic
func (v SessionView) Subscribed(topic SubscriptionType) bool {
	for _, s := range v.Subscriptions {
		if s == topic {
			return true
		}
	}
	return false
}
