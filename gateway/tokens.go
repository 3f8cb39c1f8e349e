package gateway

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/reconnectedcc/kromer/core"
	"github.com/reconnectedcc/kromer/ports"
)

// TokenExpiration is how long an issued connection token stays redeemable
const TokenExpiration = 30 * time.Second

// TokenBroker issues short-lived one-time connection tokens and redeems
// them at upgrade time. Exactly-once consumption is delegated to the
// TokenStore's atomic Take.
type TokenBroker struct {
	store ports.TokenStore
	ttl   time.Duration
	log   zerolog.Logger
}

// NewTokenBroker creates a broker over the given pending-token store
func NewTokenBroker(store ports.TokenStore, log zerolog.Logger) *TokenBroker {
	return &TokenBroker{
		store: store,
		ttl:   TokenExpiration,
		log:   log.With().Str("component", "token_broker").Logger(),
	}
}

// Issue mints a new token bound to the given identity
func (b *TokenBroker) Issue(ctx context.Context, data core.TokenData) (uuid.UUID, error) {
	id := uuid.New()

	if err := b.store.Put(ctx, id, data, b.ttl); err != nil {
		return uuid.Nil, err
	}

	b.log.Debug().Str("token", id.String()).Str("address", data.Address).Msg("issued websocket token")
	return id, nil
}

// Redeem consumes a pending token. A second redemption, or one after the
// expiry window, fails with core.ErrTokenNotFound.
func (b *TokenBroker) Redeem(ctx context.Context, id uuid.UUID) (core.TokenData, error) {
	data, err := b.store.Take(ctx, id)
	if err != nil {
		b.log.Info().Str("token", id.String()).Msg("rejected websocket token")
		return core.TokenData{}, err
	}

	b.log.Debug().Str("token", id.String()).Str("address", data.Address).Msg("redeemed websocket token")
	return data, nil
}
