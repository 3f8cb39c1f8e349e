package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reconnectedcc/kromer/core"
)

// TokenStore holds pending websocket tokens between issuance and redemption.
type TokenStore interface {
	// Put stores a pending token. The entry disappears on its own once
	// ttl elapses.
	Put(ctx context.Context, id uuid.UUID, data core.TokenData, ttl time.Duration) error

	// Take atomically removes and returns a pending token. At most one
	// concurrent caller succeeds; everyone else gets core.ErrTokenNotFound,
	// as does any caller after the ttl has elapsed.
	Take(ctx context.Context, id uuid.UUID) (core.TokenData, error)
}
