package ports

import (
	"context"

	"github.com/reconnectedcc/kromer/core"
)

// EventPublisher puts ledger-mutation events onto the bus that feeds the
// gateway's broadcaster (and, in multi-instance deployments, every other
// instance's broadcaster too).
type EventPublisher interface {
	PublishEvent(ctx context.Context, event core.Event) error
}
