package events

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/reconnectedcc/kromer/core"
)

// Relay drains ledger events off the bus and hands them to the gateway's
// broadcaster. Malformed payloads are acked and dropped so one bad message
// cannot wedge the stream.
type Relay struct {
	subscriber message.Subscriber
	topic      string
	log        zerolog.Logger
}

// NewRelay creates a relay reading from the shared events topic
func NewRelay(subscriber message.Subscriber, log zerolog.Logger) *Relay {
	return &Relay{
		subscriber: subscriber,
		topic:      EventsTopic,
		log:        log.With().Str("component", "event_relay").Logger(),
	}
}

// Run consumes events until ctx is cancelled, invoking broadcast for each.
func (r *Relay) Run(ctx context.Context, broadcast func(core.Event)) error {
	messages, err := r.subscriber.Subscribe(ctx, r.topic)
	if err != nil {
		return err
	}

	for msg := range messages {
		var event core.Event
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			r.log.Error().Err(err).Str("message", msg.UUID).Msg("dropping malformed event payload")
			msg.Ack()
			continue
		}

		broadcast(event)
		msg.Ack()
	}

	return nil
}
