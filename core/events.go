package core

// EventType names the ledger mutations the gateway broadcasts.
type EventType string

const (
	EventTypeTransaction EventType = "transaction"
	EventTypeName        EventType = "name"
	EventTypeBlock       EventType = "block"
)

// Event is one ledger mutation to fan out. Exactly one payload field is
// set, matching Event's type.
type Event struct {
	Type        EventType    `json:"event"`
	Transaction *Transaction `json:"transaction,omitempty"`
	Name        *Name        `json:"name,omitempty"`
	Block       *Block       `json:"block,omitempty"`
}

// NewTransactionEvent wraps a persisted transaction for broadcast
func NewTransactionEvent(tx *Transaction) Event {
	return Event{Type: EventTypeTransaction, Transaction: tx}
}

// NewNameEvent wraps a name registration or transfer for broadcast
func NewNameEvent(name *Name) Event {
	return Event{Type: EventTypeName, Name: name}
}

// NewBlockEvent wraps a mined block for broadcast
func NewBlockEvent(block *Block) Event {
	return Event{Type: EventTypeBlock, Block: block}
}
