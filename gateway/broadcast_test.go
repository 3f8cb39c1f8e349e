package gateway

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reconnectedcc/kromer/core"
)

func view(address string, subs ...core.SubscriptionType) core.SessionView {
	return core.SessionView{Address: address, Subscriptions: subs}
}

func txEvent(from, to string) core.Event {
	return core.NewTransactionEvent(&core.Transaction{
		From:  from,
		To:    to,
		Value: decimal.NewFromInt(10),
		Type:  core.TransactionTypeTransfer,
	})
}

func TestEventMatchesTransaction(t *testing.T) {
	event := txEvent("ksender0001", "krecipient1")

	tests := []struct {
		name string
		view core.SessionView
		want bool
	}{
		{
			name: "sender with ownTransactions only",
			view: view("ksender0001", core.SubscriptionOwnTransactions),
			want: true,
		},
		{
			name: "recipient with ownTransactions only",
			view: view("krecipient1", core.SubscriptionOwnTransactions),
			want: true,
		},
		{
			name: "third party with transactions",
			view: view("kbystander0", core.SubscriptionTransactions),
			want: true,
		},
		{
			name: "third party with ownTransactions only",
			view: view("kbystander0", core.SubscriptionOwnTransactions),
			want: false,
		},
		{
			name: "sender subscribed to neither",
			view: view("ksender0001", core.SubscriptionBlocks),
			want: false,
		},
		{
			name: "guest with ownTransactions only",
			view: view(core.GuestAddress, core.SubscriptionOwnTransactions),
			want: false,
		},
		{
			name: "guest with transactions",
			view: view(core.GuestAddress, core.SubscriptionTransactions),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eventMatches(event, tt.view))
		})
	}
}

func TestEventMatchesName(t *testing.T) {
	event := core.NewNameEvent(&core.Name{Name: "example", Owner: "kowner00001"})

	assert.True(t, eventMatches(event, view("kowner00001", core.SubscriptionOwnNames)))
	assert.True(t, eventMatches(event, view("kbystander0", core.SubscriptionNames)))
	assert.False(t, eventMatches(event, view("kbystander0", core.SubscriptionOwnNames)))
	assert.False(t, eventMatches(event, view(core.GuestAddress, core.SubscriptionOwnNames)))
}

func TestEventMatchesBlock(t *testing.T) {
	event := core.NewBlockEvent(&core.Block{Height: 1, Address: "kminer00001"})

	assert.True(t, eventMatches(event, view("kbystander0", core.SubscriptionBlocks)))
	assert.True(t, eventMatches(event, view("kminer00001", core.SubscriptionOwnBlocks)))
	assert.False(t, eventMatches(event, view("kbystander0", core.SubscriptionOwnBlocks)))
}

func TestEventMatchesMissingPayload(t *testing.T) {
	assert.False(t, eventMatches(core.Event{Type: core.EventTypeTransaction},
		view("kanyone0000", core.SubscriptionTransactions)))
}

func TestBroadcastNotDelayedByStalledSession(t *testing.T) {
	server := NewServer(nil, nil, nil, MOTDConfig{}, zerolog.Nop())

	// A session whose writer never drains and whose queue is already full
	stalled := &Conn{send: make(chan []byte, 1), done: make(chan struct{})}
	stalled.send <- []byte("backlog")
	server.Sessions().Create(core.NewGuestTokenData(), stalled)

	live, client := newConnPair(t)
	server.Sessions().Create(core.NewGuestTokenData(), live)

	// Both sessions hold the default blocks subscription
	finished := make(chan struct{})
	go func() {
		server.BroadcastEvent(core.NewBlockEvent(&core.Block{Height: 1, Address: "kminer00001"}))
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on the stalled session")
	}

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"event":"block"`)
}
