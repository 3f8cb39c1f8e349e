package core

// SubscriptionType is a named category of broadcast event a session can
// subscribe to.
type SubscriptionType string

const (
	SubscriptionBlocks          SubscriptionType = "blocks"
	SubscriptionOwnBlocks       SubscriptionType = "ownBlocks"
	SubscriptionTransactions    SubscriptionType = "transactions"
	SubscriptionOwnTransactions SubscriptionType = "ownTransactions"
	SubscriptionNames           SubscriptionType = "names"
	SubscriptionOwnNames        SubscriptionType = "ownNames"
	SubscriptionMotd            SubscriptionType = "motd"
)

// ValidSubscriptionTypes returns every topic the gateway accepts, in the
// order they are reported to clients.
func ValidSubscriptionTypes() []SubscriptionType {
	return []SubscriptionType{
		SubscriptionBlocks,
		SubscriptionOwnBlocks,
		SubscriptionTransactions,
		SubscriptionOwnTransactions,
		SubscriptionNames,
		SubscriptionOwnNames,
		SubscriptionMotd,
	}
}

// DefaultSubscriptions returns the topic set every new session starts with.
func DefaultSubscriptions() []SubscriptionType {
	return []SubscriptionType{SubscriptionOwnTransactions, SubscriptionBlocks}
}

// ParseSubscriptionType validates a client-supplied topic name.
func ParseSubscriptionType(s string) (SubscriptionType, bool) {
	for _, t := range ValidSubscriptionTypes() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}
