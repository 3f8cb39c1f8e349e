package core

import (
	"github.com/shopspring/decimal"
)

// Wallet is the ledger-side record for one address, as returned by the
// persistence collaborator and serialized into API responses.
type Wallet struct {
	Address   string          `json:"address"`
	Balance   decimal.Decimal `json:"balance"`
	TotalIn   decimal.Decimal `json:"totalin"`
	TotalOut  decimal.Decimal `json:"totalout"`
	FirstSeen string          `json:"firstseen"`
	Names     *int            `json:"names,omitempty"`
}

// AuthResult is the outcome of checking a private key against persisted
// wallet state.
type AuthResult struct {
	Authed bool
	Wallet *Wallet
}

// TransactionType discriminates ledger transactions.
type TransactionType string

const (
	TransactionTypeTransfer     TransactionType = "transfer"
	TransactionTypeNamePurchase TransactionType = "name_purchase"
	TransactionTypeNameTransfer TransactionType = "name_transfer"
	TransactionTypeMined        TransactionType = "mined"
	TransactionTypeUnknown      TransactionType = "unknown"
)

// Transaction is one value transfer between two addresses.
type Transaction struct {
	ID       int64           `json:"id"`
	From     string          `json:"from,omitempty"`
	To       string          `json:"to,omitempty"`
	Value    decimal.Decimal `json:"value"`
	Time     string          `json:"time"`
	Name     string          `json:"name,omitempty"`
	Metadata string          `json:"metadata,omitempty"`
	Type     TransactionType `json:"type"`
}

// Name is one registered name and its current owner.
type Name struct {
	Name       string `json:"name"`
	Owner      string `json:"owner"`
	Registered string `json:"registered"`
	Updated    string `json:"updated,omitempty"`
	A          string `json:"a,omitempty"`
}

// Block is one mined block. Kromer runs with mining disabled, but block
// events remain part of the broadcast protocol.
type Block struct {
	Height    int64           `json:"height"`
	Address   string          `json:"address"`
	Hash      string          `json:"hash,omitempty"`
	ShortHash string          `json:"short_hash,omitempty"`
	Value     decimal.Decimal `json:"value"`
	Time      string          `json:"time"`
}
