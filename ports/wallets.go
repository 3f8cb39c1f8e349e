package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/reconnectedcc/kromer/core"
)

// WalletService is the persistence collaborator the gateway consumes.
// Implementations own all balance arithmetic and address derivation; the
// gateway only calls through this contract and never holds session locks
// across these calls.
type WalletService interface {
	// GetWallet looks up one wallet. Returns core.ErrAddressNotFound when
	// the address has no wallet.
	GetWallet(ctx context.Context, address string) (*core.Wallet, error)

	// VerifyPrivateKey checks a credential against persisted wallet state.
	// A wrong key is not an error: the result simply reports Authed false.
	VerifyPrivateKey(ctx context.Context, privateKey string) (*core.AuthResult, error)

	// MakeTransfer debits the sender, credits the recipient, and persists
	// the resulting transaction.
	MakeTransfer(ctx context.Context, from, to string, amount decimal.Decimal, metadata string) (*core.Transaction, error)
}
