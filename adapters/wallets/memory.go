package wallets

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reconnectedcc/kromer/core"
	"github.com/reconnectedcc/kromer/ports"
)

// MemoryWalletService is an in-memory implementation of the WalletService
// collaborator, used in development and tests in place of the real
// persistence layer.
type MemoryWalletService struct {
	mu        sync.Mutex
	byAddress map[string]*walletRecord
	byKey     map[string]string
	nextTxID  int64
}

type walletRecord struct {
	address   string
	balance   decimal.Decimal
	totalIn   decimal.Decimal
	totalOut  decimal.Decimal
	firstSeen time.Time
	names     int
}

// NewMemoryWalletService creates an empty in-memory wallet service
func NewMemoryWalletService() *MemoryWalletService {
	return &MemoryWalletService{
		byAddress: make(map[string]*walletRecord),
		byKey:     make(map[string]string),
		nextTxID:  1,
	}
}

// CreateWallet seeds a wallet with a starting balance
func (s *MemoryWalletService) CreateWallet(address, privateKey string, balance decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byAddress[address] = &walletRecord{
		address:   address,
		balance:   balance,
		totalIn:   balance,
		firstSeen: time.Now(),
	}
	if privateKey != "" {
		s.byKey[privateKey] = address
	}
}

// GetWallet looks up one wallet by address
func (s *MemoryWalletService) GetWallet(ctx context.Context, address string) (*core.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byAddress[address]
	if !ok {
		return nil, core.ErrAddressNotFound
	}
	return rec.wallet(), nil
}

// VerifyPrivateKey checks a private key against the seeded wallets
func (s *MemoryWalletService) VerifyPrivateKey(ctx context.Context, privateKey string) (*core.AuthResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	address, ok := s.byKey[privateKey]
	if !ok {
		return &core.AuthResult{Authed: false}, nil
	}

	rec, ok := s.byAddress[address]
	if !ok {
		return &core.AuthResult{Authed: false}, nil
	}

	return &core.AuthResult{Authed: true, Wallet: rec.wallet()}, nil
}

// MakeTransfer moves funds between two wallets and records the transaction
func (s *MemoryWalletService) MakeTransfer(ctx context.Context, from, to string, amount decimal.Decimal, metadata string) (*core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sender, ok := s.byAddress[from]
	if !ok {
		return nil, core.ErrAddressNotFound
	}
	recipient, ok := s.byAddress[to]
	if !ok {
		return nil, core.ErrAddressNotFound
	}
	if sender.balance.LessThan(amount) {
		return nil, core.ErrInsufficientFunds
	}

	sender.balance = sender.balance.Sub(amount)
	sender.totalOut = sender.totalOut.Add(amount)
	recipient.balance = recipient.balance.Add(amount)
	recipient.totalIn = recipient.totalIn.Add(amount)

	tx := &core.Transaction{
		ID:       s.nextTxID,
		From:     from,
		To:       to,
		Value:    amount,
		Time:     core.ISOTime(time.Now()),
		Metadata: metadata,
		Type:     core.TransactionTypeTransfer,
	}
	s.nextTxID++

	return tx, nil
}

func (r *walletRecord) wallet() *core.Wallet {
	names := r.names
	return &core.Wallet{
		Address:   r.address,
		Balance:   r.balance,
		TotalIn:   r.totalIn,
		TotalOut:  r.totalOut,
		FirstSeen: core.ISOTime(r.firstSeen),
		Names:     &names,
	}
}

var _ ports.WalletService = (*MemoryWalletService)(nil)
