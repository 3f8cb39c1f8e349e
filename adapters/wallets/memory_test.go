package wallets

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reconnectedcc/kromer/core"
)

func TestVerifyPrivateKey(t *testing.T) {
	s := NewMemoryWalletService()
	s.CreateWallet("kabcdef1234", "secret", decimal.NewFromInt(100))

	result, err := s.VerifyPrivateKey(context.Background(), "secret")
	require.NoError(t, err)
	require.True(t, result.Authed)
	assert.Equal(t, "kabcdef1234", result.Wallet.Address)

	result, err = s.VerifyPrivateKey(context.Background(), "wrong")
	require.NoError(t, err)
	assert.False(t, result.Authed)
}

func TestGetWalletNotFound(t *testing.T) {
	s := NewMemoryWalletService()

	_, err := s.GetWallet(context.Background(), "knowhere000")
	assert.ErrorIs(t, err, core.ErrAddressNotFound)
}

func TestMakeTransfer(t *testing.T) {
	s := NewMemoryWalletService()
	s.CreateWallet("ksender0001", "pk1", decimal.NewFromInt(100))
	s.CreateWallet("krecipient1", "pk2", decimal.NewFromInt(5))

	tx, err := s.MakeTransfer(context.Background(), "ksender0001", "krecipient1", decimal.NewFromInt(30), "note")
	require.NoError(t, err)
	assert.Equal(t, "ksender0001", tx.From)
	assert.Equal(t, "krecipient1", tx.To)
	assert.True(t, tx.Value.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, core.TransactionTypeTransfer, tx.Type)

	sender, err := s.GetWallet(context.Background(), "ksender0001")
	require.NoError(t, err)
	assert.True(t, sender.Balance.Equal(decimal.NewFromInt(70)))

	recipient, err := s.GetWallet(context.Background(), "krecipient1")
	require.NoError(t, err)
	assert.True(t, recipient.Balance.Equal(decimal.NewFromInt(35)))
}

func TestMakeTransferInsufficientFunds(t *testing.T) {
	s := NewMemoryWalletService()
	s.CreateWallet("ksender0001", "pk1", decimal.NewFromInt(10))
	s.CreateWallet("krecipient1", "pk2", decimal.Zero)

	_, err := s.MakeTransfer(context.Background(), "ksender0001", "krecipient1", decimal.NewFromInt(30), "")
	assert.ErrorIs(t, err, core.ErrInsufficientFunds)
}

func TestMakeTransferUnknownRecipient(t *testing.T) {
	s := NewMemoryWalletService()
	s.CreateWallet("ksender0001", "pk1", decimal.NewFromInt(10))

	_, err := s.MakeTransfer(context.Background(), "ksender0001", "knowhere000", decimal.NewFromInt(1), "")
	assert.ErrorIs(t, err, core.ErrAddressNotFound)
}
