package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reconnectedcc/kromer/core"
)

// handleMakeTransaction validates and persists a value transfer, then
// publishes the resulting event for broadcast. The persistence call is an
// external, possibly-failing collaborator; no session lock is held over it.
func (s *Server) handleMakeTransaction(ctx context.Context, id uuid.UUID, msg *inboundMessage) any {
	if msg.Amount == nil || msg.Amount.LessThan(decimal.Zero) {
		return newErrorFrame(msg.ID, errInvalidParameter, "Invalid parameter amount")
	}
	if msg.To == "" {
		return newErrorFrame(msg.ID, errInvalidParameter, "Invalid parameter to")
	}
	if msg.PrivateKey == "" {
		return newErrorFrame(msg.ID, errInvalidParameter, "Invalid parameter privatekey")
	}

	result, err := s.wallets.VerifyPrivateKey(ctx, msg.PrivateKey)
	if err != nil {
		s.log.Error().Err(err).Msg("private key verification failed")
		return newErrorFrame(msg.ID, errDatabaseError, "An error occurred in the database")
	}
	if !result.Authed {
		return newErrorFrame(msg.ID, errInvalidParameter, "Invalid parameter privatekey")
	}
	sender := result.Wallet

	recipient, err := s.wallets.GetWallet(ctx, msg.To)
	if err == core.ErrAddressNotFound {
		return newErrorFrame(msg.ID, errAddressNotFound, "Address "+msg.To+" not found")
	}
	if err != nil {
		s.log.Error().Err(err).Msg("recipient lookup failed")
		return newErrorFrame(msg.ID, errDatabaseError, "An error occurred in the database")
	}

	if sender.Balance.LessThan(*msg.Amount) {
		return newErrorFrame(msg.ID, errInsufficientFunds, "Insufficient funds")
	}

	tx, err := s.wallets.MakeTransfer(ctx, sender.Address, recipient.Address, *msg.Amount, msg.Metadata)
	if err == core.ErrInsufficientFunds {
		// Balance changed between the check and the transfer
		return newErrorFrame(msg.ID, errInsufficientFunds, "Insufficient funds")
	}
	if err != nil {
		s.log.Error().Err(err).Msg("transfer failed")
		return newErrorFrame(msg.ID, errDatabaseError, "An error occurred in the database")
	}

	if s.events != nil {
		if err := s.events.PublishEvent(ctx, core.NewTransactionEvent(tx)); err != nil {
			// The transfer is already persisted; delivery is best-effort
			s.log.Warn().Err(err).Int64("transaction", tx.ID).Msg("failed to publish transaction event")
		}
	}

	return transactionResponse{
		responseHeader: newResponseHeader(msg.ID, MessageTypeMakeTransaction),
		Transaction:    tx,
	}
}
