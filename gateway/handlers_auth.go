package gateway

import (
	"context"

	"github.com/google/uuid"

	"github.com/reconnectedcc/kromer/core"
)

// handleLogin verifies the supplied private key against persisted wallet
// state and, on success, re-binds the session to that wallet in place. A
// failed login leaves the session's prior auth state untouched.
func (s *Server) handleLogin(ctx context.Context, id uuid.UUID, msg *inboundMessage) any {
	if msg.PrivateKey == "" {
		return newErrorFrame(msg.ID, errInvalidParameter, "Invalid parameter privatekey")
	}

	result, err := s.wallets.VerifyPrivateKey(ctx, msg.PrivateKey)
	if err != nil {
		s.log.Error().Err(err).Msg("private key verification failed")
		return newErrorFrame(msg.ID, errDatabaseError, "An error occurred in the database")
	}

	if !result.Authed {
		return newErrorFrame(msg.ID, errAuthFailed, "Authentication failed")
	}

	s.sessions.Mutate(id, func(state *SessionState) {
		state.Address = result.Wallet.Address
		state.PrivateKey = msg.PrivateKey
	})

	return loginResponse{
		responseHeader: newResponseHeader(msg.ID, MessageTypeLogin),
		IsGuest:        false,
		Address:        result.Wallet,
	}
}

// handleLogout demotes the session to guest
func (s *Server) handleLogout(id uuid.UUID, msg *inboundMessage) any {
	s.sessions.Mutate(id, func(state *SessionState) {
		state.Address = core.GuestAddress
		state.PrivateKey = ""
	})

	return logoutResponse{
		responseHeader: newResponseHeader(msg.ID, MessageTypeLogout),
		IsGuest:        true,
	}
}

// handleMe answers the "who am I" query from the session snapshot,
// resolving the wallet for authenticated sessions.
func (s *Server) handleMe(ctx context.Context, id uuid.UUID, msg *inboundMessage) any {
	view, ok := s.sessions.Snapshot(id)
	if !ok || view.IsGuest() {
		return meResponse{
			responseHeader: newResponseHeader(msg.ID, MessageTypeMe),
			IsGuest:        true,
		}
	}

	wallet, err := s.wallets.GetWallet(ctx, view.Address)
	if err == core.ErrAddressNotFound {
		return newErrorFrame(msg.ID, errAddressNotFound, "Address "+view.Address+" not found")
	}
	if err != nil {
		s.log.Error().Err(err).Msg("wallet lookup failed")
		return newErrorFrame(msg.ID, errInternalServerError, "Something went wrong while processing your message")
	}

	return meResponse{
		responseHeader: newResponseHeader(msg.ID, MessageTypeMe),
		IsGuest:        false,
		Address:        wallet,
	}
}

// handleAddress resolves any wallet by address
func (s *Server) handleAddress(ctx context.Context, msg *inboundMessage) any {
	if msg.Address == "" {
		return newErrorFrame(msg.ID, errInvalidParameter, "Invalid parameter address")
	}

	wallet, err := s.wallets.GetWallet(ctx, msg.Address)
	if err == core.ErrAddressNotFound {
		return newErrorFrame(msg.ID, errAddressNotFound, "Address "+msg.Address+" not found")
	}
	if err != nil {
		s.log.Error().Err(err).Msg("wallet lookup failed")
		return newErrorFrame(msg.ID, errInternalServerError, "Something went wrong while processing your message")
	}

	if !msg.FetchNames {
		wallet.Names = nil
	}

	return addressResponse{
		responseHeader: newResponseHeader(msg.ID, MessageTypeAddress),
		Address:        wallet,
	}
}
