package core

import "errors"

var (
	// ErrTokenNotFound is returned when a websocket token is unknown,
	// expired, or already redeemed
	ErrTokenNotFound = errors.New("websocket token not found")

	// ErrSessionNotFound is returned when a session id has no live entry
	ErrSessionNotFound = errors.New("session not found")

	// ErrAuthFailed is returned when a private key matches no wallet
	ErrAuthFailed = errors.New("authentication failed")

	// ErrAddressNotFound is returned when an address has no wallet
	ErrAddressNotFound = errors.New("address not found")

	// ErrInsufficientFunds is returned when a sender cannot cover a transfer
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrStoreOperationFailed is returned when the token store backend fails
	ErrStoreOperationFailed = errors.New("store operation failed")
)
