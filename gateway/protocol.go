package gateway

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reconnectedcc/kromer/core"
)

// MaxMessageLength is the largest inbound text frame, in characters, the
// router will parse
const MaxMessageLength = 512

// MessageType tags every frame crossing the gateway, in both directions.
type MessageType string

const (
	// Client commands
	MessageTypeAddress                    MessageType = "address"
	MessageTypeLogin                      MessageType = "login"
	MessageTypeLogout                     MessageType = "logout"
	MessageTypeMe                         MessageType = "me"
	MessageTypeSubscribe                  MessageType = "subscribe"
	MessageTypeUnsubscribe                MessageType = "unsubscribe"
	MessageTypeGetSubscriptionLevel       MessageType = "get_subscription_level"
	MessageTypeGetValidSubscriptionLevels MessageType = "get_valid_subscription_levels"
	MessageTypeMakeTransaction            MessageType = "make_transaction"

	// Mining-era commands, refused while mining is disabled
	MessageTypeSubmitBlock MessageType = "submit_block"
	MessageTypeWork        MessageType = "work"

	// Server-pushed frames, never accepted from a client
	MessageTypeHello     MessageType = "hello"
	MessageTypeError     MessageType = "error"
	MessageTypeResponse  MessageType = "response"
	MessageTypeKeepalive MessageType = "keepalive"
	MessageTypeEvent     MessageType = "event"
)

// serverOnly reports whether a frame type may only originate server-side
func (t MessageType) serverOnly() bool {
	switch t {
	case MessageTypeHello, MessageTypeError, MessageTypeResponse, MessageTypeKeepalive, MessageTypeEvent:
		return true
	}
	return false
}

// inboundMessage is the tagged command union coming off the wire. Every
// command's fields live here; the router's dispatch decides which matter.
type inboundMessage struct {
	ID   *int64      `json:"id"`
	Type MessageType `json:"type"`

	// address
	Address    string `json:"address,omitempty"`
	FetchNames bool   `json:"fetchNames,omitempty"`

	// login, make_transaction
	PrivateKey string `json:"privatekey,omitempty"`

	// make_transaction
	To       string           `json:"to,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Metadata string           `json:"metadata,omitempty"`

	// subscribe, unsubscribe
	Event string `json:"event,omitempty"`
}

// frameHeader is common to every server-sent frame. ID is the echoed
// client correlation id, or null when the request carried none.
type frameHeader struct {
	OK   bool        `json:"ok"`
	ID   *int64      `json:"id"`
	Type MessageType `json:"type"`
}

type errorFrame struct {
	frameHeader
	Error   string `json:"error"`
	Message string `json:"message"`
}

type responseHeader struct {
	frameHeader
	RespondingTo MessageType `json:"responding_to"`
}

type keepaliveFrame struct {
	Type       MessageType `json:"type"`
	ServerTime string      `json:"server_time"`
}

type helloFrame struct {
	frameHeader
	DetailedMOTD
}

type eventFrame struct {
	Type MessageType `json:"type"`
	core.Event
}

// Per-command response payloads

type addressResponse struct {
	responseHeader
	Address *core.Wallet `json:"address"`
}

type loginResponse struct {
	responseHeader
	IsGuest bool         `json:"isGuest"`
	Address *core.Wallet `json:"address,omitempty"`
}

type logoutResponse struct {
	responseHeader
	IsGuest bool `json:"isGuest"`
}

type meResponse struct {
	responseHeader
	IsGuest bool         `json:"isGuest"`
	Address *core.Wallet `json:"address,omitempty"`
}

type subscriptionResponse struct {
	responseHeader
	SubscriptionLevel []string `json:"subscription_level"`
}

type validLevelsResponse struct {
	responseHeader
	ValidSubscriptionLevels []string `json:"valid_subscription_levels"`
}

type transactionResponse struct {
	responseHeader
	Transaction *core.Transaction `json:"transaction"`
}

func newErrorFrame(id *int64, code, message string) errorFrame {
	return errorFrame{
		frameHeader: frameHeader{OK: false, ID: id, Type: MessageTypeError},
		Error:       code,
		Message:     message,
	}
}

func newResponseHeader(id *int64, respondingTo MessageType) responseHeader {
	return responseHeader{
		frameHeader:  frameHeader{OK: true, ID: id, Type: MessageTypeResponse},
		RespondingTo: respondingTo,
	}
}

func newKeepaliveFrame(now time.Time) keepaliveFrame {
	return keepaliveFrame{
		Type:       MessageTypeKeepalive,
		ServerTime: core.ISOTime(now),
	}
}

// Wire error codes
const (
	errInvalidWebsocketToken = "invalid_websocket_token"
	errMessageTooLong        = "message_too_long"
	errInvalidMessageType    = "invalid_message_type"
	errSyntaxError           = "syntax_error"
	errInvalidParameter      = "invalid_parameter"
	errAuthFailed            = "auth_failed"
	errAddressNotFound       = "address_not_found"
	errInsufficientFunds     = "insufficient_funds"
	errMiningDisabled        = "mining_disabled"
	errDatabaseError         = "database_error"
	errInternalServerError   = "internal_server_error"
)
