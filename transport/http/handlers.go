package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/reconnectedcc/kromer/core"
	"github.com/reconnectedcc/kromer/gateway"
	"github.com/reconnectedcc/kromer/ports"
)

// GatewayHandlers contains HTTP handlers for the websocket gateway endpoints
type GatewayHandlers struct {
	server      *gateway.Server
	wallets     ports.WalletService
	publicWsURL string
	upgrader    websocket.Upgrader
	log         zerolog.Logger
}

// NewGatewayHandlers creates new gateway handlers
func NewGatewayHandlers(server *gateway.Server, wallets ports.WalletService, publicWsURL string, log zerolog.Logger) *GatewayHandlers {
	return &GatewayHandlers{
		server:      server,
		wallets:     wallets,
		publicWsURL: publicWsURL,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log.With().Str("component", "http").Logger(),
	}
}

// Start handles POST /ws/start: authenticates the optional private key and
// mints a one-time connection token bound to the resulting identity.
func (h *GatewayHandlers) Start(c *gin.Context) {
	var req struct {
		PrivateKey string `json:"privatekey"`
	}

	// The body is optional: no body at all means a guest token
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_parameter", "message": "Invalid request body"})
			return
		}
	}

	data := core.NewGuestTokenData()
	if req.PrivateKey != "" {
		result, err := h.wallets.VerifyPrivateKey(c.Request.Context(), req.PrivateKey)
		if err != nil {
			h.log.Error().Err(err).Msg("private key verification failed")
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "database_error", "message": "An error occurred in the database"})
			return
		}
		if !result.Authed {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "auth_failed", "message": "Authentication failed"})
			return
		}
		data = core.NewTokenData(result.Wallet.Address, req.PrivateKey)
	}

	token, err := h.server.Broker().Issue(c.Request.Context(), data)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to issue websocket token")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal_server_error", "message": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"url":     h.publicWsURL + "/ws/gateway/" + token.String(),
		"expires": int(gateway.TokenExpiration.Seconds()),
	})
}

// Gateway handles GET /ws/gateway/:token: upgrades the connection, then
// redeems the token. An invalid or expired token still gets a websocket
// back, but only long enough to receive one error frame before the close.
func (h *GatewayHandlers) Gateway(c *gin.Context) {
	tokenStr := c.Param("token")

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Debug().Err(err).Msg("websocket handshake failed")
		return
	}

	id, err := uuid.Parse(tokenStr)
	if err != nil {
		h.server.RejectConnection(ws)
		return
	}

	// The request context dies with the handshake response; redemption
	// and the session outlive it.
	data, err := h.server.Broker().Redeem(context.Background(), id)
	if err != nil {
		h.server.RejectConnection(ws)
		return
	}

	go h.server.HandleConnection(ws, data)
}

// Sessions handles GET /internal/ws/sessions
func (h *GatewayHandlers) Sessions(c *gin.Context) {
	views := h.server.Sessions().Views()

	out := make([]gin.H, 0, len(views))
	for _, v := range views {
		out = append(out, gin.H{"uuid": v.ID.String(), "address": v.Address})
	}

	c.JSON(http.StatusOK, out)
}

// Session handles GET /internal/ws/session?session=<uuid>
func (h *GatewayHandlers) Session(c *gin.Context) {
	id, err := uuid.Parse(c.Query("session"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	view, ok := h.server.Sessions().Snapshot(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address":       view.Address,
		"subscriptions": view.Subscriptions,
	})
}
