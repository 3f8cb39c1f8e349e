package http

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter sets up the Gin router
func SetupRouter(handlers *GatewayHandlers, internalSecret string) *gin.Engine {
	router := gin.Default()

	// Gateway routes
	ws := router.Group("/ws")
	{
		ws.POST("/start", handlers.Start)
		ws.GET("/gateway/:token", handlers.Gateway)
	}

	// Internal observability routes
	internal := router.Group("/internal/ws")
	internal.Use(InternalAuthMiddleware(internalSecret))
	{
		internal.GET("/sessions", handlers.Sessions)
		internal.GET("/session", handlers.Session)
	}

	return router
}
