package routes

import (
	"github.com/gin-gonic/gin"

	"assetpool/internal/handlers"
)

// SetupEventRoutes exposes the websocket event stream.
func SetupEventRoutes(r *gin.Engine) {
	r.GET("/events/ws", handlers.StreamEvents)
}
