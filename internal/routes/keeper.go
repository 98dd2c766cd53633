package routes

import (
	"github.com/gin-gonic/gin"

	"assetpool/internal/handlers"
	"assetpool/internal/middleware"
)

// SetupKeeperRoutes exposes the scheduler boundary. External keepers may
// poll aggressively, so the scan endpoint is rate limited per IP.
func SetupKeeperRoutes(r *gin.Engine) {
	keeper := r.Group("/keeper")
	keeper.Use(middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 2,
		Burst:             5,
	}))
	{
		keeper.GET("/due", handlers.KeeperDue)
		keeper.POST("/run", handlers.KeeperRun)
	}
}
