package routes

import (
	"github.com/gin-gonic/gin"

	"assetpool/internal/handlers"
)

// SetupDevelopmentRoutes sets up the development-record registry reads.
func SetupDevelopmentRoutes(r *gin.Engine) {
	dev := r.Group("/development-records")
	{
		dev.GET("", handlers.ListDevelopmentRecords)
		dev.GET("/:asset_id", handlers.GetDevelopmentRecord)
	}
}
