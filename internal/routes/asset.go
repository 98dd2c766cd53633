package routes

import (
	"github.com/gin-gonic/gin"

	"assetpool/internal/handlers"
)

// SetupAssetRoutes sets up the asset registry and the listing venue.
func SetupAssetRoutes(r *gin.Engine) {
	assets := r.Group("/assets")
	{
		assets.GET("", handlers.ListAssets)
		assets.GET("/:id", handlers.GetAsset)
		assets.POST("", handlers.CreateAsset)
	}

	listings := r.Group("/listings")
	{
		listings.POST("", handlers.CreateListing)
		listings.GET("/:asset_id", handlers.GetListing)
	}
}
