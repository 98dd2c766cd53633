package routes

import (
	"github.com/gin-gonic/gin"

	"assetpool/internal/handlers"
)

// SetupPoolRoutes sets up all routes related to funding pools.
func SetupPoolRoutes(r *gin.Engine) {
	pool := r.Group("/pools")
	{
		pool.GET("", handlers.ListPools)
		pool.GET("/:id", handlers.GetPool)
		pool.POST("", handlers.CreatePool)
		pool.POST("/:id/contribute", handlers.Contribute)
		pool.POST("/:id/claim-yield", handlers.ClaimYield)
		pool.POST("/:id/withdraw", handlers.Withdraw)
		pool.POST("/:id/claim-bonus", handlers.ClaimFinalBonus)
		pool.POST("/:id/distribute-bonus", handlers.DistributeFinalBonus)
		pool.PUT("/:id/penalty", handlers.UpdatePenalty)
		pool.POST("/:id/transfer-custody", handlers.TransferCustody)
		pool.GET("/:id/contributors", handlers.ListContributors)
		pool.GET("/:id/contributors/:address", handlers.GetContributor)
	}
}
