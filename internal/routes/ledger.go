package routes

import (
	"github.com/gin-gonic/gin"

	"assetpool/internal/handlers"
)

// SetupLedgerRoutes sets up the funding and claim-token ledger boundary.
func SetupLedgerRoutes(r *gin.Engine) {
	ledger := r.Group("/ledger")
	{
		ledger.GET("/accounts/:address", handlers.GetBalance)
		ledger.GET("/claims/:address", handlers.GetClaimBalance)
		ledger.POST("/transfer", handlers.TransferFunds)
		ledger.POST("/mint", handlers.MintFunds)
		ledger.POST("/approve", handlers.ApproveSpender)
	}
}
