package routes

import (
	"github.com/gin-gonic/gin"

	"assetpool/internal/handlers"
)

// SetupGovernanceRoutes sets up proposer registration, proposals, voting and
// execution.
func SetupGovernanceRoutes(r *gin.Engine) {
	gov := r.Group("/governance")
	{
		gov.POST("/proposers", handlers.RegisterProposer)
		gov.POST("/acquisitions", handlers.RecordAcquisition)
		gov.POST("/proposals", handlers.SubmitProposal)
		gov.GET("/proposals", handlers.ListProposals)
		gov.GET("/proposals/:id", handlers.GetProposal)
		gov.POST("/proposals/:id/votes", handlers.CastVote)
		gov.POST("/assets/:asset_id/execute", handlers.ExecuteProposal)
	}
}
